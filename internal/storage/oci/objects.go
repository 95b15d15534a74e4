package oci

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	ocierrors "github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/types"
)

// metadataPrefix is the header prefix the service uses for user-defined
// object metadata.
const metadataPrefix = "opc-meta-"

// HeadObject fetches an object's attributes without its payload. A
// missing object is (nil, false, nil), not an error.
func (c *Client) HeadObject(ctx context.Context, key string) (info *types.ObjectInfo, found bool, err error) {
	const op = "head_object"
	start := time.Now()
	defer func() { c.observe(op, start, 0, err) }()

	resp, err := c.do(ctx, op, http.MethodHead, c.objectURL(key), nil, nil)
	if err != nil {
		return nil, false, err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return parseObjectInfo(key, resp), true, nil
	case http.StatusNotFound:
		return nil, false, nil
	default:
		return nil, false, statusError(resp, op, key)
	}
}

// GetObject downloads an object's full payload. A missing object is
// (nil, false, nil), not an error.
func (c *Client) GetObject(ctx context.Context, key string) (data []byte, found bool, err error) {
	const op = "get_object"
	start := time.Now()
	var size int64
	defer func() { c.observe(op, start, size, err) }()

	resp, err := c.do(ctx, op, http.MethodGet, c.objectURL(key), nil, nil)
	if err != nil {
		return nil, false, err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, false, ocierrors.New(ocierrors.ErrCodeNetworkError, "reading object body").
				WithOp(op).WithPath(key).WithCause(err)
		}
		size = int64(len(data))
		return data, true, nil
	case http.StatusNotFound:
		return nil, false, nil
	default:
		return nil, false, statusError(resp, op, key)
	}
}

// GetObjectStream downloads an object as a stream. The caller owns the
// returned reader and must close it. A missing object is
// (nil, false, nil), not an error.
func (c *Client) GetObjectStream(ctx context.Context, key string) (body io.ReadCloser, found bool, err error) {
	const op = "get_object"
	start := time.Now()
	defer func() { c.observe(op, start, 0, err) }()

	resp, err := c.do(ctx, op, http.MethodGet, c.objectURL(key), nil, nil)
	if err != nil {
		return nil, false, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, true, nil
	case http.StatusNotFound:
		drain(resp)
		return nil, false, nil
	default:
		defer drain(resp)
		return nil, false, statusError(resp, op, key)
	}
}

// PutObject uploads an object. The body is read in full before sending:
// the signature covers its hash, so the payload must be known up front.
// Tier defaults to the bucket's configured tier, content type to
// application/octet-stream.
func (c *Client) PutObject(ctx context.Context, key string, body io.Reader, opts types.PutOptions) (err error) {
	const op = "put_object"
	start := time.Now()
	var size int64
	defer func() { c.observe(op, start, size, err) }()

	var data []byte
	if body != nil {
		data, err = io.ReadAll(body)
		if err != nil {
			return ocierrors.New(ocierrors.ErrCodeNetworkError, "reading upload body").
				WithOp(op).WithPath(key).WithCause(err)
		}
	}
	size = int64(len(data))

	header := make(http.Header)
	contentType := opts.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("content-type", contentType)

	tier := opts.StorageTier
	if tier == "" {
		tier = c.defaultTier
	}
	header.Set("storage-tier", string(tier))

	for name, value := range opts.Metadata {
		header.Set(metadataPrefix+name, value)
	}

	resp, err := c.do(ctx, op, http.MethodPut, c.objectURL(key), data, header)
	if err != nil {
		return err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ocierrors.Newf(ocierrors.ErrCodeBucketNotFound, "bucket %s not found", c.bucket).
			WithOp(op).WithPath(key).WithStatus(resp.StatusCode)
	default:
		return statusError(resp, op, key)
	}
}

// DeleteObject removes an object. Deleting an absent object succeeds:
// the postcondition, not the transition, is the contract.
func (c *Client) DeleteObject(ctx context.Context, key string) (err error) {
	const op = "delete_object"
	start := time.Now()
	defer func() { c.observe(op, start, 0, err) }()

	resp, err := c.do(ctx, op, http.MethodDelete, c.objectURL(key), nil, nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK, http.StatusNotFound:
		return nil
	default:
		return statusError(resp, op, key)
	}
}

// parseObjectInfo maps response headers onto an ObjectInfo.
func parseObjectInfo(key string, resp *http.Response) *types.ObjectInfo {
	info := &types.ObjectInfo{
		Path:        key,
		Size:        resp.ContentLength,
		ETag:        resp.Header.Get("etag"),
		ContentType: resp.Header.Get("content-type"),
		Metadata:    make(map[string]string),
	}

	if t, err := http.ParseTime(resp.Header.Get("last-modified")); err == nil {
		info.LastModified = t
	}
	if tier, err := types.ParseStorageTier(resp.Header.Get("storage-tier")); err == nil {
		info.StorageTier = tier
	}

	for name, values := range resp.Header {
		lower := strings.ToLower(name)
		if suffix, ok := strings.CutPrefix(lower, metadataPrefix); ok && len(values) > 0 {
			info.Metadata[suffix] = values[0]
		}
	}

	return info
}
