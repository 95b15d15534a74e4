package ocifs

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/metrics"
	"github.com/objectfs/ocifs/pkg/types"
)

// FileExists reports whether an object exists at path.
func (a *Adapter) FileExists(ctx context.Context, path string) (exists bool, err error) {
	physical, err := a.physicalPath(path)
	if err != nil {
		return false, err
	}
	start := time.Now()
	defer func() { a.record(metrics.OpExists, start, 0, err) }()

	_, exists, err = a.store.HeadObject(ctx, physical)
	return exists, err
}

// Read returns the full contents of path. A missing object is
// (nil, false, nil), not an error.
func (a *Adapter) Read(ctx context.Context, path string) (data []byte, exists bool, err error) {
	physical, err := a.physicalPath(path)
	if err != nil {
		return nil, false, err
	}
	start := time.Now()
	defer func() { a.record(metrics.OpRead, start, int64(len(data)), err) }()

	data, exists, err = a.store.GetObject(ctx, physical)
	return data, exists, err
}

// ReadStream returns the object body as a stream. The caller owns the
// ReadCloser. A missing object is (nil, false, nil).
func (a *Adapter) ReadStream(ctx context.Context, path string) (body io.ReadCloser, exists bool, err error) {
	physical, err := a.physicalPath(path)
	if err != nil {
		return nil, false, err
	}
	start := time.Now()
	defer func() { a.record(metrics.OpRead, start, 0, err) }()

	body, exists, err = a.store.GetObjectStream(ctx, physical)
	return body, exists, err
}

// Write stores data at path. The content type is taken from opts,
// detected from the path and payload otherwise; a visibility in opts
// is translated to its storage tier before the upload.
func (a *Adapter) Write(ctx context.Context, path string, data []byte, opts WriteOptions) (err error) {
	physical, err := a.physicalPath(path)
	if err != nil {
		return err
	}
	start := time.Now()
	defer func() { a.record(metrics.OpWrite, start, int64(len(data)), err) }()

	put := types.PutOptions{
		ContentType: opts.ContentType,
		Metadata:    opts.Metadata,
	}
	if put.ContentType == "" {
		put.ContentType = detectContentType(path, data)
	}
	if opts.Visibility != "" {
		tier, terr := types.TierForVisibility(opts.Visibility)
		if terr != nil {
			err = terr
			return err
		}
		put.StorageTier = tier
	}

	err = a.store.PutObject(ctx, physical, bytes.NewReader(data), put)
	return err
}

// WriteStream uploads from a reader. The wire protocol signs a digest
// of the whole payload, so the body is buffered in memory first; this
// is a convenience over Write, not a true streaming upload.
func (a *Adapter) WriteStream(ctx context.Context, path string, body io.Reader, opts WriteOptions) error {
	if body == nil {
		return a.Write(ctx, path, nil, opts)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return errors.New(errors.ErrCodeNetworkError, "reading write stream").
			WithOp("write_stream").WithPath(path).WithCause(err)
	}
	return a.Write(ctx, path, data, opts)
}

// Delete removes path. Directory-shaped paths (empty, trailing slash,
// or with objects beneath them) route to DeleteDirectory; for a plain
// object, deleting an already-absent key succeeds.
func (a *Adapter) Delete(ctx context.Context, path string) error {
	clean, err := normalizeLogical(path)
	if err != nil {
		return err
	}
	if clean == "" || strings.HasSuffix(clean, "/") {
		return a.DeleteDirectory(ctx, clean)
	}

	start := time.Now()
	physical := a.prefix.apply(clean)

	// A key with objects beneath it is a directory in disguise.
	page, err := a.store.ListObjects(ctx, types.ListQuery{Prefix: physical + "/", Limit: 1})
	if err != nil {
		a.record(metrics.OpDelete, start, 0, err)
		return err
	}
	if len(page.Objects) > 0 {
		return a.DeleteDirectory(ctx, clean)
	}

	err = a.store.DeleteObject(ctx, physical)
	a.record(metrics.OpDelete, start, 0, err)
	return err
}

// GetMetadata returns the object's live metadata with its logical path.
// A missing object is (nil, false, nil).
func (a *Adapter) GetMetadata(ctx context.Context, path string) (info *types.ObjectInfo, exists bool, err error) {
	physical, err := a.physicalPath(path)
	if err != nil {
		return nil, false, err
	}
	start := time.Now()
	defer func() { a.record(metrics.OpMetadata, start, 0, err) }()

	info, exists, err = a.store.HeadObject(ctx, physical)
	if err != nil || !exists {
		return nil, false, err
	}
	info.Path = a.prefix.strip(info.Path)
	return info, true, nil
}
