package oci

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	ocierrors "github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/types"
)

// Restore duration bounds enforced by the service; checked locally so an
// out-of-range request never leaves the process.
const (
	minRestoreHours = 10
	maxRestoreHours = 240000
)

type renameRequest struct {
	SourceName string `json:"sourceName"`
	NewName    string `json:"newName"`
}

type copyRequest struct {
	SourceObjectName             string            `json:"sourceObjectName"`
	DestinationRegion            string            `json:"destinationRegion"`
	DestinationNamespace         string            `json:"destinationNamespace"`
	DestinationBucket            string            `json:"destinationBucket"`
	DestinationObjectName        string            `json:"destinationObjectName"`
	DestinationObjectStorageTier string            `json:"destinationObjectStorageTier,omitempty"`
	DestinationObjectMetadata    map[string]string `json:"destinationObjectMetadata,omitempty"`
}

type restoreRequest struct {
	ObjectName string `json:"objectName"`
	Hours      int    `json:"hours"`
}

type updateTierRequest struct {
	ObjectName  string `json:"objectName"`
	StorageTier string `json:"storageTier"`
}

// RenameObject renames an object in one server-side call. A false
// result means the source does not exist; the caller decides whether
// that warrants a fallback.
func (c *Client) RenameObject(ctx context.Context, srcKey, dstKey string) (renamed bool, err error) {
	const op = "rename_object"
	start := time.Now()
	defer func() { c.observe(op, start, 0, err) }()

	body, _ := json.Marshal(renameRequest{SourceName: srcKey, NewName: dstKey})

	resp, err := c.do(ctx, op, http.MethodPost, c.actionURL("renameObject"), body, nil)
	if err != nil {
		return false, err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, statusError(resp, op, srcKey)
	}
}

// CopyObject requests a server-side copy. The service performs copies
// asynchronously: a 2xx here means the copy was accepted, not that the
// destination object exists yet.
func (c *Client) CopyObject(ctx context.Context, srcKey, dstKey string, opts types.CopyOptions) (err error) {
	const op = "copy_object"
	start := time.Now()
	defer func() { c.observe(op, start, 0, err) }()

	payload := copyRequest{
		SourceObjectName:      srcKey,
		DestinationRegion:     c.region,
		DestinationNamespace:  c.namespace,
		DestinationBucket:     c.bucket,
		DestinationObjectName: dstKey,
	}
	if opts.DestinationNamespace != "" {
		payload.DestinationNamespace = opts.DestinationNamespace
	}
	if opts.DestinationBucket != "" {
		payload.DestinationBucket = opts.DestinationBucket
	}
	if opts.StorageTier != "" {
		if !opts.StorageTier.Valid() {
			return ocierrors.Newf(ocierrors.ErrCodeInvalidTier, "unknown storage tier %q", opts.StorageTier).
				WithOp(op).WithPath(srcKey)
		}
		payload.DestinationObjectStorageTier = string(opts.StorageTier)
	}
	if len(opts.Metadata) > 0 {
		payload.DestinationObjectMetadata = make(map[string]string, len(opts.Metadata))
		for name, value := range opts.Metadata {
			payload.DestinationObjectMetadata[metadataPrefix+name] = value
		}
	}

	body, _ := json.Marshal(payload)

	resp, err := c.do(ctx, op, http.MethodPost, c.actionURL("copyObject"), body, nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	switch {
	case resp.StatusCode/100 == 2:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ocierrors.Newf(ocierrors.ErrCodeObjectNotFound, "source object %s not found", srcKey).
			WithOp(op).WithPath(srcKey).WithStatus(resp.StatusCode)
	default:
		return statusError(resp, op, srcKey)
	}
}

// RestoreObjects asks the service to restore archived objects for the
// given number of hours. The hour bounds are validated before any
// network traffic. Restores are requested per object and the operation
// is re-invocable: keys that fail are reported together while the rest
// proceed.
func (c *Client) RestoreObjects(ctx context.Context, keys []string, hours int) (err error) {
	const op = "restore_objects"

	if hours < minRestoreHours || hours > maxRestoreHours {
		return ocierrors.Newf(ocierrors.ErrCodeRestoreHours,
			"restore hours %d outside [%d, %d]", hours, minRestoreHours, maxRestoreHours).WithOp(op)
	}
	if len(keys) == 0 {
		return nil
	}

	start := time.Now()
	defer func() { c.observe(op, start, 0, err) }()

	var failures []string
	for _, key := range keys {
		if rerr := c.restoreObject(ctx, op, key, hours); rerr != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", key, rerr))
		}
	}

	if len(failures) > 0 {
		return ocierrors.Newf(ocierrors.ErrCodeBulkPartialFailure,
			"restore failed for %d of %d objects: %s",
			len(failures), len(keys), strings.Join(failures, "; ")).WithOp(op)
	}
	return nil
}

func (c *Client) restoreObject(ctx context.Context, op, key string, hours int) error {
	body, _ := json.Marshal(restoreRequest{ObjectName: key, Hours: hours})

	resp, err := c.do(ctx, op, http.MethodPost, c.actionURL("restoreObjects"), body, nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	switch {
	case resp.StatusCode/100 == 2:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ocierrors.Newf(ocierrors.ErrCodeObjectNotFound, "object %s not found", key).
			WithOp(op).WithPath(key).WithStatus(resp.StatusCode)
	default:
		return statusError(resp, op, key)
	}
}

// UpdateObjectStorageTier moves an object to another storage tier.
func (c *Client) UpdateObjectStorageTier(ctx context.Context, key string, tier types.StorageTier) (err error) {
	const op = "update_tier"
	start := time.Now()
	defer func() { c.observe(op, start, 0, err) }()

	if !tier.Valid() {
		return ocierrors.Newf(ocierrors.ErrCodeInvalidTier, "unknown storage tier %q", tier).
			WithOp(op).WithPath(key)
	}

	body, _ := json.Marshal(updateTierRequest{ObjectName: key, StorageTier: string(tier)})

	resp, err := c.do(ctx, op, http.MethodPost, c.actionURL("updateObjectStorageTier"), body, nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ocierrors.Newf(ocierrors.ErrCodeObjectNotFound, "object %s not found", key).
			WithOp(op).WithPath(key).WithStatus(resp.StatusCode)
	default:
		return statusError(resp, op, key)
	}
}
