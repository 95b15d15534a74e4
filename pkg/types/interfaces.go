package types

import (
	"context"
	"io"
	"time"
)

// PutOptions carries per-write attributes for an object upload.
type PutOptions struct {
	ContentType string
	StorageTier StorageTier
	Metadata    map[string]string
}

// CopyOptions carries per-copy attributes. The destination bucket and
// namespace default to the source's when empty.
type CopyOptions struct {
	DestinationNamespace string
	DestinationBucket    string
	StorageTier          StorageTier
	Metadata             map[string]string
}

// ListQuery selects one page of a bucket listing.
type ListQuery struct {
	Prefix    string
	Delimiter string
	Start     string
	End       string
	Limit     int
}

// ObjectStore defines the interface for the signed object-storage client.
type ObjectStore interface {
	// Object operations. The bool result distinguishes "absent" from
	// failure: (zero, false, nil) means the object does not exist.
	HeadObject(ctx context.Context, key string) (*ObjectInfo, bool, error)
	GetObject(ctx context.Context, key string) ([]byte, bool, error)
	GetObjectStream(ctx context.Context, key string) (io.ReadCloser, bool, error)
	PutObject(ctx context.Context, key string, body io.Reader, opts PutOptions) error
	DeleteObject(ctx context.Context, key string) error

	// Rename is a single server-side call. A false result means the
	// source key does not exist.
	RenameObject(ctx context.Context, srcKey, dstKey string) (bool, error)

	// CopyObject is asynchronous on the server; success means the copy
	// was accepted, not that it has completed.
	CopyObject(ctx context.Context, srcKey, dstKey string, opts CopyOptions) error

	// Batch operations
	BulkDelete(ctx context.Context, keys []string) (BulkDeleteResult, error)
	RestoreObjects(ctx context.Context, keys []string, hours int) error

	// Tier management
	UpdateObjectStorageTier(ctx context.Context, key string, tier StorageTier) error

	// List operations
	ListObjects(ctx context.Context, query ListQuery) (ListResult, error)
	ListAllObjects(ctx context.Context, query ListQuery) ([]ObjectInfo, error)

	// CreatePreauthenticatedRequest returns a time-limited access URL,
	// or "" when the service declines; URL issuance is best-effort.
	CreatePreauthenticatedRequest(ctx context.Context, key string, expires time.Time) string

	// Health check
	HealthCheck(ctx context.Context) error
}
