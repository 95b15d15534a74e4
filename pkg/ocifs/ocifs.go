package ocifs

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/metrics"
	"github.com/objectfs/ocifs/pkg/types"
	"github.com/objectfs/ocifs/pkg/urlcache"
)

// WriteOptions carries the optional attributes of a write. Zero values
// mean "detect the content type", "use the bucket default tier", and
// "no user metadata".
type WriteOptions struct {
	ContentType string
	Visibility  types.Visibility
	Metadata    map[string]string
}

// Filesystem is the contract the adapter provides: filesystem verbs
// over a flat object namespace. Absence is reported as a value (the
// bool results), never as an error.
type Filesystem interface {
	FileExists(ctx context.Context, path string) (bool, error)
	DirectoryExists(ctx context.Context, path string) (bool, error)

	Read(ctx context.Context, path string) ([]byte, bool, error)
	ReadStream(ctx context.Context, path string) (io.ReadCloser, bool, error)
	Write(ctx context.Context, path string, data []byte, opts WriteOptions) error
	WriteStream(ctx context.Context, path string, body io.Reader, opts WriteOptions) error

	Delete(ctx context.Context, path string) error
	DeleteDirectory(ctx context.Context, path string) error
	Move(ctx context.Context, src, dst string) error
	Copy(ctx context.Context, src, dst string) error

	ListContents(ctx context.Context, path string, deep bool) ([]types.Entry, error)
	GetMetadata(ctx context.Context, path string) (*types.ObjectInfo, bool, error)

	GetVisibility(ctx context.Context, path string) (types.Visibility, error)
	SetVisibility(ctx context.Context, path string, visibility types.Visibility) error

	Restore(ctx context.Context, paths []string, hours int) error
	TemporaryURL(ctx context.Context, path string, expiresAt time.Time) string
}

// Adapter implements Filesystem over an ObjectStore. It holds only
// immutable state after construction and is safe for concurrent use.
type Adapter struct {
	store  types.ObjectStore
	prefix prefixer
	logger *slog.Logger

	urls      urlcache.Cache
	profile   *metrics.Profile
	collector *metrics.Collector
}

var _ Filesystem = (*Adapter)(nil)

// Option customizes an Adapter.
type Option func(*Adapter)

// WithLogger sets the adapter's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithURLCache injects a temporary-URL cache. Without one, every
// TemporaryURL call reaches the service.
func WithURLCache(cache urlcache.Cache) Option {
	return func(a *Adapter) { a.urls = cache }
}

// WithProfile attaches a per-operation latency profile.
func WithProfile(profile *metrics.Profile) Option {
	return func(a *Adapter) { a.profile = profile }
}

// WithMetrics attaches the Prometheus collector; the adapter uses it
// for URL-cache hit/miss accounting. Share the instance with the
// storage client so both layers land in one registry.
func WithMetrics(collector *metrics.Collector) Option {
	return func(a *Adapter) { a.collector = collector }
}

// New builds an Adapter over store. pathPrefix is the logical root
// inside the bucket; it is normalized here, once, and empty disables
// prefixing.
func New(store types.ObjectStore, pathPrefix string, opts ...Option) (*Adapter, error) {
	if store == nil {
		return nil, errors.New(errors.ErrCodeMissingConfig, "object store is required")
	}

	a := &Adapter{
		store:  store,
		prefix: newPrefixer(pathPrefix),
		logger: slog.Default().With("component", "ocifs"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// physicalPath validates a logical path and maps it to its bucket key.
func (a *Adapter) physicalPath(path string) (string, error) {
	clean, err := normalizeLogical(path)
	if err != nil {
		return "", err
	}
	return a.prefix.apply(clean), nil
}

// record feeds the optional profile and debug log. err carries the
// outcome; absence results pass err == nil because a clean "not there"
// answer is a successful operation.
func (a *Adapter) record(op metrics.OperationType, start time.Time, bytes int64, err error) {
	elapsed := time.Since(start)
	if a.profile != nil {
		a.profile.Record(op, elapsed, bytes, err)
	}
	if err != nil {
		a.logger.Debug("operation failed", "op", string(op), "duration", elapsed, "error", err)
	}
}
