package ocifs

import (
	"context"
	"time"

	"github.com/objectfs/ocifs/pkg/metrics"
)

// TemporaryURL returns a credential-free, time-limited URL for path,
// or "" when the service declines one. When a cache is injected it is
// consulted first and fed on success; without one every call reaches
// the service.
func (a *Adapter) TemporaryURL(ctx context.Context, path string, expiresAt time.Time) string {
	physical, err := a.physicalPath(path)
	if err != nil {
		a.logger.Warn("temporary url refused for invalid path", "path", path, "error", err)
		return ""
	}

	if a.urls != nil {
		if url, ok := a.urls.Get(path); ok {
			if a.collector != nil {
				a.collector.RecordURLCacheHit()
			}
			return url
		}
		if a.collector != nil {
			a.collector.RecordURLCacheMiss()
		}
	}

	start := time.Now()
	url := a.store.CreatePreauthenticatedRequest(ctx, physical, expiresAt)
	a.record(metrics.OpURL, start, 0, nil)

	if url == "" {
		return ""
	}
	if a.urls != nil {
		a.urls.Add(path, url, expiresAt)
	}
	return url
}
