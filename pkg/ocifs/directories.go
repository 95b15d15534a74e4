package ocifs

import (
	"context"
	"strings"
	"time"

	"github.com/objectfs/ocifs/pkg/metrics"
	"github.com/objectfs/ocifs/pkg/types"
)

// DirectoryExists reports whether an object exists at exactly path.
// Directories are emulated, so this only answers true when a
// placeholder object was written at the key; a prefix that merely has
// objects beneath it reports false. ListContents is the reliable probe
// for "does anything live under this path".
func (a *Adapter) DirectoryExists(ctx context.Context, path string) (bool, error) {
	return a.FileExists(ctx, path)
}

// DeleteDirectory removes every object under path, plus the
// placeholder object at the path itself when one exists. Re-invoking
// after a partial failure is safe: the second pass sees only what is
// left. Per-key failures are logged and do not fail the call; only a
// whole-request failure does.
func (a *Adapter) DeleteDirectory(ctx context.Context, path string) (err error) {
	clean, err := normalizeLogical(path)
	if err != nil {
		return err
	}
	start := time.Now()
	defer func() { a.record(metrics.OpDeleteDir, start, 0, err) }()

	dir := strings.TrimSuffix(clean, "/")
	queryPrefix := a.prefix.apply(dir)
	if dir != "" {
		queryPrefix += "/"
	}

	objects, err := a.store.ListAllObjects(ctx, types.ListQuery{Prefix: queryPrefix})
	if err != nil {
		return err
	}

	// The placeholder lives at the bare key, outside its own listing.
	placeholder := ""
	if dir != "" {
		placeholder = a.prefix.apply(dir)
	}

	if len(objects) == 0 {
		if placeholder == "" {
			return nil
		}
		// Only the marker can remain, and deleting an absent one succeeds.
		return a.store.DeleteObject(ctx, placeholder)
	}

	keys := make([]string, 0, len(objects)+1)
	for _, obj := range objects {
		keys = append(keys, obj.Path)
	}
	if placeholder != "" {
		// Deleting the marker when absent costs one ignorable per-key error.
		keys = append(keys, placeholder)
	}

	result, err := a.store.BulkDelete(ctx, keys)
	if err != nil {
		return err
	}
	for _, failure := range result.Errors {
		if failure.Path == placeholder && strings.Contains(failure.Code, "NotFound") {
			continue // the marker we speculatively added was absent
		}
		a.logger.Warn("directory delete left a key behind",
			"path", a.prefix.strip(failure.Path),
			"code", failure.Code,
			"message", failure.Message)
	}
	return nil
}
