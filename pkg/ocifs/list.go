package ocifs

import (
	"context"
	"strings"
	"time"

	"github.com/objectfs/ocifs/pkg/metrics"
	"github.com/objectfs/ocifs/pkg/types"
)

// ListContents lists what lives under path. One-level mode (deep =
// false) returns the direct children plus a synthetic directory entry
// per common prefix; deep mode returns every object under the path.
// The directory's own placeholder object is never part of the result,
// and all returned paths are logical (prefix stripped).
func (a *Adapter) ListContents(ctx context.Context, path string, deep bool) (entries []types.Entry, err error) {
	clean, err := normalizeLogical(path)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { a.record(metrics.OpList, start, 0, err) }()

	dir := strings.TrimSuffix(clean, "/")
	queryPrefix := a.prefix.apply(dir)
	if dir != "" {
		queryPrefix += "/"
	}

	query := types.ListQuery{Prefix: queryPrefix}
	if !deep {
		query.Delimiter = "/"
	}

	var objects []types.ObjectInfo
	var prefixes []string
	for {
		page, perr := a.store.ListObjects(ctx, query)
		if perr != nil {
			err = perr
			return nil, err
		}
		objects = append(objects, page.Objects...)
		prefixes = append(prefixes, page.Prefixes...)
		if page.NextStartWith == "" {
			break
		}
		query.Start = page.NextStartWith
	}

	entries = make([]types.Entry, 0, len(objects)+len(prefixes))
	for _, obj := range objects {
		if obj.Path == queryPrefix {
			continue // the listing root's own placeholder
		}
		if !deep && strings.Contains(strings.TrimPrefix(obj.Path, queryPrefix), "/") {
			continue // nested key the server-side grouping let through
		}
		entries = append(entries, types.Entry{
			Path:         a.prefix.strip(obj.Path),
			IsDir:        strings.HasSuffix(obj.Path, "/"),
			Size:         obj.Size,
			LastModified: obj.LastModified,
			StorageTier:  obj.StorageTier,
		})
	}
	for _, p := range prefixes {
		entries = append(entries, types.Entry{
			Path:  a.prefix.strip(p),
			IsDir: true,
		})
	}
	return entries, nil
}
