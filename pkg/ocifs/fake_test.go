package ocifs

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/types"
)

// fakeStore is an in-memory ObjectStore with the same contract as the
// real client: absence as values, idempotent delete, typed errors. The
// calls log lets tests assert which store operations an adapter method
// actually issued.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string]*fakeObject
	calls   []string

	headErr      error
	listErr      error
	renameErr    error
	copyErr      error
	deleteErr    error
	bulkErr      error
	bulkFailures map[string]types.BulkDeleteError

	restored map[string]int
	parURL   string

	// pageSize caps pages even when the query has no limit, standing in
	// for the service-side default page size.
	pageSize int
}

type fakeObject struct {
	data        []byte
	tier        types.StorageTier
	contentType string
	metadata    map[string]string
	modified    time.Time
}

var fakeModTime = time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:  make(map[string]*fakeObject),
		restored: make(map[string]int),
	}
}

// seed inserts an object directly, bypassing the call log.
func (f *fakeStore) seed(key, data string, tier types.StorageTier) {
	f.objects[key] = &fakeObject{
		data:     []byte(data),
		tier:     tier,
		modified: fakeModTime,
	}
}

func (f *fakeStore) logf(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeStore) callsFor(verb string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, verb+" ") {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeStore) infoFor(key string, o *fakeObject) *types.ObjectInfo {
	return &types.ObjectInfo{
		Path:         key,
		Size:         int64(len(o.data)),
		LastModified: o.modified,
		ETag:         "etag-" + key,
		ContentType:  o.contentType,
		StorageTier:  o.tier,
		Metadata:     o.metadata,
	}
}

func (f *fakeStore) HeadObject(_ context.Context, key string) (*types.ObjectInfo, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logf("head %s", key)
	if f.headErr != nil {
		return nil, false, f.headErr
	}
	o, ok := f.objects[key]
	if !ok {
		return nil, false, nil
	}
	return f.infoFor(key, o), true, nil
}

func (f *fakeStore) GetObject(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logf("get %s", key)
	o, ok := f.objects[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), o.data...), true, nil
}

func (f *fakeStore) GetObjectStream(ctx context.Context, key string) (io.ReadCloser, bool, error) {
	data, ok, err := f.GetObject(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	return io.NopCloser(strings.NewReader(string(data))), true, nil
}

func (f *fakeStore) PutObject(_ context.Context, key string, body io.Reader, opts types.PutOptions) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logf("put %s", key)
	tier := opts.StorageTier
	if tier == "" {
		tier = types.TierStandard
	}
	f.objects[key] = &fakeObject{
		data:        data,
		tier:        tier,
		contentType: opts.ContentType,
		metadata:    opts.Metadata,
		modified:    fakeModTime,
	}
	return nil
}

func (f *fakeStore) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logf("delete %s", key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key) // absent keys delete cleanly, like the service
	return nil
}

func (f *fakeStore) RenameObject(_ context.Context, srcKey, dstKey string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logf("rename %s %s", srcKey, dstKey)
	if f.renameErr != nil {
		return false, f.renameErr
	}
	o, ok := f.objects[srcKey]
	if !ok {
		return false, nil
	}
	f.objects[dstKey] = o
	delete(f.objects, srcKey)
	return true, nil
}

func (f *fakeStore) CopyObject(_ context.Context, srcKey, dstKey string, opts types.CopyOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logf("copy %s %s", srcKey, dstKey)
	if f.copyErr != nil {
		return f.copyErr
	}
	o, ok := f.objects[srcKey]
	if !ok {
		return errors.Newf(errors.ErrCodeObjectNotFound, "source object %s not found", srcKey)
	}
	dup := *o
	if opts.StorageTier != "" {
		dup.tier = opts.StorageTier
	}
	f.objects[dstKey] = &dup
	return nil
}

func (f *fakeStore) BulkDelete(_ context.Context, keys []string) (types.BulkDeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logf("bulk %s", strings.Join(keys, ","))
	if f.bulkErr != nil {
		return types.BulkDeleteResult{}, f.bulkErr
	}
	var result types.BulkDeleteResult
	for _, key := range keys {
		if failure, bad := f.bulkFailures[key]; bad {
			result.Errors = append(result.Errors, failure)
			continue
		}
		delete(f.objects, key)
		result.Deleted = append(result.Deleted, key)
	}
	return result, nil
}

func (f *fakeStore) RestoreObjects(_ context.Context, keys []string, hours int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		f.logf("restore %s", key)
		f.restored[key] = hours
	}
	return nil
}

func (f *fakeStore) UpdateObjectStorageTier(_ context.Context, key string, tier types.StorageTier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logf("tier %s %s", key, tier)
	o, ok := f.objects[key]
	if !ok {
		return errors.Newf(errors.ErrCodeObjectNotFound, "object %s not found", key)
	}
	o.tier = tier
	return nil
}

// ListObjects emulates prefix, delimiter, start, and limit the way the
// service applies them: keys sorted, grouped keys collapsed into
// prefixes, cursor pointing at the first unreturned key.
func (f *fakeStore) ListObjects(_ context.Context, q types.ListQuery) (types.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logf("list %s", q.Prefix)
	if f.listErr != nil {
		return types.ListResult{}, f.listErr
	}

	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, q.Prefix) && (q.Start == "" || k >= q.Start) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	limit := q.Limit
	if limit == 0 {
		limit = f.pageSize
	}

	var result types.ListResult
	seenPrefix := make(map[string]bool)
	count := 0
	for i, k := range keys {
		if limit > 0 && count >= limit {
			result.NextStartWith = keys[i]
			break
		}
		if q.Delimiter != "" {
			rest := strings.TrimPrefix(k, q.Prefix)
			if idx := strings.Index(rest, q.Delimiter); idx >= 0 {
				group := q.Prefix + rest[:idx+1]
				if !seenPrefix[group] {
					seenPrefix[group] = true
					result.Prefixes = append(result.Prefixes, group)
				}
				continue
			}
		}
		result.Objects = append(result.Objects, *f.infoFor(k, f.objects[k]))
		count++
	}
	return result, nil
}

func (f *fakeStore) ListAllObjects(ctx context.Context, q types.ListQuery) ([]types.ObjectInfo, error) {
	var all []types.ObjectInfo
	for {
		page, err := f.ListObjects(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Objects...)
		if page.NextStartWith == "" {
			return all, nil
		}
		q.Start = page.NextStartWith
	}
}

func (f *fakeStore) CreatePreauthenticatedRequest(_ context.Context, key string, _ time.Time) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logf("par %s", key)
	if f.parURL == "" {
		return ""
	}
	return f.parURL + "/" + key
}

func (f *fakeStore) HealthCheck(context.Context) error {
	return nil
}

var _ types.ObjectStore = (*fakeStore)(nil)
