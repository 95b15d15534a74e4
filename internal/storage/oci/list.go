package oci

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	ocierrors "github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/types"
)

// listFields selects the object attributes the service should include
// in listing responses; name alone is the default otherwise.
const listFields = "name,size,etag,timeModified,storageTier"

type listResponse struct {
	Objects       []listEntry `json:"objects"`
	Prefixes      []string    `json:"prefixes"`
	NextStartWith string      `json:"nextStartWith"`
}

type listEntry struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	ETag         string    `json:"etag"`
	TimeModified time.Time `json:"timeModified"`
	StorageTier  string    `json:"storageTier"`
}

// ListObjects fetches one page of the bucket listing. A delimiter of
// "/" groups keys one level deep and reports the groups as Prefixes;
// without a delimiter the listing is fully recursive. NextStartWith is
// the continuation cursor for the next page, empty on the last one.
func (c *Client) ListObjects(ctx context.Context, query types.ListQuery) (result types.ListResult, err error) {
	const op = "list_objects"
	start := time.Now()
	defer func() { c.observe(op, start, 0, err) }()

	params := url.Values{}
	params.Set("fields", listFields)
	if query.Prefix != "" {
		params.Set("prefix", query.Prefix)
	}
	if query.Delimiter != "" {
		params.Set("delimiter", query.Delimiter)
	}
	if query.Start != "" {
		params.Set("start", query.Start)
	}
	if query.End != "" {
		params.Set("end", query.End)
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	resp, err := c.do(ctx, op, http.MethodGet, c.bucketURL()+"/o?"+params.Encode(), nil, nil)
	if err != nil {
		return types.ListResult{}, err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		err = ocierrors.Newf(ocierrors.ErrCodeBucketNotFound, "bucket %s not found", c.bucket).
			WithOp(op).WithStatus(resp.StatusCode)
		return types.ListResult{}, err
	default:
		err = statusError(resp, op, query.Prefix)
		return types.ListResult{}, err
	}

	var parsed listResponse
	if derr := json.NewDecoder(resp.Body).Decode(&parsed); derr != nil {
		err = ocierrors.New(ocierrors.ErrCodeNetworkError, "reading listing response").
			WithOp(op).WithCause(derr)
		return types.ListResult{}, err
	}

	result.Prefixes = parsed.Prefixes
	result.NextStartWith = parsed.NextStartWith
	result.Objects = make([]types.ObjectInfo, 0, len(parsed.Objects))
	for _, entry := range parsed.Objects {
		info := types.ObjectInfo{
			Path:         entry.Name,
			Size:         entry.Size,
			ETag:         entry.ETag,
			LastModified: entry.TimeModified,
		}
		if tier, terr := types.ParseStorageTier(entry.StorageTier); terr == nil {
			info.StorageTier = tier
		}
		result.Objects = append(result.Objects, info)
	}

	return result, nil
}

// ListAllObjects follows continuation cursors until the listing is
// exhausted. Pages are not a snapshot: objects created or removed while
// paging may appear zero or one times.
func (c *Client) ListAllObjects(ctx context.Context, query types.ListQuery) ([]types.ObjectInfo, error) {
	var all []types.ObjectInfo

	q := query
	for {
		page, err := c.ListObjects(ctx, q)
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
