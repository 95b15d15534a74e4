package oci

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	ocierrors "github.com/objectfs/ocifs/pkg/errors"
)

type parRequest struct {
	Name        string `json:"name"`
	ObjectName  string `json:"objectName"`
	AccessType  string `json:"accessType"`
	TimeExpires string `json:"timeExpires"`
}

type parResponse struct {
	AccessURI string `json:"accessUri"`
}

// CreatePreauthenticatedRequest issues a credential-free, time-limited
// read URL for one object. URL issuance is best-effort: any failure is
// logged and reported to metrics, and the result is the empty string
// rather than an error, so hosts can treat a missing URL as a cache
// miss.
func (c *Client) CreatePreauthenticatedRequest(ctx context.Context, key string, expires time.Time) string {
	const op = "create_par"
	start := time.Now()
	var err error
	defer func() { c.observe(op, start, 0, err) }()

	body, _ := json.Marshal(parRequest{
		Name:        "ocifs-" + c.newRequestID(),
		ObjectName:  key,
		AccessType:  "ObjectRead",
		TimeExpires: expires.UTC().Format(time.RFC3339),
	})

	resp, err := c.do(ctx, op, http.MethodPost, c.bucketURL()+"/p/", body, nil)
	if err != nil {
		c.logger.Warn("temporary url request failed", "key", key, "error", err)
		return ""
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err = statusError(resp, op, key)
		c.logger.Warn("temporary url request refused", "key", key, "status", resp.StatusCode)
		return ""
	}

	var parsed parResponse
	if derr := json.NewDecoder(resp.Body).Decode(&parsed); derr != nil {
		err = ocierrors.New(ocierrors.ErrCodeNetworkError, "reading temporary url response").
			WithOp(op).WithPath(key).WithCause(derr)
		c.logger.Warn("temporary url response unreadable", "key", key, "error", derr)
		return ""
	}
	if parsed.AccessURI == "" {
		err = ocierrors.New(ocierrors.ErrCodeUnexpectedStatus, "temporary url response missing accessUri").
			WithOp(op).WithPath(key)
		c.logger.Warn("temporary url response missing accessUri", "key", key)
		return ""
	}

	return c.endpoint + parsed.AccessURI
}
