package oci

import (
	"context"
	"crypto/md5" // Content-MD5 is part of the wire protocol, not a security control
	"encoding/base64"
	"encoding/xml"
	"net/http"
	"time"

	ocierrors "github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/types"
)

type bulkDeletePayload struct {
	XMLName xml.Name         `xml:"Delete"`
	Quiet   bool             `xml:"Quiet"`
	Objects []bulkDeleteItem `xml:"Object"`
}

type bulkDeleteItem struct {
	Key string `xml:"Key"`
}

type bulkDeleteResponse struct {
	XMLName xml.Name          `xml:"DeleteResult"`
	Deleted []bulkDeleteItem  `xml:"Deleted"`
	Errors  []bulkDeleteFault `xml:"Error"`
}

type bulkDeleteFault struct {
	Key     string `xml:"Key"`
	Code    string `xml:"Code"`
	Message string `xml:"Message"`
}

// BulkDelete removes many objects in one request and partitions the
// input into deleted keys and per-key failures. Partial failure is
// data, never an error return; the error path is reserved for the
// request as a whole failing. The partition always covers the input
// exactly: len(Deleted) + len(Errors) == len(keys).
func (c *Client) BulkDelete(ctx context.Context, keys []string) (result types.BulkDeleteResult, err error) {
	const op = "bulk_delete"

	if len(keys) == 0 {
		return types.BulkDeleteResult{}, nil
	}

	start := time.Now()
	defer func() { c.observe(op, start, 0, err) }()

	payload := bulkDeletePayload{Quiet: true}
	for _, key := range keys {
		payload.Objects = append(payload.Objects, bulkDeleteItem{Key: key})
	}

	encoded, _ := xml.Marshal(payload)
	body := append([]byte(xml.Header), encoded...)

	sum := md5.Sum(body)
	header := make(http.Header)
	header.Set("content-type", "application/xml")
	header.Set("content-md5", base64.StdEncoding.EncodeToString(sum[:]))

	resp, err := c.do(ctx, op, http.MethodPost, c.bucketURL()+"?delete", body, header)
	if err != nil {
		return types.BulkDeleteResult{}, err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return types.BulkDeleteResult{}, statusError(resp, op, "")
	}

	var parsed bulkDeleteResponse
	if derr := xml.NewDecoder(resp.Body).Decode(&parsed); derr != nil {
		err = ocierrors.New(ocierrors.ErrCodeNetworkError, "reading bulk delete response").
			WithOp(op).WithCause(derr)
		return types.BulkDeleteResult{}, err
	}

	// Quiet mode reports failures only; everything the response does
	// not complain about was deleted.
	failed := make(map[string]bulkDeleteFault, len(parsed.Errors))
	for _, fault := range parsed.Errors {
		failed[fault.Key] = fault
	}

	for _, key := range keys {
		if fault, ok := failed[key]; ok {
			result.Errors = append(result.Errors, types.BulkDeleteError{
				Path:    key,
				Code:    fault.Code,
				Message: fault.Message,
			})
			continue
		}
		result.Deleted = append(result.Deleted, key)
	}

	return result, nil
}
