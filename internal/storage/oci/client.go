package oci

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/objectfs/ocifs/pkg/config"
	"github.com/objectfs/ocifs/pkg/credentials"
	ocierrors "github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/metrics"
	"github.com/objectfs/ocifs/pkg/signer"
	"github.com/objectfs/ocifs/pkg/types"
)

// serviceDomain is the provider's object storage DNS suffix; the full
// endpoint is derived from it and the configured region unless an
// explicit endpoint override is set.
const serviceDomain = "oraclecloud.com"

// Client issues signed REST calls against a single bucket. It holds no
// mutable per-call state beyond the transport's connection pool, so one
// instance is safe for concurrent use.
type Client struct {
	namespace   string
	bucket      string
	region      string
	endpoint    string
	defaultTier types.StorageTier

	signer  *signer.Signer
	httpc   *http.Client
	logger  *slog.Logger
	metrics *metrics.Collector

	// newRequestID generates the per-request tracing ID. Replaceable
	// for deterministic tests.
	newRequestID func() string
}

var _ types.ObjectStore = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithLogger overrides the logger derived from the settings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics attaches a metrics collector. Without one, operations are
// not recorded.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithHTTPClient replaces the transport built from the settings'
// timeouts. The caller keeps responsibility for its configuration.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New creates a Client from validated settings. Configuration problems
// surface here, at construction, never on first use.
func New(cfg *config.Settings, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ocierrors.New(ocierrors.ErrCodeMissingConfig, "settings are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tier, err := types.ParseStorageTier(cfg.Bucket.StorageTier)
	if err != nil {
		return nil, err
	}

	var key credentials.KeyProvider
	if cfg.Auth.KeyFile != "" {
		key = credentials.NewFileKeyProvider(cfg.Auth.KeyFile)
	} else {
		key = credentials.NewInlineKeyProvider(cfg.Auth.PrivateKey)
	}
	creds := credentials.Credentials{
		TenancyID:   cfg.Auth.TenancyID,
		UserID:      cfg.Auth.UserID,
		Fingerprint: cfg.Auth.Fingerprint,
		Key:         key,
	}

	endpoint := cfg.Bucket.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://objectstorage.%s.%s", cfg.Bucket.Region, serviceDomain)
	}
	endpoint = strings.TrimRight(endpoint, "/")

	c := &Client{
		namespace:   cfg.Bucket.Namespace,
		bucket:      cfg.Bucket.Bucket,
		region:      cfg.Bucket.Region,
		endpoint:    endpoint,
		defaultTier: tier,
		signer:      signer.New(creds),
		httpc:       newHTTPClient(cfg.HTTP.Timeouts),
		logger: cfg.Logging.NewLogger().With(
			"component", "storage-client",
			"bucket", cfg.Bucket.Bucket,
		),
		newRequestID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func newHTTPClient(timeouts config.TimeoutConfig) *http.Client {
	dialer := &net.Dialer{Timeout: timeouts.Connect}
	return &http.Client{
		Timeout: timeouts.Request,
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: timeouts.Connect,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// HealthCheck verifies the bucket is reachable with the configured
// credentials by issuing a signed HEAD against it.
func (c *Client) HealthCheck(ctx context.Context) (err error) {
	const op = "health_check"
	start := time.Now()
	defer func() { c.observe(op, start, 0, err) }()

	resp, err := c.do(ctx, op, http.MethodHead, c.bucketURL(), nil, nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	switch {
	case resp.StatusCode/100 == 2:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ocierrors.Newf(ocierrors.ErrCodeBucketNotFound, "bucket %s not found", c.bucket).
			WithOp(op).WithStatus(resp.StatusCode)
	default:
		return statusError(resp, op, "")
	}
}

// URL construction. Object keys are path-escaped as a single segment:
// the service treats "/" inside a key as part of the name, not a path
// separator.

func (c *Client) bucketURL() string {
	return fmt.Sprintf("%s/n/%s/b/%s", c.endpoint, url.PathEscape(c.namespace), url.PathEscape(c.bucket))
}

func (c *Client) objectURL(key string) string {
	return c.bucketURL() + "/o/" + url.PathEscape(key)
}

func (c *Client) actionURL(verb string) string {
	return c.bucketURL() + "/actions/" + verb
}

// do builds, signs, and sends one request. body must be the exact bytes
// to transmit (nil for bodyless methods). The caller owns the response
// and its status handling.
func (c *Client) do(ctx context.Context, op, method, rawURL string, body []byte, header http.Header) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, rawURL, body, header)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, translateTransportError(err, op)
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, body []byte, header http.Header) (*http.Request, error) {
	var r io.Reader
	if len(body) > 0 {
		r = bytes.NewReader(body)
	} else {
		// A zero-length body still needs an explicit Content-Length: 0
		// on the wire for body-bearing methods; http.NoBody arranges
		// that where a nil reader would not.
		switch method {
		case http.MethodPut, http.MethodPost, http.MethodPatch:
			r = http.NoBody
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, r)
	if err != nil {
		return nil, ocierrors.New(ocierrors.ErrCodeInvalidPath, "building request").WithCause(err)
	}

	for name, values := range header {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	req.Header.Set("opc-client-request-id", c.newRequestID())

	if err := c.signer.SignRequest(req, body); err != nil {
		return nil, err
	}
	return req, nil
}

// observe records one finished operation in metrics and logs.
func (c *Client) observe(op string, start time.Time, size int64, err error) {
	elapsed := time.Since(start)

	if c.metrics != nil {
		c.metrics.RecordOperation(op, elapsed, size, err == nil)
		if err != nil {
			c.metrics.RecordError(op, err)
		}
	}

	if err != nil {
		c.logger.Debug("operation failed", "op", op, "duration", elapsed, "error", err)
	} else {
		c.logger.Debug("operation complete", "op", op, "duration", elapsed, "size", size)
	}
}

// translateTransportError types a failure that happened before any
// response arrived.
func translateTransportError(err error, op string) error {
	var urlErr *url.Error
	timedOut := errors.As(err, &urlErr) && urlErr.Timeout()
	if timedOut || errors.Is(err, context.DeadlineExceeded) {
		return ocierrors.New(ocierrors.ErrCodeOperationTimeout, "request timed out").
			WithOp(op).WithCause(err)
	}
	return ocierrors.New(ocierrors.ErrCodeNetworkError, "request failed").
		WithOp(op).WithCause(err)
}

// statusError types a response the operation did not expect. 5xx is
// transient and marked retryable; everything else is a protocol error
// carrying the raw status.
func statusError(resp *http.Response, op, key string) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(snippet))
	if msg == "" {
		msg = resp.Status
	}

	if resp.StatusCode >= 500 {
		return ocierrors.Newf(ocierrors.ErrCodeNetworkError, "service error: %s", msg).
			WithOp(op).WithPath(key).WithStatus(resp.StatusCode)
	}
	return ocierrors.Newf(ocierrors.ErrCodeUnexpectedStatus, "unexpected response: %s", msg).
		WithOp(op).WithPath(key).WithStatus(resp.StatusCode)
}

// drain discards what remains of a response body and closes it so the
// underlying connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
