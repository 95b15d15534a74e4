package ocifs

import (
	"github.com/objectfs/ocifs/internal/storage/oci"
	"github.com/objectfs/ocifs/pkg/config"
)

// Open builds the signed storage client from cfg and wraps it in an
// Adapter, using cfg's path prefix. It is the assembly entry point for
// hosts; New exists for callers that bring their own ObjectStore.
//
// Options apply to the adapter as in New, and two of them reach through
// to the client: a WithMetrics collector instruments the client's wire
// operations alongside the adapter's URL-cache accounting, and a
// WithLogger logger replaces the one derived from cfg.Logging, so a
// host ends up with one registry and one log stream.
func Open(cfg *config.Settings, opts ...Option) (*Adapter, error) {
	var probe Adapter
	for _, opt := range opts {
		opt(&probe)
	}

	var clientOpts []oci.Option
	if probe.collector != nil {
		clientOpts = append(clientOpts, oci.WithMetrics(probe.collector))
	}
	if probe.logger != nil {
		clientOpts = append(clientOpts, oci.WithLogger(probe.logger.With("component", "storage-client")))
	}

	store, err := oci.New(cfg, clientOpts...)
	if err != nil {
		return nil, err
	}
	return New(store, cfg.Bucket.PathPrefix, opts...)
}
