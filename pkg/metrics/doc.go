/*
Package metrics provides Prometheus-based metrics collection for storage
client and filesystem operations.

# Overview

The metrics package tracks every storage request and filesystem operation
with timing, payload size, and success/failure status. It keeps two views
of the same activity: Prometheus series (for monitoring systems) and an
internal operation map (for debugging and programmatic inspection).

Architecture

	┌─────────────┐        ┌─────────────┐
	│  Collector  │        │   Profile   │
	│ (requests)  │        │ (fs ops)    │
	└──────┬──────┘        └─────────────┘
	       │
	┌──────▼───────┐
	│  Prometheus  │
	│   Registry   │
	│              │
	│ - Counters   │
	│ - Histograms │
	└──────┬───────┘
	       │
	  Handler() ← mounted by the host

# Core Components

Collector: records per-request metrics from the storage client. It owns a
private Prometheus registry and exposes it as an http.Handler; it never
starts a server or background goroutine of its own.

	collector, err := metrics.NewCollector(&metrics.Config{
		Enabled:   true,
		Namespace: "ocifs",
	})
	if err != nil {
		log.Fatal(err)
	}

	mux.Handle("/metrics", collector.Handler())

Profile: records per-operation latency profiles at the filesystem layer
(read, write, move, list, ...) with min/max/average latency and
throughput. Purely passive; query it with GetOperation or GetSummary.

	profile := metrics.NewProfile()
	profile.Record(metrics.OpRead, elapsed, int64(len(data)), err)

# Recording Operations

The collector tracks operations with timing, size, and success/failure
status:

	startTime := time.Now()
	data, err := client.GetObject(ctx, key)
	duration := time.Since(startTime)

	collector.RecordOperation("get_object", duration, int64(len(data)), err == nil)

Temporary-URL cache lookups are counted separately:

	collector.RecordURLCacheHit()
	collector.RecordURLCacheMiss()

# Error Tracking

Errors are classified by their structured error category (network,
signing, storage, ...), so alerting can distinguish a bad key from a
flaky link:

	if err != nil {
		collector.RecordError("put_object", err)
		return err
	}

# Prometheus Metrics

The collector exports the following series:

Counters:
  - ocifs_operations_total{operation,status}: operations by type and status
  - ocifs_url_cache_requests_total{type}: temporary URL cache hits/misses
  - ocifs_errors_total{operation,type}: errors by operation and category

Histograms:
  - ocifs_operation_duration_seconds{operation}: request latency distribution
  - ocifs_operation_size_bytes{operation}: payload size distribution

# Configuration

The Config struct controls metrics behavior:

	config := &metrics.Config{
		Enabled:   true,                          // disable to make all recording a no-op
		Namespace: "ocifs",                       // metric name prefix
		Subsystem: "",                            // optional second prefix segment
		Labels:    map[string]string{"env": "p"}, // const labels on every series
	}

A disabled collector accepts all Record calls as no-ops and serves 404
from Handler(), so callers never need nil checks.
*/
package metrics
