/*
Package ocifs presents filesystem semantics over a flat object-storage
namespace: logical paths, emulated directories, visibility labels, and
content-type detection, all on top of the signed storage client.

# Architecture Overview

	┌──────────────────────────────────────────────────┐
	│                 ocifs.Filesystem                 │
	│   read/write │ delete │ move │ list │ url │ ...  │
	└───────────────────────┬──────────────────────────┘
	                        │ logical paths
	┌───────────────────────▼──────────────────────────┐
	│                  ocifs.Adapter                   │
	│  prefixing │ dir emulation │ MIME │ visibility   │
	└───────────────────────┬──────────────────────────┘
	                        │ physical keys
	┌───────────────────────▼──────────────────────────┐
	│                types.ObjectStore                 │
	│           (signed client, one bucket)            │
	└──────────────────────────────────────────────────┘

# Paths and Prefixing

A configured prefix scopes the adapter to a subtree of the bucket. It
is normalized once at construction; afterwards every logical path is
mapped to prefix+path on the way in and stripped on the way out of
listings and metadata. Paths containing ".." segments are rejected, so
no logical path can escape the prefix.

# Directory Emulation

The store has no directory type. A "directory" is a key prefix, plus
optionally a placeholder object at the prefix key itself. The
consequences are deliberate and documented per method: DirectoryExists
only sees placeholders, Delete probes for children before choosing
between single-object and directory deletion, and DeleteDirectory is
idempotent because re-listing an emptied prefix finds nothing to do.

# Visibility

The provider exposes no ACL surface here, so visibility labels are
realized as storage tiers: "public" is Standard, "private" is Archive,
and "infrequent" is InfrequentAccess. The mapping is closed; unknown
labels are rejected rather than defaulted. See types.TierForVisibility.

# Collaborators

The adapter takes optional collaborators at construction: a
urlcache.Cache to memoize temporary URLs, a metrics.Profile for
per-operation latency, and the shared metrics.Collector for URL-cache
hit/miss accounting. Nothing is built in; without them the adapter
performs no caching and records nothing.
*/
package ocifs
