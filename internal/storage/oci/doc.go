/*
Package oci implements a signed REST client for the provider's object
storage API against a single bucket.

Every outbound request is authenticated with the request-signing scheme
from pkg/signer; there is no SDK in between, the client owns the wire
format end to end.

# Architecture Overview

	┌─────────────────────────────────────────────┐
	│              types.ObjectStore              │
	│            (interface contract)             │
	└─────────────────────┬───────────────────────┘
	                      │
	┌─────────────────────▼───────────────────────┐
	│                 oci.Client                  │
	│  object CRUD │ actions │ bulk │ list │ PAR  │
	└─────────────────────┬───────────────────────┘
	                      │
	┌─────────────────────▼───────────────────────┐
	│            signer.Signer + net/http         │
	│     (canonical headers, RSA-SHA256 auth)    │
	└─────────────────────────────────────────────┘

# Request Model

Each public operation issues one or more sequential, signed HTTP
requests and blocks until completion. The client spawns no background
goroutines; cancellation and deadlines come exclusively from the
caller's context and the transport timeouts configured at construction.

Absence is a value, not an error: HeadObject, GetObject, and
GetObjectStream return (zero, false, nil) for a missing object, and
RenameObject returns (false, nil) for a missing source. Error returns
are reserved for configuration, signing, transport, and protocol
failures, all typed via pkg/errors.

# Multi-Object Operations

BulkDelete and RestoreObjects are not transactional. A failure partway
leaves a partially-applied state, and both are safe to re-invoke: the
remaining work simply shrinks. BulkDelete reports a per-key partition
(deleted vs. failed) instead of collapsing partial failure into an
error.

# Listing

ListObjects returns one page plus a continuation cursor;
ListAllObjects follows cursors to exhaustion. Listing is not
snapshot-consistent across pages, which is an accepted property of the
service, not a defect to compensate for client-side.
*/
package oci
