/*
Package types provides the core interfaces, data structures, and type definitions for ocifs.

This package defines the contract between the filesystem adapter and the
signed storage client, plus the vocabulary shared by both: storage tiers,
visibility labels, object metadata, listing pages, and bulk-delete results.

# Architecture Overview

ocifs is layered, with this package defining the seams:

	┌─────────────────────────────────────────────┐
	│            Filesystem Adapter               │
	│               (pkg/ocifs)                   │
	└─────────────────────────────────────────────┘
	                      │  types.ObjectStore
	┌─────────────────────────────────────────────┐
	│          Signed Storage Client              │
	│         (internal/storage/oci)              │
	└─────────────────────────────────────────────┘
	          │                      │
	┌─────────┴──────────┐ ┌─────────┴──────────┐
	│       Signer       │ │    KeyProvider     │
	│    (pkg/signer)    │ │  (pkg/credentials) │
	└────────────────────┘ └────────────────────┘

# Core Interface

ObjectStore abstracts the provider's native object API. Implementations
sign every outbound request; consumers only see typed results. Absence is
reported as a false boolean, never as an error, so callers can branch on
existence without unwrapping anything.

# Storage Tiers and Visibility

StorageTier is a closed enum over the three service tiers. Visibility is
the filesystem-level label callers use instead; TierForVisibility and
VisibilityForTier are the only places the mapping exists, so changing the
policy is a one-line edit. Unknown values on either side are rejected.

# Thread Safety

Everything in this package is either immutable after construction or a
plain value type. Implementations of ObjectStore must be safe for
concurrent use.
*/
package types
