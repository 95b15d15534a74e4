package types

import (
	"time"

	"github.com/objectfs/ocifs/pkg/errors"
)

// StorageTier identifies the storage class an object is kept in.
// The set is closed: anything outside these three values is rejected
// at parse time rather than passed through to the service.
type StorageTier string

const (
	TierStandard         StorageTier = "Standard"
	TierInfrequentAccess StorageTier = "InfrequentAccess"
	TierArchive          StorageTier = "Archive"
)

// DefaultTier is applied when configuration leaves the tier empty.
// An empty value is a deliberate "use the default" signal and is distinct
// from an unknown value, which is an error.
const DefaultTier = TierStandard

// ParseStorageTier converts a configuration string into a StorageTier.
// The empty string resolves to DefaultTier; unknown values are rejected.
func ParseStorageTier(s string) (StorageTier, error) {
	switch s {
	case "":
		return DefaultTier, nil
	case string(TierStandard):
		return TierStandard, nil
	case string(TierInfrequentAccess):
		return TierInfrequentAccess, nil
	case string(TierArchive):
		return TierArchive, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidTier, "unknown storage tier %q", s)
	}
}

// Valid reports whether t is one of the three service tiers.
func (t StorageTier) Valid() bool {
	switch t {
	case TierStandard, TierInfrequentAccess, TierArchive:
		return true
	}
	return false
}

// Visibility is the filesystem-level access label callers use in place
// of raw storage tiers.
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityPrivate    Visibility = "private"
	VisibilityInfrequent Visibility = "infrequent"
)

// TierForVisibility maps a visibility label to the storage tier that
// realizes it. Unknown labels are a caller error, never a silent default.
func TierForVisibility(v Visibility) (StorageTier, error) {
	switch v {
	case VisibilityPublic:
		return TierStandard, nil
	case VisibilityPrivate:
		return TierArchive, nil
	case VisibilityInfrequent:
		return TierInfrequentAccess, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidVisibility, "unknown visibility %q", v)
	}
}

// VisibilityForTier is the inverse of TierForVisibility.
func VisibilityForTier(t StorageTier) (Visibility, error) {
	switch t {
	case TierStandard:
		return VisibilityPublic, nil
	case TierArchive:
		return VisibilityPrivate, nil
	case TierInfrequentAccess:
		return VisibilityInfrequent, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidTier, "unknown storage tier %q", t)
	}
}

// ObjectInfo represents metadata about an object. It is always the
// result of a live query; nothing in this module caches it.
type ObjectInfo struct {
	Path         string            `json:"path"`
	Size         int64             `json:"size"`
	LastModified time.Time         `json:"last_modified"`
	ETag         string            `json:"etag"`
	ContentType  string            `json:"content_type"`
	StorageTier  StorageTier       `json:"storage_tier"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Entry is one row of a directory listing: either an object or a
// synthesized directory derived from a common key prefix.
type Entry struct {
	Path         string      `json:"path"`
	IsDir        bool        `json:"is_dir"`
	Size         int64       `json:"size"`
	LastModified time.Time   `json:"last_modified"`
	StorageTier  StorageTier `json:"storage_tier,omitempty"`
}

// ListResult is a single page of a bucket listing.
type ListResult struct {
	Objects  []ObjectInfo `json:"objects"`
	Prefixes []string     `json:"prefixes,omitempty"`

	// NextStartWith is the continuation cursor; empty means the listing
	// is complete. Pages are not snapshot-consistent with each other.
	NextStartWith string `json:"next_start_with,omitempty"`
}

// BulkDeleteError describes one key that a bulk delete failed to remove.
type BulkDeleteError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkDeleteResult partitions a bulk delete into exactly the keys that
// were removed and the keys that failed, with no key in both sets.
// Partial failure is data, not an error.
type BulkDeleteResult struct {
	Deleted []string          `json:"deleted"`
	Errors  []BulkDeleteError `json:"errors,omitempty"`
}

// Failed reports whether any key in the batch could not be deleted.
func (r BulkDeleteResult) Failed() bool {
	return len(r.Errors) > 0
}
