package ocifs

import (
	"context"
	"time"

	"github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/metrics"
	"github.com/objectfs/ocifs/pkg/types"
)

// GetVisibility reports the visibility label realized by the object's
// storage tier. The provider exposes no ACLs here; visibility is a
// documented repurposing of the tier, see types.TierForVisibility.
func (a *Adapter) GetVisibility(ctx context.Context, path string) (visibility types.Visibility, err error) {
	physical, err := a.physicalPath(path)
	if err != nil {
		return "", err
	}
	start := time.Now()
	defer func() { a.record(metrics.OpVisibility, start, 0, err) }()

	info, exists, err := a.store.HeadObject(ctx, physical)
	if err != nil {
		return "", err
	}
	if !exists {
		err = errors.Newf(errors.ErrCodeObjectNotFound, "object %s not found", path).
			WithOp("get_visibility").WithPath(path)
		return "", err
	}

	visibility, err = types.VisibilityForTier(info.StorageTier)
	return visibility, err
}

// SetVisibility moves the object to the tier that realizes visibility.
// Unknown labels are rejected before any request is made.
func (a *Adapter) SetVisibility(ctx context.Context, path string, visibility types.Visibility) (err error) {
	physical, err := a.physicalPath(path)
	if err != nil {
		return err
	}
	tier, err := types.TierForVisibility(visibility)
	if err != nil {
		return err
	}
	start := time.Now()
	defer func() { a.record(metrics.OpVisibility, start, 0, err) }()

	err = a.store.UpdateObjectStorageTier(ctx, physical, tier)
	return err
}

// Restore requests archived objects back for hours hours. Bounds are
// validated by the client before any request leaves the process;
// per-path failures surface as one structured error after every path
// has been attempted.
func (a *Adapter) Restore(ctx context.Context, paths []string, hours int) (err error) {
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		physical, perr := a.physicalPath(p)
		if perr != nil {
			return perr
		}
		keys = append(keys, physical)
	}
	start := time.Now()
	defer func() { a.record(metrics.OpRestore, start, 0, err) }()

	err = a.store.RestoreObjects(ctx, keys, hours)
	return err
}
