package ocifs

import (
	"context"
	"time"

	"github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/metrics"
	"github.com/objectfs/ocifs/pkg/types"
)

// Move renames src to dst. The server-side rename is atomic and is
// always tried first; when the service rejects it, Move falls back to
// copyThenDelete. A missing source is an error here, unlike the
// existence probes: moving nothing cannot succeed.
func (a *Adapter) Move(ctx context.Context, src, dst string) (err error) {
	srcKey, err := a.physicalPath(src)
	if err != nil {
		return err
	}
	dstKey, err := a.physicalPath(dst)
	if err != nil {
		return err
	}
	start := time.Now()
	defer func() { a.record(metrics.OpMove, start, 0, err) }()

	found, err := a.renameViaServer(ctx, srcKey, dstKey)
	if err == nil {
		if !found {
			err = errors.Newf(errors.ErrCodeObjectNotFound, "source object %s not found", src).
				WithOp("move").WithPath(src)
			return err
		}
		return nil
	}

	a.logger.Warn("rename rejected, using copy+delete", "src", src, "dst", dst, "error", err)
	err = a.copyThenDelete(ctx, srcKey, dstKey)
	return err
}

// Copy duplicates src at dst within the bucket. Success means the
// service accepted the copy; completion is asynchronous.
func (a *Adapter) Copy(ctx context.Context, src, dst string) (err error) {
	srcKey, err := a.physicalPath(src)
	if err != nil {
		return err
	}
	dstKey, err := a.physicalPath(dst)
	if err != nil {
		return err
	}
	start := time.Now()
	defer func() { a.record(metrics.OpCopy, start, 0, err) }()

	err = a.store.CopyObject(ctx, srcKey, dstKey, types.CopyOptions{})
	return err
}

// renameViaServer is the atomic move path: a single rename call the
// service applies as one operation.
func (a *Adapter) renameViaServer(ctx context.Context, srcKey, dstKey string) (bool, error) {
	return a.store.RenameObject(ctx, srcKey, dstKey)
}

// copyThenDelete is the fallback move path and is NOT atomic: the copy
// is accepted first, then the source is deleted. A failure between the
// two calls leaves the object under both keys, and a copy the service
// accepted but later fails loses the move. Both outcomes are inherent
// to the fallback and documented rather than masked.
func (a *Adapter) copyThenDelete(ctx context.Context, srcKey, dstKey string) error {
	if err := a.store.CopyObject(ctx, srcKey, dstKey, types.CopyOptions{}); err != nil {
		return err
	}
	return a.store.DeleteObject(ctx, srcKey)
}
