package ocifs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectfs/ocifs/pkg/errors"
	"github.com/objectfs/ocifs/pkg/types"
)

func TestMove_RenamePath(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seed("uploads/old.txt", "payload", types.TierStandard)
	fs := testAdapter(t, store, "uploads")

	require.NoError(t, fs.Move(ctx, "old.txt", "new.txt"))

	_, oldLeft := store.objects["uploads/old.txt"]
	assert.False(t, oldLeft)
	assert.Equal(t, "payload", string(store.objects["uploads/new.txt"].data))

	// one atomic rename, no copy or delete involved
	assert.Equal(t, []string{"rename uploads/old.txt uploads/new.txt"}, store.callsFor("rename"))
	assert.Empty(t, store.callsFor("copy"))
	assert.Empty(t, store.callsFor("delete"))
}

func TestMove_MissingSource(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	fs := testAdapter(t, store, "")

	err := fs.Move(ctx, "ghost.txt", "new.txt")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeObjectNotFound, errors.CodeOf(err))
	assert.Empty(t, store.callsFor("copy"), "a missing source must not trigger the fallback")
}

func TestMove_FallbackPath(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seed("old.txt", "payload", types.TierStandard)
	store.renameErr = errors.New(errors.ErrCodeUnexpectedStatus, "rename not supported").WithStatus(501)
	fs := testAdapter(t, store, "")

	require.NoError(t, fs.Move(ctx, "old.txt", "new.txt"))

	// the fallback is copy first, then delete
	assert.Equal(t, []string{"copy old.txt new.txt"}, store.callsFor("copy"))
	assert.Equal(t, []string{"delete old.txt"}, store.callsFor("delete"))

	_, oldLeft := store.objects["old.txt"]
	assert.False(t, oldLeft)
	assert.Equal(t, "payload", string(store.objects["new.txt"].data))
}

func TestMove_FallbackCopyFailureKeepsSource(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seed("old.txt", "payload", types.TierStandard)
	store.renameErr = errors.New(errors.ErrCodeUnexpectedStatus, "rename not supported")
	store.copyErr = errors.New(errors.ErrCodeNetworkError, "connection reset")
	fs := testAdapter(t, store, "")

	err := fs.Move(ctx, "old.txt", "new.txt")
	require.Error(t, err)

	_, srcLeft := store.objects["old.txt"]
	assert.True(t, srcLeft, "a failed copy must leave the source in place")
	assert.Empty(t, store.callsFor("delete"), "the source is only deleted after the copy is accepted")
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seed("uploads/a.txt", "data", types.TierArchive)
	fs := testAdapter(t, store, "uploads")

	require.NoError(t, fs.Copy(ctx, "a.txt", "b.txt"))

	assert.Equal(t, "data", string(store.objects["uploads/b.txt"].data))
	_, srcLeft := store.objects["uploads/a.txt"]
	assert.True(t, srcLeft, "copy leaves the source")

	t.Run("missing source is an error", func(t *testing.T) {
		err := fs.Copy(ctx, "ghost.txt", "b.txt")
		assert.Equal(t, errors.ErrCodeObjectNotFound, errors.CodeOf(err))
	})
}
