package ocifs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectfs/ocifs/pkg/types"
)

func entryPaths(entries []types.Entry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}

func TestListContents_Scope(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seed("docs/a.txt", "a", types.TierStandard)
	store.seed("docs/sub/b.txt", "b", types.TierStandard)
	store.seed("img/c.png", "c", types.TierStandard)
	fs := testAdapter(t, store, "")

	t.Run("one level", func(t *testing.T) {
		entries, err := fs.ListContents(ctx, "docs", false)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "docs/a.txt", entries[0].Path)
		assert.False(t, entries[0].IsDir)
		assert.Equal(t, int64(1), entries[0].Size)

		assert.Equal(t, "docs/sub/", entries[1].Path)
		assert.True(t, entries[1].IsDir, "a common prefix surfaces as a directory")
	})

	t.Run("recursive", func(t *testing.T) {
		entries, err := fs.ListContents(ctx, "docs", true)
		require.NoError(t, err)
		assert.Equal(t, []string{"docs/a.txt", "docs/sub/b.txt"}, entryPaths(entries))
	})

	t.Run("root", func(t *testing.T) {
		entries, err := fs.ListContents(ctx, "", false)
		require.NoError(t, err)
		assert.Equal(t, []string{"docs/", "img/"}, entryPaths(entries))
	})
}

func TestListContents_StripsPrefix(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seed("uploads/docs/a.txt", "a", types.TierArchive)
	store.seed("uploads/docs/sub/b.txt", "b", types.TierStandard)
	store.seed("elsewhere/docs/x.txt", "x", types.TierStandard)
	fs := testAdapter(t, store, "uploads")

	entries, err := fs.ListContents(ctx, "docs", false)
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/a.txt", "docs/sub/"}, entryPaths(entries),
		"paths come back logical and scoped to the prefix")
	assert.Equal(t, types.TierArchive, entries[0].StorageTier)
}

func TestListContents_FiltersPlaceholder(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seed("docs/", "", types.TierStandard) // slash-convention marker
	store.seed("docs/a.txt", "a", types.TierStandard)
	fs := testAdapter(t, store, "")

	entries, err := fs.ListContents(ctx, "docs", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.txt"}, entryPaths(entries))

	entries, err = fs.ListContents(ctx, "docs", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.txt"}, entryPaths(entries),
		"deep mode filters only the listing root's marker")
}

func TestListContents_DeepKeepsNestedMarkers(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seed("docs/sub/", "", types.TierStandard)
	store.seed("docs/sub/b.txt", "b", types.TierStandard)
	fs := testAdapter(t, store, "")

	entries, err := fs.ListContents(ctx, "docs", true)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "docs/sub/", entries[0].Path)
	assert.True(t, entries[0].IsDir, "a nested marker keeps its directory shape")
	assert.Equal(t, "docs/sub/b.txt", entries[1].Path)
}

func TestListContents_FollowsPagination(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.pageSize = 2
	for _, k := range []string{"logs/1.txt", "logs/2.txt", "logs/3.txt", "logs/4.txt", "logs/5.txt"} {
		store.seed(k, "x", types.TierStandard)
	}
	fs := testAdapter(t, store, "")

	entries, err := fs.ListContents(ctx, "logs", true)
	require.NoError(t, err)
	assert.Len(t, entries, 5, "all pages are walked")
	assert.Len(t, store.callsFor("list"), 3, "five keys at two per page")
}

func TestListContents_EmptyDirectory(t *testing.T) {
	ctx := context.Background()
	fs := testAdapter(t, newFakeStore(), "")

	entries, err := fs.ListContents(ctx, "nothing-here", false)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
