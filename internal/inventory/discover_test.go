package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage/memory"
)

func TestDiscoverFiltersByExtension(t *testing.T) {
	store := memory.New()
	now := time.Now()
	store.Seed("a.pdf", []byte("a"), now)
	store.Seed("nested/B.PDF", []byte("b"), now)
	store.Seed("notes.txt", []byte("t"), now)
	store.Seed("archive.pdf.bak", []byte("z"), now)

	items, err := Discover(context.Background(), store, ".pdf")
	require.NoError(t, err)

	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	assert.ElementsMatch(t, []string{"a.pdf", "nested/B.PDF"}, keys)
}

func TestDiscoverEmptyStore(t *testing.T) {
	items, err := Discover(context.Background(), memory.New(), ".pdf")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	items := []storage.ObjectInfo{
		{Key: "old.pdf", LastModified: base.Add(-2 * time.Hour)},
		{Key: "new.pdf", LastModified: base},
		{Key: "mid.pdf", LastModified: base.Add(-1 * time.Hour)},
		{Key: "tie-b.pdf", LastModified: base.Add(-1 * time.Hour)},
	}

	SortNewestFirst(items)

	keys := []string{items[0].Key, items[1].Key, items[2].Key, items[3].Key}
	assert.Equal(t, []string{"new.pdf", "mid.pdf", "tie-b.pdf", "old.pdf"}, keys)
}
