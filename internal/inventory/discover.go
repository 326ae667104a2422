// Package inventory enumerates stored documents matching the target
// extension. The listing is recomputed on every call; it is a snapshot,
// not a cache.
package inventory

import (
	"context"
	"sort"
	"strings"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage"
)

// Discover returns every object whose key ends with ext, matched
// case-insensitively. A missing or empty root yields an empty inventory,
// not an error. No ordering is guaranteed; callers sort as needed.
func Discover(ctx context.Context, store storage.Store, ext string) ([]storage.ObjectInfo, error) {
	objects, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	lowerExt := strings.ToLower(ext)
	matched := objects[:0]
	for _, obj := range objects {
		if strings.HasSuffix(strings.ToLower(obj.Key), lowerExt) {
			matched = append(matched, obj)
		}
	}
	return matched, nil
}

// SortNewestFirst orders the inventory by descending modification time, so
// the most recently acquired documents are dispatched first. Ties break on
// key for a stable order.
func SortNewestFirst(items []storage.ObjectInfo) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].LastModified.Equal(items[j].LastModified) {
			return items[i].LastModified.After(items[j].LastModified)
		}
		return items[i].Key < items[j].Key
	})
}
