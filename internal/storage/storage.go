// Package storage defines the document store port. The filesystem is the
// system's only ledger: existence of an object under its canonical key is
// what "already downloaded" means. Modeling it as an injected capability
// lets tests substitute an in-memory double and lets the binary target S3.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when an object does not exist in the store.
var ErrNotFound = errors.New("object not found")

// ErrTargetExists is returned by Rename when the destination key is
// already occupied. Renames never overwrite.
var ErrTargetExists = errors.New("rename target already exists")

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	// Key is the slash-separated path of the object relative to the store
	// root.
	Key          string
	Size         int64
	LastModified time.Time
}

// Store abstracts the document store. Implementations must be safe for
// concurrent use across distinct keys; the pipeline never mutates the same
// key from two goroutines.
type Store interface {
	// Put writes the full content under key, creating parent paths as
	// needed. A failed Put must not leave a partial object observable at
	// key. Put does not overwrite protection: callers check Exists first.
	Put(ctx context.Context, key string, reader io.Reader) error

	// Get opens the object for reading. Returns ErrNotFound if absent.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object is present at key.
	Exists(ctx context.Context, key string) (bool, error)

	// Stat returns object metadata. Returns ErrNotFound if absent.
	Stat(ctx context.Context, key string) (ObjectInfo, error)

	// Delete removes the object. Returns ErrNotFound if absent.
	Delete(ctx context.Context, key string) error

	// Rename moves an object to a new key within the store. Returns
	// ErrTargetExists when the destination is occupied and ErrNotFound
	// when the source is absent.
	Rename(ctx context.Context, oldKey, newKey string) error

	// List enumerates every object in the store. A missing root yields an
	// empty listing, not an error. No ordering is guaranteed.
	List(ctx context.Context) ([]ObjectInfo, error)
}
