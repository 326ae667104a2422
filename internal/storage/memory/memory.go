// Package memory implements the document store in process memory. It is
// the test double for the filesystem: same contract, no disk.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage"
)

type object struct {
	data    []byte
	modTime time.Time
}

// Store implements storage.Store over a map. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
	clock   func() time.Time
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		objects: make(map[string]object),
		clock:   time.Now,
	}
}

// Seed places an object directly, with an explicit modification time.
// Test setup helper; not part of the Store contract.
func (s *Store) Seed(key string, data []byte, modTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{data: append([]byte(nil), data...), modTime: modTime}
}

func (s *Store) Put(ctx context.Context, key string, reader io.Reader) error {
	// Buffer fully before touching the map so a failed read leaves no
	// partial object, matching the filesystem adapter's temp-file write.
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{data: data, modTime: s.clock()}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *Store) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return storage.ObjectInfo{}, storage.ErrNotFound
	}
	return storage.ObjectInfo{
		Key:          key,
		Size:         int64(len(obj.data)),
		LastModified: obj.modTime,
	}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return storage.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *Store) Rename(ctx context.Context, oldKey, newKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[oldKey]
	if !ok {
		return storage.ErrNotFound
	}
	if _, occupied := s.objects[newKey]; occupied && newKey != oldKey {
		return storage.ErrTargetExists
	}

	delete(s.objects, oldKey)
	s.objects[newKey] = obj
	return nil
}

func (s *Store) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]storage.ObjectInfo, 0, len(s.objects))
	for key, obj := range s.objects {
		infos = append(infos, storage.ObjectInfo{
			Key:          key,
			Size:         int64(len(obj.data)),
			LastModified: obj.modTime,
		})
	}
	return infos, nil
}
