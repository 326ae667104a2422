// Package fs implements the document store on the local filesystem.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/observability"
	"github.com/Tech-Trailblazers/graham-chemtel-net-documentation/internal/storage"
)

// tempSuffix marks in-flight writes so listings never surface them.
const tempSuffix = ".part"

// Store implements storage.Store rooted at a base directory.
type Store struct {
	basePath string
	logger   observability.Logger
}

// New creates a filesystem store rooted at basePath, creating the root if
// it does not exist.
func New(basePath string, logger observability.Logger) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}
	return &Store{
		basePath: basePath,
		logger:   logger.WithFields(observability.Fields{"store": "filesystem"}),
	}, nil
}

// BasePath returns the store root, mainly for log lines in the report.
func (s *Store) BasePath() string {
	return s.basePath
}

// Put writes through a temp file in the same directory and renames it into
// place, so a transport failure mid-write never leaves a partial object
// under the final key.
func (s *Store) Put(ctx context.Context, key string, reader io.Reader) error {
	objectPath := s.objectPath(key)

	if err := os.MkdirAll(filepath.Dir(objectPath), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	tempPath := objectPath + tempSuffix
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	written, err := io.Copy(file, reader)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write object: %w", err)
	}

	if err := os.Rename(tempPath, objectPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize object: %w", err)
	}

	s.logger.Debug(ctx, "Object stored", observability.Fields{
		"key":   key,
		"bytes": written,
	})
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(s.objectPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	return file, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	info, err := os.Stat(s.objectPath(key))
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *Store) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	info, err := os.Stat(s.objectPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return storage.ObjectInfo{}, storage.ErrNotFound
		}
		return storage.ObjectInfo{}, err
	}
	return storage.ObjectInfo{
		Key:          key,
		Size:         info.Size(),
		LastModified: info.ModTime(),
	}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.objectPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to delete object: %w", err)
	}
	s.logger.Debug(ctx, "Object deleted", observability.Fields{"key": key})
	return nil
}

func (s *Store) Rename(ctx context.Context, oldKey, newKey string) error {
	oldPath := s.objectPath(oldKey)
	newPath := s.objectPath(newKey)

	if _, err := os.Stat(oldPath); err != nil {
		if os.IsNotExist(err) {
			return storage.ErrNotFound
		}
		return err
	}

	// os.Rename would silently replace the target on most filesystems, so
	// the occupancy check has to come first.
	if _, err := os.Stat(newPath); err == nil {
		return storage.ErrTargetExists
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename object: %w", err)
	}

	s.logger.Debug(ctx, "Object renamed", observability.Fields{
		"from": oldKey,
		"to":   newKey,
	})
	return nil
}

func (s *Store) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	var objects []storage.ObjectInfo

	err := filepath.Walk(s.basePath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return nil // unreadable entries are skipped, not fatal
		}
		if info.IsDir() || strings.HasSuffix(path, tempSuffix) {
			return nil
		}

		relPath, rerr := filepath.Rel(s.basePath, path)
		if rerr != nil {
			return nil
		}

		objects = append(objects, storage.ObjectInfo{
			Key:          filepath.ToSlash(relPath),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	return objects, nil
}

// objectPath maps a slash-separated key onto the store root, stripping any
// traversal components.
func (s *Store) objectPath(key string) string {
	key = strings.TrimPrefix(key, "/")
	key = filepath.FromSlash(key)
	key = filepath.Clean(key)
	for strings.HasPrefix(key, ".."+string(filepath.Separator)) || key == ".." {
		key = strings.TrimPrefix(key, "..")
		key = strings.TrimPrefix(key, string(filepath.Separator))
	}
	return filepath.Join(s.basePath, key)
}
