// Package filestore implements the storage.Sink interface on the local
// filesystem. Keys map to paths relative to a root directory.
package filestore

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store is a filesystem-backed sink rooted at a directory.
type Store struct {
	root string
}

// New creates a store rooted at dir. The root directory must exist; keys
// containing "/" create subdirectories on demand.
func New(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("filestore.New: stat root failed: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("filestore.New: root %q is not a directory", dir)
	}
	return &Store{root: dir}, nil
}

// Put stores data at the path named by key, creating parent directories as
// needed.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("filestore.Put: %w", err)
	}

	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("filestore.Put: create directory failed: %w", err)
	}
	if err := os.WriteFile(target, data, 0o640); err != nil {
		return fmt.Errorf("filestore.Put: write failed: %w", err)
	}
	return nil
}

// Get retrieves the data stored at key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("filestore.Get: %w", err)
	}

	target, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("filestore.Get: read failed: %w", err)
	}
	return data, nil
}

// List returns all keys under the root with the given prefix, sorted.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("filestore.List: %w", err)
	}

	keys := []string{}
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filestore.List: walk failed: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete removes the data at key. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("filestore.Delete: %w", err)
	}

	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("filestore.Delete: remove failed: %w", err)
	}
	return nil
}

// resolve maps a key to an absolute path and rejects keys escaping the
// root.
func (s *Store) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || clean == ".." || filepath.IsAbs(clean) ||
		strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("filestore: invalid key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}
