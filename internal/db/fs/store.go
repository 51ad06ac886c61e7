// Package fs implements the blob store on the local filesystem,
// one file per key under a root directory.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/gallex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store keeps one file per key under root.
type Store struct {
	root string
}

// NewStore creates the root directory if needed and returns the store.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &db.Error{Op: db.OpPing, Err: err}
	}
	return &Store{root: root}, nil
}

// Get reads the blob for key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set writes the blob for key. Last write wins.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if err := os.WriteFile(s.path(key), value, 0o644); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Ping verifies the root directory is accessible.
func (s *Store) Ping(_ context.Context) error {
	if _, err := os.Stat(s.root); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close is a no-op for the filesystem store.
func (s *Store) Close() {}

// path maps a key to a filename. Identifier keys contain "/" and ":",
// neither of which is filename-safe.
func (s *Store) path(key string) string {
	sanitized := strings.NewReplacer("/", "_", ":", "_").Replace(key)
	return filepath.Join(s.root, sanitized+".txt")
}
