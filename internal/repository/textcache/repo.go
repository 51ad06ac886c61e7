// Package textcache adapts the blob store into the OCR text cache.
package textcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/gallex/internal/db"
	"github.com/kailas-cloud/gallex/internal/domain"
	"github.com/kailas-cloud/gallex/internal/domain/document"
)

// Repo implements usecase/text.Cache over a db.Store, keyed by normalized
// ARK identifier.
type Repo struct {
	store db.Store
}

// New creates a text cache repository.
func New(store db.Store) *Repo {
	return &Repo{store: store}
}

// Get returns the cached text for identifier, or domain.ErrNotFound on a miss.
func (r *Repo) Get(ctx context.Context, identifier string) (string, error) {
	data, err := r.store.Get(ctx, document.NormalizeARK(identifier))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("cache get %s: %w", identifier, err)
	}
	return string(data), nil
}

// Put stores the text for identifier. Entries are immutable in intent;
// concurrent writers race last-write-wins.
func (r *Repo) Put(ctx context.Context, identifier, text string) error {
	if err := r.store.Set(ctx, document.NormalizeARK(identifier), []byte(text)); err != nil {
		return fmt.Errorf("cache put %s: %w", identifier, err)
	}
	return nil
}
