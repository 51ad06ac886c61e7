// Package snippet exposes per-document excerpt lookup.
package snippet

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/gallex/internal/cql"
	"github.com/kailas-cloud/gallex/internal/domain"
	"github.com/kailas-cloud/gallex/internal/domain/document"
)

// Service handles snippet lookups for a single document.
type Service struct {
	fetcher Fetcher
}

// New creates a snippet service.
func New(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Snippets validates queryText against the shared boolean grammar and
// fetches the matching excerpts. A document without searchable OCR yields an
// empty list, not an error.
func (s *Service) Snippets(ctx context.Context, identifier, queryText string) ([]document.Snippet, error) {
	contentQuery, err := cql.Normalize(queryText)
	if err != nil {
		return nil, err
	}

	snippets, err := s.fetcher.Fetch(ctx, identifier, contentQuery)
	if err != nil {
		if errors.Is(err, domain.ErrSnippetUnavailable) {
			return []document.Snippet{}, nil
		}
		return nil, fmt.Errorf("snippets for %s: %w", identifier, err)
	}
	return snippets, nil
}
