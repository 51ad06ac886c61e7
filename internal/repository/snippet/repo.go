// Package snippet maps content-search excerpts into the snippet model.
package snippet

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/gallex/internal/domain/document"
	"github.com/kailas-cloud/gallex/internal/gallica"
)

// transport is the consumer interface for the content-search endpoint (ISP).
type transport interface {
	Snippets(ctx context.Context, identifier, contentQuery string) ([]gallica.SnippetItem, error)
}

// Repo implements usecase/search.SnippetFetcher.
type Repo struct {
	transport transport
}

// New creates a snippet repository.
func New(t transport) *Repo {
	return &Repo{transport: t}
}

// Fetch returns the excerpts for one document. contentQuery must be in the
// shared grammar's canonical form; ErrSnippetUnavailable propagates for the
// caller to decide.
func (r *Repo) Fetch(ctx context.Context, identifier, contentQuery string) ([]document.Snippet, error) {
	items, err := r.transport.Snippets(ctx, identifier, contentQuery)
	if err != nil {
		return nil, fmt.Errorf("fetch snippets %s: %w", identifier, err)
	}

	snippets := make([]document.Snippet, 0, len(items))
	for _, item := range items {
		snippets = append(snippets, document.NewSnippet(item.Content, item.Page))
	}
	return snippets, nil
}
