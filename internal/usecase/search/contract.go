package search

import (
	"context"

	"github.com/kailas-cloud/gallex/internal/cql"
	"github.com/kailas-cloud/gallex/internal/domain/document"
	"github.com/kailas-cloud/gallex/internal/domain/search/result"
)

// Repository runs compiled queries against the upstream index and returns
// normalized pages.
type Repository interface {
	Search(
		ctx context.Context, expr cql.Expression, page, pageSize int, exact bool,
	) (result.Page, error)
}

// SnippetFetcher retrieves contextual excerpts for one document.
type SnippetFetcher interface {
	Fetch(ctx context.Context, identifier, contentQuery string) ([]document.Snippet, error)
}
