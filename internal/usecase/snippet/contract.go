package snippet

import (
	"context"

	"github.com/kailas-cloud/gallex/internal/domain/document"
)

// Fetcher retrieves contextual excerpts for one document.
type Fetcher interface {
	Fetch(ctx context.Context, identifier, contentQuery string) ([]document.Snippet, error)
}
