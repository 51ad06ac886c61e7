// Package search orchestrates query compilation, upstream retrieval, and
// snippet enrichment.
package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/gallex/internal/cql"
	"github.com/kailas-cloud/gallex/internal/domain"
	"github.com/kailas-cloud/gallex/internal/domain/document"
	"github.com/kailas-cloud/gallex/internal/domain/search/query"
	"github.com/kailas-cloud/gallex/internal/domain/search/result"
)

const (
	// maxSnippetsPerDocument caps excerpts attached during enrichment.
	maxSnippetsPerDocument = 5
	// enrichWorkers bounds enrichment goroutines. The shared gate serializes
	// the actual requests; this only bounds queued waiters.
	enrichWorkers = 4
)

// Service handles paginated document search.
type Service struct {
	repo     Repository
	snippets SnippetFetcher
	logger   *zap.Logger
	pageSize int
}

// New creates a search service. snippets may be nil to disable enrichment.
func New(repo Repository, snippets SnippetFetcher, logger *zap.Logger) *Service {
	return &Service{repo: repo, snippets: snippets, logger: logger, pageSize: query.MaxPageSize}
}

// WithPageSize overrides the per-page record count (still capped upstream).
func (s *Service) WithPageSize(n int) *Service {
	if n > 0 {
		s.pageSize = n
	}
	return s
}

// Search compiles the query, retrieves one page of results, and enriches
// each document with excerpts when a text query is present. Compiler errors
// surface verbatim; they are never silently repaired.
func (s *Service) Search(ctx context.Context, q query.Query, page int) (result.Page, error) {
	expr, err := cql.Compile(q)
	if err != nil {
		return result.Page{}, err
	}

	pg, err := s.repo.Search(ctx, expr, page, s.pageSize, q.ExactMatch())
	if err != nil {
		return result.Page{}, fmt.Errorf("search page %d: %w", page, err)
	}

	if s.snippets == nil || len(pg.Documents()) == 0 {
		return pg, nil
	}
	contentQuery, err := cql.Normalize(q.Text())
	if err != nil {
		// Already validated by Compile; an empty text query lands here.
		return pg, nil
	}

	return s.enrich(ctx, pg, contentQuery), nil
}

// enrich attaches excerpts to each document concurrently. Failures are
// per-document: one failing fetch never cancels the others, the document is
// returned without snippets.
func (s *Service) enrich(ctx context.Context, pg result.Page, contentQuery string) result.Page {
	docs := pg.Documents()
	enriched := make([]document.Document, len(docs))

	var g errgroup.Group
	g.SetLimit(enrichWorkers)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			snippets, err := s.snippets.Fetch(ctx, doc.Identifier(), contentQuery)
			switch {
			case errors.Is(err, domain.ErrSnippetUnavailable):
				// Many valid documents simply have no searchable OCR.
				enriched[i] = doc
			case err != nil:
				s.logger.Warn("snippet enrichment failed",
					zap.String("identifier", doc.Identifier()),
					zap.Error(err),
				)
				enriched[i] = doc
			default:
				if len(snippets) > maxSnippetsPerDocument {
					snippets = snippets[:maxSnippetsPerDocument]
				}
				enriched[i] = doc.WithSnippets(snippets)
			}
			return nil
		})
	}
	_ = g.Wait()

	return pg.WithDocuments(enriched)
}
