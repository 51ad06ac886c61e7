// Package search normalizes raw SRU result sets into the document model.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/gallex/internal/cql"
	"github.com/kailas-cloud/gallex/internal/domain/search/result"
	"github.com/kailas-cloud/gallex/internal/gallica"
	"github.com/kailas-cloud/gallex/internal/metrics"
)

// transport is the consumer interface for the SRU endpoint (ISP).
type transport interface {
	Search(
		ctx context.Context, expr cql.Expression, page, pageSize int, exact bool,
	) (*gallica.ResultSet, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	transport transport
	logger    *zap.Logger
}

// New creates a search repository.
func New(t transport, logger *zap.Logger) *Repo {
	return &Repo{transport: t, logger: logger}
}

// Search runs one paginated SRU request and normalizes the raw records.
// Order is preserved; one malformed record never aborts the batch, it is
// dropped, counted, and logged.
func (r *Repo) Search(
	ctx context.Context, expr cql.Expression, page, pageSize int, exact bool,
) (result.Page, error) {
	rs, err := r.transport.Search(ctx, expr, page, pageSize, exact)
	if err != nil {
		return result.Page{}, fmt.Errorf("sru search: %w", err)
	}

	documents, skipped := normalize(rs.Records)
	if skipped > 0 {
		metrics.SkippedRecordsTotal.Add(float64(skipped))
		r.logger.Warn("skipped malformed records",
			zap.Int("skipped", skipped),
			zap.Int("page", page),
		)
	}

	return result.NewPage(page, rs.Total, skipped, documents), nil
}
