// Package text serves full OCR text through a get-or-fetch cache.
package text

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/gallex/internal/domain"
	"github.com/kailas-cloud/gallex/internal/metrics"
)

// Service resolves document text, cache first.
type Service struct {
	cache      Cache
	downloader Downloader
	logger     *zap.Logger
}

// New creates a text service.
func New(cache Cache, downloader Downloader, logger *zap.Logger) *Service {
	return &Service{cache: cache, downloader: downloader, logger: logger}
}

// GetOrFetch returns the OCR text for identifier. A cache hit returns
// without any network call; text for a given identifier is immutable once
// cached. On a miss the text is downloaded and stored best-effort: a failed
// write still returns the fetched text, the cache is an optimization and not
// a correctness dependency.
func (s *Service) GetOrFetch(ctx context.Context, identifier string) (string, error) {
	cached, err := s.cache.Get(ctx, identifier)
	switch {
	case err == nil:
		metrics.TextCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	case !errors.Is(err, domain.ErrNotFound):
		s.logger.Warn("text cache read failed, fetching upstream",
			zap.String("identifier", identifier),
			zap.Error(err),
		)
	}
	metrics.TextCacheTotal.WithLabelValues("miss").Inc()

	text, err := s.downloader.Text(ctx, identifier)
	if err != nil {
		return "", fmt.Errorf("download text %s: %w", identifier, err)
	}

	if err := s.cache.Put(ctx, identifier, text); err != nil {
		s.logger.Warn("text cache write failed",
			zap.String("identifier", identifier),
			zap.Error(err),
		)
	}
	return text, nil
}
