// Package health reports service readiness.
package health

import (
	"context"
	"fmt"
)

// Service checks the dependencies required to serve requests.
type Service struct {
	store StorePinger
}

// New creates a health service.
func New(store StorePinger) *Service {
	return &Service{store: store}
}

// Check returns nil when the service is ready to serve.
func (s *Service) Check(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store health check: %w", err)
	}
	return nil
}
