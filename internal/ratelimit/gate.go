// Package ratelimit serializes outbound requests to the upstream service.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Gate bounds outbound concurrency and enforces a minimum inter-request
// interval. All upstream consumers share one instance, so search, snippet,
// and text requests queue behind each other in arrival order.
type Gate struct {
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// New creates a gate. concurrency <= 0 defaults to 1 in-flight request;
// minInterval <= 0 disables interval spacing.
func New(minInterval time.Duration, concurrency int) *Gate {
	if concurrency <= 0 {
		concurrency = 1
	}
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Gate{
		sem:     semaphore.NewWeighted(int64(concurrency)),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Acquire blocks until a slot and a rate token are available. Waiters are
// served in arrival order. Cancellation while queued returns the context
// error without holding the slot.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire slot: %w", err)
	}
	if err := g.limiter.Wait(ctx); err != nil {
		g.sem.Release(1)
		return fmt.Errorf("wait for interval: %w", err)
	}
	return nil
}

// Release frees the slot taken by Acquire.
func (g *Gate) Release() {
	g.sem.Release(1)
}
