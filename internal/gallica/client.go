// Package gallica is the HTTP transport for the upstream SRU search service.
// Every request passes through the shared rate-limiter gate before hitting
// the network.
package gallica

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/gallex/internal/domain"
	"github.com/kailas-cloud/gallex/internal/metrics"
	"github.com/kailas-cloud/gallex/internal/ratelimit"
)

// Config holds upstream endpoint locations and the request timeout.
type Config struct {
	SRUBaseURL       string
	ContentSearchURL string
	TextBaseURL      string
	RequestTimeout   time.Duration
}

// Client issues rate-limited requests against the three upstream endpoints.
type Client struct {
	cfg    Config
	http   *http.Client
	gate   *ratelimit.Gate
	logger *zap.Logger
}

// NewClient creates a transport client sharing the given gate.
func NewClient(cfg Config, gate *ratelimit.Gate, logger *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return nil // follow redirects
			},
		},
		gate:   gate,
		logger: logger,
	}
}

// get performs one gated GET and returns the response body.
// Non-2xx statuses become RemoteError; deadline expiry becomes ErrTimeout.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, params url.Values) ([]byte, int, error) {
	if err := c.gate.Acquire(ctx); err != nil {
		return nil, 0, c.mapWaitErr(err)
	}
	defer c.gate.Release()

	u := rawURL
	if len(params) > 0 {
		u = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream(endpoint, "error", time.Since(start))
		return nil, 0, c.mapWaitErr(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	metrics.ObserveUpstream(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, resp.StatusCode, c.mapWaitErr(err)
	}

	c.logger.Debug("upstream request",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	return body, resp.StatusCode, nil
}

// mapWaitErr converts context expiry into the timeout error the callers
// surface; the gate slot is already released by then.
func (c *Client) mapWaitErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}
