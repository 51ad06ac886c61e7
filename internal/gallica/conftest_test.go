package gallica

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/gallex/internal/ratelimit"
)

// newTestClient starts a test server and returns a client whose three
// endpoints all point at it. The gate is wide open so tests run fast.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		SRUBaseURL:       srv.URL + "/SRU",
		ContentSearchURL: srv.URL + "/services/ContentSearch",
		TextBaseURL:      srv.URL,
		RequestTimeout:   5 * time.Second,
	}, ratelimit.New(0, 1), zap.NewNop())

	return client, srv
}
