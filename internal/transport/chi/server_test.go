package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/gallex/internal/cql"
	"github.com/kailas-cloud/gallex/internal/domain"
	"github.com/kailas-cloud/gallex/internal/domain/document"
	"github.com/kailas-cloud/gallex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/gallex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gallex/internal/usecase/search"
	snippetuc "github.com/kailas-cloud/gallex/internal/usecase/snippet"
	textuc "github.com/kailas-cloud/gallex/internal/usecase/text"
)

type mockSearchRepo struct {
	searchFn func(
		ctx context.Context, expr cql.Expression, page, pageSize int, exact bool,
	) (result.Page, error)
}

func (m *mockSearchRepo) Search(
	ctx context.Context, expr cql.Expression, page, pageSize int, exact bool,
) (result.Page, error) {
	return m.searchFn(ctx, expr, page, pageSize, exact)
}

type mockFetcher struct {
	fetchFn func(ctx context.Context, identifier, contentQuery string) ([]document.Snippet, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, identifier, contentQuery string) ([]document.Snippet, error) {
	return m.fetchFn(ctx, identifier, contentQuery)
}

type mockCache struct {
	getFn func(ctx context.Context, identifier string) (string, error)
}

func (m *mockCache) Get(ctx context.Context, identifier string) (string, error) {
	return m.getFn(ctx, identifier)
}

func (m *mockCache) Put(context.Context, string, string) error { return nil }

type mockDownloader struct {
	textFn func(ctx context.Context, identifier string) (string, error)
}

func (m *mockDownloader) Text(ctx context.Context, identifier string) (string, error) {
	return m.textFn(ctx, identifier)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

type serverMocks struct {
	repo       *mockSearchRepo
	fetcher    *mockFetcher
	cache      *mockCache
	downloader *mockDownloader
	pinger     *mockPinger
}

func newTestServer(t *testing.T) (*serverMocks, http.Handler) {
	t.Helper()

	mocks := &serverMocks{
		repo: &mockSearchRepo{
			searchFn: func(context.Context, cql.Expression, int, int, bool) (result.Page, error) {
				return result.NewPage(1, 0, 0, nil), nil
			},
		},
		fetcher: &mockFetcher{
			fetchFn: func(context.Context, string, string) ([]document.Snippet, error) {
				return nil, nil
			},
		},
		cache: &mockCache{
			getFn: func(context.Context, string) (string, error) { return "", domain.ErrNotFound },
		},
		downloader: &mockDownloader{
			textFn: func(context.Context, string) (string, error) { return "", domain.ErrNotFound },
		},
		pinger: &mockPinger{},
	}

	logger := zap.NewNop()
	server := NewServer(
		searchuc.New(mocks.repo, nil, logger),
		snippetuc.New(mocks.fetcher),
		textuc.New(mocks.cache, mocks.downloader, logger),
		healthuc.New(mocks.pinger),
		logger,
	)

	r := chi.NewRouter()
	server.Routes(r)
	return mocks, r
}

func doRequest(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDTO {
	t.Helper()
	var dto errorDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return dto
}

func TestHandleSearch_OK(t *testing.T) {
	mocks, handler := newTestServer(t)
	doc := document.New(
		"ark:/12148/bpt6k1", "La Nature", "https://gallica.bnf.fr/ark:/12148/bpt6k1",
		[]string{"Tissandier, Gaston"}, "1873-06-07",
		document.KindPeriodicalIssue, "fascicule", "fre", "domaine public",
	)
	mocks.repo.searchFn = func(_ context.Context, _ cql.Expression, page, _ int, _ bool) (result.Page, error) {
		return result.NewPage(page, 212, 1, []document.Document{doc}), nil
	}

	rec := doRequest(t, handler, "/search?q=ballon&page=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var dto pageDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Page != 2 || dto.Total != 212 || dto.Skipped != 1 {
		t.Errorf("page meta = (%d, %d, %d), want (2, 212, 1)", dto.Page, dto.Total, dto.Skipped)
	}
	if len(dto.Documents) != 1 {
		t.Fatalf("got %d documents", len(dto.Documents))
	}
	got := dto.Documents[0]
	if got.Identifier != "ark:/12148/bpt6k1" || got.Kind != "periodical-issue" {
		t.Errorf("document = %+v", got)
	}
}

func TestHandleSearch_FilterParams(t *testing.T) {
	mocks, handler := newTestServer(t)
	var gotExpr cql.Expression
	var gotExact bool
	mocks.repo.searchFn = func(_ context.Context, expr cql.Expression, _, _ int, exact bool) (result.Page, error) {
		gotExpr, gotExact = expr, exact
		return result.NewPage(1, 0, 0, nil), nil
	}

	rec := doRequest(t, handler,
		"/search?q=ballon&creator=Tissandier&doc_type=periodical&date_from=1870&date_to=1880&language=fre&exact=false")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	if gotExact {
		t.Error("exact=false was not passed through")
	}
	for _, predicate := range []string{
		`text all "ballon"`,
		`dc.creator all "Tissandier"`,
		`dc.type adj "périodique"`,
		"dc.date >= 1870",
		"dc.date <= 1880",
		`dc.language adj "fre"`,
		`dc.rights any "domaine public"`,
	} {
		if !strings.Contains(gotExpr.String(), predicate) {
			t.Errorf("compiled expression missing %q: %s", predicate, gotExpr)
		}
	}
}

func TestHandleSearch_BadInput(t *testing.T) {
	_, handler := newTestServer(t)

	tests := []struct {
		name   string
		target string
		code   string
	}{
		{"non-integer page", "/search?q=a&page=two", "invalid_page"},
		{"malformed query", "/search?q=%28unbalanced", "malformed_query"},
		{"unknown doc type", "/search?q=a&doc_type=hologram", "malformed_query"},
		{"non-year date", "/search?q=a&date_from=MDCCC", "bad_request"},
		{"non-boolean exact", "/search?q=a&exact=oui", "bad_request"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, handler, tc.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
			}
			if dto := decodeError(t, rec); dto.Code != tc.code {
				t.Errorf("code = %q, want %q", dto.Code, tc.code)
			}
		})
	}
}

func TestHandleSearch_InvalidPageFromRepo(t *testing.T) {
	mocks, handler := newTestServer(t)
	mocks.repo.searchFn = func(_ context.Context, _ cql.Expression, page, _ int, _ bool) (result.Page, error) {
		return result.Page{}, fmt.Errorf("%w: page %d is not 1-based", domain.ErrInvalidPage, page)
	}

	rec := doRequest(t, handler, "/search?q=a&page=0")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if dto := decodeError(t, rec); dto.Code != "invalid_page" {
		t.Errorf("code = %q", dto.Code)
	}
}

func TestHandleSearch_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		upstream   int
	}{
		{
			name:       "remote error carries upstream status",
			err:        domain.NewRemoteError(http.StatusServiceUnavailable, "indisponible"),
			wantStatus: http.StatusBadGateway,
			wantCode:   "upstream_error",
			upstream:   http.StatusServiceUnavailable,
		},
		{
			name:       "unparseable body",
			err:        fmt.Errorf("%w: expected element", domain.ErrParse),
			wantStatus: http.StatusBadGateway,
			wantCode:   "upstream_unparseable",
		},
		{
			name:       "timeout",
			err:        fmt.Errorf("%w: context deadline exceeded", domain.ErrTimeout),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   "timeout",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mocks, handler := newTestServer(t)
			mocks.repo.searchFn = func(context.Context, cql.Expression, int, int, bool) (result.Page, error) {
				return result.Page{}, tc.err
			}

			rec := doRequest(t, handler, "/search?q=a")
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			dto := decodeError(t, rec)
			if dto.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", dto.Code, tc.wantCode)
			}
			if tc.upstream != 0 && dto.UpstreamStatus != tc.upstream {
				t.Errorf("upstream_status = %d, want %d", dto.UpstreamStatus, tc.upstream)
			}
		})
	}
}

func TestHandleSnippets(t *testing.T) {
	mocks, handler := newTestServer(t)
	mocks.fetcher.fetchFn = func(_ context.Context, identifier, contentQuery string) ([]document.Snippet, error) {
		if identifier != "ark:/12148/bpt6k1" {
			t.Errorf("identifier = %q", identifier)
		}
		if contentQuery != "ballon AND captif" {
			t.Errorf("contentQuery = %q", contentQuery)
		}
		return []document.Snippet{document.NewSnippet("le ballon captif de 1878", "PAG_12")}, nil
	}

	rec := doRequest(t, handler, "/snippets?id=ark:%2F12148%2Fbpt6k1&q=ballon+captif")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var dto snippetsDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dto.Snippets) != 1 || dto.Snippets[0].Page != "PAG_12" {
		t.Errorf("snippets = %+v", dto.Snippets)
	}
}

func TestHandleSnippets_UnavailableIsEmptyList(t *testing.T) {
	mocks, handler := newTestServer(t)
	mocks.fetcher.fetchFn = func(_ context.Context, identifier, _ string) ([]document.Snippet, error) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSnippetUnavailable, identifier)
	}

	rec := doRequest(t, handler, "/snippets?id=ark:%2F12148%2Fbtv1b1&q=ballon")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"snippets":[]`) {
		t.Errorf("body = %s, want an empty snippets array", rec.Body)
	}
}

func TestHandleSnippets_MissingID(t *testing.T) {
	_, handler := newTestServer(t)
	rec := doRequest(t, handler, "/snippets?q=ballon")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleText(t *testing.T) {
	mocks, handler := newTestServer(t)
	mocks.cache.getFn = func(context.Context, string) (string, error) {
		return "texte intégral de l'ouvrage", nil
	}

	rec := doRequest(t, handler, "/text?id=ark:%2F12148%2Fbpt6k1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != "texte intégral de l'ouvrage" {
		t.Errorf("body = %q", rec.Body)
	}
}

func TestHandleText_MissingID(t *testing.T) {
	_, handler := newTestServer(t)
	rec := doRequest(t, handler, "/text")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	mocks, handler := newTestServer(t)

	rec := doRequest(t, handler, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	mocks.pinger.err = errors.New("store down")
	rec = doRequest(t, handler, "/healthz")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
