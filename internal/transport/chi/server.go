// Package chi exposes the search, snippet, and text operations over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/gallex/internal/domain"
	"github.com/kailas-cloud/gallex/internal/domain/search/query"
	healthuc "github.com/kailas-cloud/gallex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gallex/internal/usecase/search"
	snippetuc "github.com/kailas-cloud/gallex/internal/usecase/snippet"
	textuc "github.com/kailas-cloud/gallex/internal/usecase/text"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server routes HTTP requests to the use-case services.
type Server struct {
	search        *searchuc.Service
	snippets      *snippetuc.Service
	text          *textuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	snippets *snippetuc.Service,
	text *textuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		snippets: snippets,
		text:     text,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		remoteErrorHandler,
		sentinelHandler(domain.ErrMalformedQuery, http.StatusBadRequest, "malformed_query"),
		sentinelHandler(domain.ErrInvalidPage, http.StatusBadRequest, "invalid_page"),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrParse, http.StatusBadGateway, "upstream_unparseable"),
		sentinelHandler(domain.ErrTimeout, http.StatusGatewayTimeout, "timeout"),
	}
	return s
}

// Routes mounts all handlers on a router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/search", s.handleSearch)
	r.Get("/snippets", s.handleSnippets)
	r.Get("/text", s.handleText)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
}

// handleSearch handles GET /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	page := 1
	if raw := params.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
			return
		}
		page = n
	}

	opts, err := queryOptions(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	q, err := query.New(params.Get("q"), opts...)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	pg, err := s.search.Search(r.Context(), q, page)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToDTO(pg))
}

// handleSnippets handles GET /snippets.
func (s *Server) handleSnippets(w http.ResponseWriter, r *http.Request) {
	identifier := r.URL.Query().Get("id")
	if identifier == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "id parameter is required")
		return
	}

	snippets, err := s.snippets.Snippets(r.Context(), identifier, r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snippetsToDTO(identifier, snippets))
}

// handleText handles GET /text. The body is the raw OCR text; typical
// documents run from hundreds of kilobytes to megabytes.
func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	identifier := r.URL.Query().Get("id")
	if identifier == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "id parameter is required")
		return
	}

	text, err := s.text.GetOrFetch(r.Context(), identifier)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Check(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDomainError walks the handler table; unmatched errors become 500s.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

// sentinelHandler maps one sentinel error to a status and code.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// remoteErrorHandler surfaces upstream failures with their original status.
func remoteErrorHandler(w http.ResponseWriter, err error) bool {
	var remote *domain.RemoteError
	if !errors.As(err, &remote) {
		return false
	}
	writeJSON(w, http.StatusBadGateway, errorDTO{
		Code:           "upstream_error",
		Message:        err.Error(),
		UpstreamStatus: remote.Status,
	})
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorDTO{Code: code, Message: message})
}
