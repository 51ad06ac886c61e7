package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/gallex/internal/config"
	"github.com/kailas-cloud/gallex/internal/db"
	dbFS "github.com/kailas-cloud/gallex/internal/db/fs"
	dbRedis "github.com/kailas-cloud/gallex/internal/db/redis"
	"github.com/kailas-cloud/gallex/internal/gallica"
	logpkg "github.com/kailas-cloud/gallex/internal/logger"
	"github.com/kailas-cloud/gallex/internal/metrics"
	"github.com/kailas-cloud/gallex/internal/ratelimit"
	searchrepo "github.com/kailas-cloud/gallex/internal/repository/search"
	snippetrepo "github.com/kailas-cloud/gallex/internal/repository/snippet"
	"github.com/kailas-cloud/gallex/internal/repository/textcache"
	chiTransport "github.com/kailas-cloud/gallex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/gallex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/gallex/internal/usecase/search"
	snippetuc "github.com/kailas-cloud/gallex/internal/usecase/snippet"
	textuc "github.com/kailas-cloud/gallex/internal/usecase/text"
	"github.com/kailas-cloud/gallex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting gallex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.String("sru_base_url", cfg.Upstream.SRUBaseURL),
	)

	// Create text-cache store based on driver
	var store db.Store
	switch cfg.Cache.Driver {
	case "fs":
		store, err = dbFS.NewStore(cfg.Cache.Dir)
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Cache.Addrs,
			Password:  cfg.Cache.Password,
			KeyPrefix: cfg.Cache.KeyPrefix,
		})
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Cache.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer store.Close()

	// Register domain metrics explicitly (no init())
	metrics.RegisterDomainMetrics()

	// One gate shared by every upstream consumer: search, snippets, and
	// text downloads queue behind each other in arrival order.
	gate := ratelimit.New(
		time.Duration(cfg.RateLimit.MinIntervalMS)*time.Millisecond,
		cfg.RateLimit.MaxConcurrency,
	)

	client := gallica.NewClient(gallica.Config{
		SRUBaseURL:       cfg.Upstream.SRUBaseURL,
		ContentSearchURL: cfg.Upstream.ContentSearchURL,
		TextBaseURL:      cfg.Upstream.TextBaseURL,
		RequestTimeout:   time.Duration(cfg.Upstream.RequestTimeoutSec) * time.Second,
	}, gate, logger)

	// Create repositories
	searchRepo := searchrepo.New(client, logger)
	snippetRepo := snippetrepo.New(client)
	cacheRepo := textcache.New(store)

	// Create use case services
	var enricher searchuc.SnippetFetcher
	if cfg.Search.EnrichSnippets {
		enricher = snippetRepo
	}
	searchSvc := searchuc.New(searchRepo, enricher, logger).WithPageSize(cfg.Search.PageSize)
	snippetSvc := snippetuc.New(snippetRepo)
	textSvc := textuc.New(cacheRepo, client, logger)
	healthSvc := healthuc.New(store)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, snippetSvc, textSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
