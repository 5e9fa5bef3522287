// Package api serves published release snapshots over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/store"
)

// Snapshots is the read side the handlers serve from.
type Snapshots interface {
	Latest(ctx context.Context) (*domain.Snapshot, error)
	Get(ctx context.Context, runID string) (*domain.Snapshot, error)
	Category(ctx context.Context, key string) (*domain.CategoryReleases, *domain.Snapshot, error)
	News(ctx context.Context, limit int) ([]domain.NewsRecord, error)
	History(ctx context.Context, limit int) ([]store.SnapshotSummary, error)
	HistoryEnabled() bool
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures the server.
type Options struct {
	AllowedOrigins []string
	// RequestsPerMinute per client IP; zero disables rate limiting.
	RequestsPerMinute int
	Burst             int
	// StaleAfter marks the latest snapshot degraded in health checks.
	StaleAfter time.Duration
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	snapshots Snapshots
	store     Pinger
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
	limiter   *RateLimiter
	opts      Options
	now       func() time.Time
}

// NewServer creates the snapshot API with all routes registered. store may be nil.
func NewServer(snapshots Snapshots, store Pinger, opts Options, logger *slog.Logger) *Server {
	if opts.StaleAfter == 0 {
		opts.StaleAfter = 48 * time.Hour
	}

	router := chi.NewRouter()

	s := &Server{
		snapshots: snapshots,
		store:     store,
		router:    router,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
	if opts.RequestsPerMinute > 0 {
		s.limiter = NewRateLimiter(opts.RequestsPerMinute, time.Minute, max(opts.Burst, 1))
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Release Radar API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerSnapshotRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests.
func (s *Server) API() huma.API {
	return s.api
}

// Close releases the rate limiter's cleanup goroutine.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
}

// requestLogger logs each request through slog instead of chi's stdlib logger.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
