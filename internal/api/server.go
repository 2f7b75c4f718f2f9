// Package api provides the HTTP API server and handlers for CineMood.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cinemood/cinemood-server/internal/ratelimit"
	"github.com/cinemood/cinemood-server/internal/service"
	"github.com/cinemood/cinemood-server/internal/validation"
)

// Services bundles the application services used by handlers.
type Services struct {
	Catalog         *service.CatalogService
	Recommendations *service.RecommendationService
	Metadata        *service.MetadataService
	Search          *service.SearchService
	Health          *service.HealthService
}

// Config holds API settings.
type Config struct {
	Version      string
	CORSOrigins  []string
	RateLimitRPS float64 // zero disables per-IP limiting
	RateBurst    int
	DefaultCount int
	MaxCount     int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services  *Services
	cfg       Config
	router    chi.Router
	api       huma.API
	validator *validation.Validator
	limiter   *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	if cfg.MaxCount < 1 {
		cfg.MaxCount = 50
	}
	if cfg.DefaultCount < 1 || cfg.DefaultCount > cfg.MaxCount {
		cfg.DefaultCount = min(6, cfg.MaxCount)
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	s := &Server{
		services:  services,
		cfg:       cfg,
		router:    chi.NewRouter(),
		validator: validation.New(),
		logger:    logger,
	}
	if cfg.RateLimitRPS > 0 {
		s.limiter = ratelimit.New(cfg.RateLimitRPS, max(cfg.RateBurst, 1))
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("CineMood API", cfg.Version)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerMoodRoutes()
	s.registerRecommendationRoutes()
	s.registerMovieRoutes()
	s.registerSearchRoutes()
	s.registerMetadataRoutes()
	s.registerCatalogRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// setupMiddleware configures the middleware stack. It must run before any
// route is registered on the router.
func (s *Server) setupMiddleware() {
	s.router.Use(s.requestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID},
		ExposedHeaders: []string{headerRequestID},
		MaxAge:         int((12 * time.Hour).Seconds()),
	}))
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
}
