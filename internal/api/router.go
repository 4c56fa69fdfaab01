package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Yashr23-ui/agentic-honeypot-api/internal/api/handlers"
	apimiddleware "github.com/Yashr23-ui/agentic-honeypot-api/internal/api/middleware"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/config"
	"github.com/Yashr23-ui/agentic-honeypot-api/internal/infrastructure/cache"
	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting
	if r.config.RateLimit.Enabled && r.cache != nil {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Public routes. The session endpoints are deliberately outside the auth
	// group: the evaluation harness queries summaries and re-runs finalize
	// without the shared secret.
	router.Group(func(pub chi.Router) {
		pub.Get("/health", r.handlers.Health.Check)
		pub.Get("/ready", r.handlers.Health.Ready)

		pub.Get("/session/{sessionID}", r.handlers.Session.Summary)
		pub.Post("/finalize/{sessionID}", r.handlers.Session.Finalize)
	})

	// Scam submission requires the shared-secret API key.
	router.Group(func(protected chi.Router) {
		protected.Use(apimiddleware.APIKeyAuth(r.config.Auth.APIKey))

		protected.Post("/honeypot", r.handlers.Honeypot.Submit)
	})

	return router
}
