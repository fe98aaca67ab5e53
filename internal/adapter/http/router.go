package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/karbiaO9/BlockMind-sub000/internal/adapter/http/handler"
	"github.com/karbiaO9/BlockMind-sub000/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler  *handler.WalletHandler
	TrackedHandler *handler.TrackedHandler
	HealthHandler  *handler.HealthHandler
	Logger         zerolog.Logger
	RateLimiter    *middleware.RateLimiter
}

// NewRouter creates the HTTP router serving the wallet engine API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Wallet views
		r.Route("/wallets/{address}", func(r chi.Router) {
			r.Get("/", cfg.WalletHandler.Get)
			r.Get("/transactions", cfg.WalletHandler.Transactions)
			r.Get("/stats", cfg.WalletHandler.Stats)
		})

		// Tracked wallets
		r.Route("/tracked", func(r chi.Router) {
			r.Get("/", cfg.TrackedHandler.List)
			r.Post("/", cfg.TrackedHandler.Create)
			r.Get("/snapshots", cfg.TrackedHandler.Snapshots)
			r.Route("/{address}", func(r chi.Router) {
				r.Delete("/", cfg.TrackedHandler.Delete)
				r.Post("/pause", cfg.TrackedHandler.Pause)
				r.Post("/resume", cfg.TrackedHandler.Resume)
			})
		})
	})

	return r
}
