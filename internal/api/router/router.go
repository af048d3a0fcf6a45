package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dazetsai/stock-trading-2026/internal/api/handlers"
)

// Config holds router configuration
type Config struct {
	HealthHandler   *handlers.HealthHandler
	ScreenerHandler *handlers.ScreenerHandler
	BacktestHandler *handlers.BacktestHandler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3199"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", cfg.HealthHandler.Health)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Screener
		r.Route("/screener", func(r chi.Router) {
			r.Get("/latest", cfg.ScreenerHandler.GetLatest)
			r.Get("/snapshots/{snapshot_id}", cfg.ScreenerHandler.GetByID)
			r.Post("/run", cfg.ScreenerHandler.Run)
		})

		// Backtest
		r.Post("/backtest/run", cfg.BacktestHandler.Run)
	})

	return r
}
