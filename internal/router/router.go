// Package router wires the admin HTTP routes.
package router

import (
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/handler"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	StatsHandler     *handler.StatsHandler
	InventoryHandler *handler.InventoryHandler
	AdminKey         string
}

// New creates and configures the HTTP router. The public status endpoint
// is unauthenticated; everything under /api/v1 requires the admin key.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-Admin-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no auth required)
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	// Admin-key guarded routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminKey(cfg.AdminKey))

		r.Route("/api/v1", func(r chi.Router) {
			if cfg.StatsHandler != nil {
				r.Get("/stats", cfg.StatsHandler.GetStats)
			}

			if cfg.InventoryHandler != nil {
				r.Route("/inventory", func(r chi.Router) {
					r.Get("/cards", cfg.InventoryHandler.GetCards)
					r.Get("/creatures", cfg.InventoryHandler.GetCreatures)
				})
			}
		})
	})

	return r
}
