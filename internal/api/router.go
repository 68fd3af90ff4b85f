package api

import (
	"io/fs"
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/expenseflow/spaserver/internal/api/handlers"
	"github.com/expenseflow/spaserver/internal/api/middleware"
	"github.com/expenseflow/spaserver/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(cfg *config.Config, buildFS fs.FS) chi.Router {
	r := chi.NewRouter()

	// Middleware stack (order matters)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.SecurityHeaders(cfg))
	r.Use(chimw.Compress(config.CompressionLevel))

	slog.Info("router initialized",
		"middleware", []string{"requestLogging", "securityHeaders", "compress"},
	)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthHandler(cfg, Version))
	})

	// Everything else resolves against the build output, falling back to
	// index.html for client-side routes.
	r.Handle("/*", handlers.SPAHandler(buildFS))

	return r
}
