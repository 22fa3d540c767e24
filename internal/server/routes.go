package server

import (
	"log/slog"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"profanity/internal/handlers"
	"profanity/internal/index"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(checker handlers.Checker, idx index.Pinger, logger *slog.Logger) {
	// Initialize handlers
	checkHandler := handlers.NewCheckHandler(checker, logger)
	healthHandler := handlers.NewHealthHandler(idx, logger)

	// Public API
	s.App.Get("/helloworld", handlers.HelloWorld)
	s.App.Post("/", checkHandler.Check)

	// Health
	s.App.Get("/healthz", healthHandler.Live)
	s.App.Get("/readyz", healthHandler.Ready)

	// Prometheus metrics
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
