package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"profanity/internal/index"
)

// HealthHandler reports process and vector index health.
type HealthHandler struct {
	index  index.Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a HealthHandler. A nil logger falls back to slog.Default().
func NewHealthHandler(idx index.Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{index: idx, logger: logger}
}

// Live answers as long as the process can serve requests. It never touches the index.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready pings the vector index; checks cannot succeed while it is unreachable.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	if err := h.index.Ping(c.Context()); err != nil {
		h.logger.Warn("readiness check failed",
			"request_id", requestid.FromContext(c),
			"error", err,
		)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "vector index unavailable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
