package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"profanity/internal/models"
	"profanity/internal/validation"
)

// Checker produces a verdict for free text.
type Checker interface {
	Check(ctx context.Context, text string) (models.Verdict, error)
}

// CheckHandler handles profanity check requests.
type CheckHandler struct {
	checker Checker
	logger  *slog.Logger
}

// NewCheckHandler creates a new check handler.
func NewCheckHandler(checker Checker, logger *slog.Logger) *CheckHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckHandler{checker: checker, logger: logger}
}

// Check handles POST /. Validation happens before any scoring; scoring
// failures are reported with a generic message only.
func (h *CheckHandler) Check(c fiber.Ctx) error {
	if !validation.IsJSONContentType(c.Get(fiber.HeaderContentType)) {
		return jsonMessage(c, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	text, err := validation.ParseCheckRequest(c.Body())
	if err != nil {
		if errors.Is(err, validation.ErrTextRequired) {
			return jsonMessage(c, fiber.StatusBadRequest, MsgTextRequired)
		}
		return jsonMessage(c, fiber.StatusBadRequest, MsgInvalidRequest)
	}

	verdict, err := h.checker.Check(c.Context(), text)
	if err != nil {
		h.logger.Error("profanity check failed",
			"request_id", requestid.FromContext(c),
			"error", err,
		)
		return jsonMessage(c, fiber.StatusInternalServerError, MsgInternalError)
	}

	return c.JSON(models.NewCheckResponse(verdict))
}
