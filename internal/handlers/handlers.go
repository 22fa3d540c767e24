// Package handlers implements the HTTP endpoints of the profanity service.
package handlers

import (
	"github.com/gofiber/fiber/v3"

	"profanity/internal/models"
)

// Response messages.
const (
	MsgHelloWorld     = "Hello World"
	MsgInvalidRequest = "Invalid request"
	MsgTextRequired   = "Invalid request. Text is required"
	MsgInternalError  = "An error occurred"
)

// jsonMessage returns a { message } response with the given HTTP status code.
func jsonMessage(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.MessageResponse{Message: message})
}
