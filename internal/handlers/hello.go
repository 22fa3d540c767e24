package handlers

import "github.com/gofiber/fiber/v3"

// HelloWorld handles GET /helloworld.
func HelloWorld(c fiber.Ctx) error {
	return jsonMessage(c, fiber.StatusOK, MsgHelloWorld)
}
