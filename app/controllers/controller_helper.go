package controllers

import "github.com/gofiber/fiber/v2"

// jsonError renders the uniform failure envelope used across the API.
func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
