package serverutils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the only error body the API emits.
func ErrorResponse(message string) fiber.Map {
	return fiber.Map{"error": message}
}
