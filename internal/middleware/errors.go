package middleware

import "github.com/gofiber/fiber/v3"

// ErrorResponse writes the standard error payload:
// {"error": {"code": "...", "message": "..."}}
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}
