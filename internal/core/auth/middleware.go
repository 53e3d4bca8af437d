package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware.
const (
	LocalAdminID = "adminID"
	LocalEmail   = "email"
)

// AuthMiddleware requires a valid "Bearer <token>" Authorization header.
func AuthMiddleware(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "No token provided, authorization denied",
			})
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
			})
		}

		c.Locals(LocalAdminID, claims.AdminID)
		c.Locals(LocalEmail, claims.Email)

		return c.Next()
	}
}
