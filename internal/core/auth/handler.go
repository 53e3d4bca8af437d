package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	authService *Service
	production  bool
}

func NewHandler(authService *Service, production bool) *Handler {
	return &Handler{authService: authService, production: production}
}

// Login godoc
// @Summary Admin login
// @Description Authenticate the admin and return a JWT
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /admin/login [post]
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Email and password are required",
		})
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Email and password are required",
		})
	case errors.Is(err, ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid credentials",
		})
	case err != nil:
		log.Error().Err(err).Msg("admin login failed")
		body := fiber.Map{"success": false, "message": "Login failed"}
		if !h.production {
			body["error"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data":    resp,
	})
}

// Verify godoc
// @Summary Verify admin token
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /admin/verify [get]
func (h *Handler) Verify(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Token is valid",
	})
}
