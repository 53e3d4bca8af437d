package audit

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	svc        *Service
	production bool
}

func NewHandler(svc *Service, production bool) *Handler {
	return &Handler{svc: svc, production: production}
}

// List godoc
// @Summary List admin activity
// @Description Recorded admin mutations, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param entity query string false "pricing, service, content or lead"
// @Param action query string false "create, update or delete"
// @Param limit query int false "Max entries (default 50, max 500)"
// @Success 200 {object} map[string]interface{}
// @Router /admin/audit [get]
func (h *Handler) List(c *fiber.Ctx) error {
	entries, err := h.svc.List(c.UserContext(), Filter{
		Entity: c.Query("entity"),
		Action: c.Query("action"),
		Limit:  c.QueryInt("limit", defaultLimit),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list audit logs")
		body := fiber.Map{"success": false, "message": "Failed to fetch activity"}
		if !h.production {
			body["error"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    entries,
		"count":   len(entries),
	})
}
