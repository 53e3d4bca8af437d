package audit

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/vedixlab/vedixlab-backend/internal/core/auth"
)

// Middleware records successful mutations on entity. It must run after
// auth.AuthMiddleware so the admin identity is in Locals.
func Middleware(svc *Service, entity string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		action := actionFor(c.Method())
		if action == "" {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil || status >= fiber.StatusBadRequest {
			return err
		}

		entry := &Entry{
			Action:    action,
			Entity:    entity,
			EntityID:  entityID(c),
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    status,
			IPAddress: c.IP(),
			Duration:  time.Since(start).Milliseconds(),
		}
		if id, ok := c.Locals(auth.LocalAdminID).(string); ok {
			entry.AdminID = id
		}
		if email, ok := c.Locals(auth.LocalEmail).(string); ok {
			entry.Email = email
		}

		if recErr := svc.Record(c.UserContext(), entry); recErr != nil {
			log.Warn().Err(recErr).Str("path", entry.Path).Msg("audit record failed")
		}
		return nil
	}
}

func actionFor(method string) string {
	switch method {
	case fiber.MethodPost:
		return "create"
	case fiber.MethodPut, fiber.MethodPatch:
		return "update"
	case fiber.MethodDelete:
		return "delete"
	}
	return ""
}

func entityID(c *fiber.Ctx) string {
	if id := c.Params("id"); id != "" {
		return id
	}
	return c.Params("section")
}
