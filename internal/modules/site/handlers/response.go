package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/services"
)

// errorResponder renders {success:false, message, error?}. Internal detail is
// only attached outside production; validation messages are always attached.
type errorResponder struct {
	production bool
}

func (r errorResponder) fail(c *fiber.Ctx, status int, message string, err error) error {
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if err != nil {
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg(message)
		}
		if services.IsValidation(err) || !r.production {
			body["error"] = err.Error()
		}
	}
	return c.Status(status).JSON(body)
}

// notFoundOr answers 404 for services.ErrNotFound and status otherwise.
func (r errorResponder) notFoundOr(c *fiber.Ctx, err error, notFoundMsg string, status int, message string) error {
	if errors.Is(err, services.ErrNotFound) {
		return r.fail(c, fiber.StatusNotFound, notFoundMsg, nil)
	}
	return r.fail(c, status, message, err)
}
