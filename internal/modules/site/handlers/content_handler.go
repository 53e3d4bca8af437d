package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/services"
)

type ContentHandler struct {
	errorResponder
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService, production bool) *ContentHandler {
	return &ContentHandler{
		errorResponder: errorResponder{production: production},
		contentService: contentService,
	}
}

// GetContent godoc
// @Summary Landing page content
// @Description All content sections plus the ordered service list
// @Tags Content
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /content [get]
func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	page, err := h.contentService.GetPageContent(c.UserContext())
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Failed to fetch content", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    page,
	})
}

// GetSection godoc
// @Summary Get a content section
// @Tags Content
// @Produce json
// @Param section path string true "Section key (hero, services, features, about, contact)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /content/section/{section} [get]
func (h *ContentHandler) GetSection(c *fiber.Ctx) error {
	section, err := h.contentService.GetSection(c.UserContext(), c.Params("section"))
	if err != nil {
		return h.notFoundOr(c, err, "Content section not found", fiber.StatusInternalServerError, "Failed to fetch content")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    section,
	})
}

// UpsertSection godoc
// @Summary Create or update a content section
// @Description The section key comes from the path when present, otherwise from the body
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param section path string false "Section key"
// @Param content body models.ContentSectionRequest true "Section fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /content/section/{section} [put]
// @Router /content/section [post]
func (h *ContentHandler) UpsertSection(c *fiber.Ctx) error {
	var req models.ContentSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Failed to update content", err)
	}

	key := c.Params("section")
	if key == "" {
		key = req.Section
	}

	section, err := h.contentService.UpsertSection(c.UserContext(), key, &req)
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Failed to update content", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Content updated successfully",
		"data":    section,
	})
}
