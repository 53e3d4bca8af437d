package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/services"
)

// OfferingHandler serves the service cards, both on /services and under /content/services.
type OfferingHandler struct {
	errorResponder
	offeringService *services.OfferingService
}

func NewOfferingHandler(offeringService *services.OfferingService, production bool) *OfferingHandler {
	return &OfferingHandler{
		errorResponder:  errorResponder{production: production},
		offeringService: offeringService,
	}
}

// ListServices godoc
// @Summary List services
// @Tags Services
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /services [get]
func (h *OfferingHandler) ListServices(c *fiber.Ctx) error {
	list, err := h.offeringService.ListServices(c.UserContext())
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Failed to fetch services", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    list,
		"count":   len(list),
	})
}

// GetService godoc
// @Summary Get service by ID
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /services/{id} [get]
func (h *OfferingHandler) GetService(c *fiber.Ctx) error {
	svc, err := h.offeringService.GetService(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.notFoundOr(c, err, "Service not found", fiber.StatusInternalServerError, "Failed to fetch service")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    svc,
	})
}

// CreateService godoc
// @Summary Create a service
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param service body models.ServiceOfferingRequest true "Service data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /content/services [post]
func (h *OfferingHandler) CreateService(c *fiber.Ctx) error {
	var req models.ServiceOfferingRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Failed to create service", err)
	}

	svc, err := h.offeringService.CreateService(c.UserContext(), &req)
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Failed to create service", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Service created successfully",
		"data":    svc,
	})
}

// UpdateService godoc
// @Summary Update a service
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param service body models.ServiceOfferingRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /content/services/{id} [put]
func (h *OfferingHandler) UpdateService(c *fiber.Ctx) error {
	var req models.ServiceOfferingRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Failed to update service", err)
	}

	svc, err := h.offeringService.UpdateService(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return h.notFoundOr(c, err, "Service not found", fiber.StatusBadRequest, "Failed to update service")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service updated successfully",
		"data":    svc,
	})
}

// DeleteService godoc
// @Summary Delete a service
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /content/services/{id} [delete]
func (h *OfferingHandler) DeleteService(c *fiber.Ctx) error {
	if err := h.offeringService.DeleteService(c.UserContext(), c.Params("id")); err != nil {
		return h.notFoundOr(c, err, "Service not found", fiber.StatusInternalServerError, "Failed to delete service")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Service deleted successfully",
	})
}
