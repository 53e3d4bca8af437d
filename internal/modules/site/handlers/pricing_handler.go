package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/services"
)

type PricingHandler struct {
	errorResponder
	pricingService *services.PricingService
}

func NewPricingHandler(pricingService *services.PricingService, production bool) *PricingHandler {
	return &PricingHandler{
		errorResponder: errorResponder{production: production},
		pricingService: pricingService,
	}
}

// ListPlans godoc
// @Summary List pricing plans
// @Description Pricing plans ordered by display order
// @Tags Pricing
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /pricing [get]
func (h *PricingHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.pricingService.ListPlans(c.UserContext())
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Failed to fetch pricing plans", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    plans,
		"count":   len(plans),
	})
}

// GetPlan godoc
// @Summary Get pricing plan by ID
// @Tags Pricing
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /pricing/{id} [get]
func (h *PricingHandler) GetPlan(c *fiber.Ctx) error {
	plan, err := h.pricingService.GetPlan(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.notFoundOr(c, err, "Pricing plan not found", fiber.StatusInternalServerError, "Failed to fetch pricing plan")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    plan,
	})
}

// CreatePlan godoc
// @Summary Create a pricing plan
// @Tags Pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body models.PricingPlanRequest true "Plan data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /pricing [post]
func (h *PricingHandler) CreatePlan(c *fiber.Ctx) error {
	var req models.PricingPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Failed to create pricing plan", err)
	}

	plan, err := h.pricingService.CreatePlan(c.UserContext(), &req)
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Failed to create pricing plan", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Pricing plan created successfully",
		"data":    plan,
	})
}

// UpdatePlan godoc
// @Summary Update a pricing plan
// @Tags Pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param plan body models.PricingPlanRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /pricing/{id} [put]
func (h *PricingHandler) UpdatePlan(c *fiber.Ctx) error {
	var req models.PricingPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Failed to update pricing plan", err)
	}

	plan, err := h.pricingService.UpdatePlan(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return h.notFoundOr(c, err, "Pricing plan not found", fiber.StatusBadRequest, "Failed to update pricing plan")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Pricing plan updated successfully",
		"data":    plan,
	})
}

// DeletePlan godoc
// @Summary Delete a pricing plan
// @Tags Pricing
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /pricing/{id} [delete]
func (h *PricingHandler) DeletePlan(c *fiber.Ctx) error {
	if err := h.pricingService.DeletePlan(c.UserContext(), c.Params("id")); err != nil {
		return h.notFoundOr(c, err, "Pricing plan not found", fiber.StatusInternalServerError, "Failed to delete pricing plan")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Pricing plan deleted successfully",
	})
}
