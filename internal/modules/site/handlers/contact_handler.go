package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/services"
)

type ContactHandler struct {
	errorResponder
	leadService *services.LeadService
}

func NewContactHandler(leadService *services.LeadService, production bool) *ContactHandler {
	return &ContactHandler{
		errorResponder: errorResponder{production: production},
		leadService:    leadService,
	}
}

// Submit godoc
// @Summary Submit the contact form
// @Description Validates the inquiry and stores it as a new lead
// @Tags Contact
// @Accept json
// @Produce json
// @Param inquiry body models.ContactRequest true "Contact form"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /contact [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req models.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "All fields are required", nil)
	}

	lead, err := h.leadService.SubmitContact(c.UserContext(), &req)
	if err != nil {
		if services.IsValidation(err) {
			return h.fail(c, fiber.StatusBadRequest, err.Error(), nil)
		}
		return h.fail(c, fiber.StatusInternalServerError, "Failed to submit contact form. Please try again later.", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Thank you for your inquiry! We will get back to you within 24 hours.",
		"data": fiber.Map{
			"name":        lead.Name,
			"email":       lead.Email,
			"projectType": lead.ProjectType,
			"budgetRange": lead.BudgetRange,
		},
	})
}
