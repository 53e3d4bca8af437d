package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/vedixlab/vedixlab-backend/internal/core/export"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/services"
)

// LeadHandler backs the admin leads dashboard.
type LeadHandler struct {
	errorResponder
	leadService *services.LeadService
}

func NewLeadHandler(leadService *services.LeadService, production bool) *LeadHandler {
	return &LeadHandler{
		errorResponder: errorResponder{production: production},
		leadService:    leadService,
	}
}

// ListLeads godoc
// @Summary List leads
// @Description Newest first, optionally filtered by status
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param status query string false "new, contacted, qualified, converted, lost or all"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /leads [get]
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	leads, err := h.leadService.ListLeads(c.UserContext(), c.Query("status"))
	if err != nil {
		if services.IsValidation(err) {
			return h.fail(c, fiber.StatusBadRequest, "Failed to fetch leads", err)
		}
		return h.fail(c, fiber.StatusInternalServerError, "Failed to fetch leads", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    leads,
		"count":   len(leads),
	})
}

// GetLead godoc
// @Summary Get lead by ID
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /leads/{id} [get]
func (h *LeadHandler) GetLead(c *fiber.Ctx) error {
	lead, err := h.leadService.GetLead(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.notFoundOr(c, err, "Lead not found", fiber.StatusInternalServerError, "Failed to fetch lead")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    lead,
	})
}

// UpdateStatus godoc
// @Summary Move a lead through the pipeline
// @Tags Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param status body models.LeadStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(c *fiber.Ctx) error {
	var req models.LeadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Failed to update lead", err)
	}

	lead, err := h.leadService.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return h.notFoundOr(c, err, "Lead not found", fiber.StatusBadRequest, "Failed to update lead")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Lead updated successfully",
		"data":    lead,
	})
}

// DeleteLead godoc
// @Summary Delete a lead
// @Tags Leads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /leads/{id} [delete]
func (h *LeadHandler) DeleteLead(c *fiber.Ctx) error {
	if err := h.leadService.DeleteLead(c.UserContext(), c.Params("id")); err != nil {
		return h.notFoundOr(c, err, "Lead not found", fiber.StatusInternalServerError, "Failed to delete lead")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Lead deleted successfully",
	})
}

// ExportLeads godoc
// @Summary Export leads
// @Description Download leads as an Excel workbook or a PDF table
// @Tags Leads
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "xlsx (default) or pdf"
// @Param status query string false "Status filter"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Router /leads/export [get]
func (h *LeadHandler) ExportLeads(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format", string(export.FormatExcel)))
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "Unsupported export format", err)
	}

	file, err := h.leadService.ExportLeads(c.UserContext(), c.Query("status"), format)
	if err != nil {
		if services.IsValidation(err) {
			return h.fail(c, fiber.StatusBadRequest, "Failed to export leads", err)
		}
		return h.fail(c, fiber.StatusInternalServerError, "Failed to export leads", err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Data)
}
