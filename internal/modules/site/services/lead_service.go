package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vedixlab/vedixlab-backend/internal/core/export"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/repositories"
	"github.com/vedixlab/vedixlab-backend/internal/shared/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Closed pipeline states eligible for retention purges.
var purgeableStatuses = []models.LeadStatus{models.LeadStatusLost, models.LeadStatusConverted}

type LeadService struct {
	leadRepo repositories.LeadRepo
	exporter *export.Service
	now      func() time.Time
}

func NewLeadService(leadRepo repositories.LeadRepo, exporter *export.Service) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		exporter: exporter,
		now:      time.Now,
	}
}

// SubmitContact validates a contact form and records it as a new lead.
func (s *LeadService) SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.Lead, error) {
	lead := &models.Lead{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		ProjectType: strings.TrimSpace(req.ProjectType),
		BudgetRange: strings.TrimSpace(req.BudgetRange),
		Message:     strings.TrimSpace(req.Message),
		Status:      models.LeadStatusNew,
	}

	if lead.Name == "" || lead.Email == "" || lead.ProjectType == "" || lead.BudgetRange == "" || lead.Message == "" {
		return nil, invalid("All fields are required")
	}
	if !emailPattern.MatchString(lead.Email) {
		return nil, invalid("Invalid email format")
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}

	utils.LogInfo("contact form submitted", map[string]interface{}{
		"lead_id":      lead.ID.String(),
		"project_type": lead.ProjectType,
		"budget_range": lead.BudgetRange,
	})
	return lead, nil
}

func (s *LeadService) ListLeads(ctx context.Context, status string) ([]models.Lead, error) {
	filter := models.LeadFilter{}
	if status != "" && status != "all" {
		st := models.LeadStatus(status)
		if !st.Valid() {
			return nil, invalid(fmt.Sprintf("invalid status: %s", status))
		}
		filter.Status = st
	}

	leads, err := s.leadRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

func (s *LeadService) GetLead(ctx context.Context, id string) (*models.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return lead, nil
}

func (s *LeadService) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) (*models.Lead, error) {
	if !status.Valid() {
		return nil, invalid(fmt.Sprintf("invalid status: %s", status))
	}
	lead, err := s.leadRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return lead, nil
}

func (s *LeadService) DeleteLead(ctx context.Context, id string) error {
	return mapNotFound(s.leadRepo.Delete(ctx, id))
}

// ExportLeads renders the (optionally filtered) lead list as a spreadsheet or PDF.
func (s *LeadService) ExportLeads(ctx context.Context, status string, format export.Format) (*export.File, error) {
	leads, err := s.ListLeads(ctx, status)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []string{
			l.CreatedAt.Format("2006-01-02 15:04"),
			l.Name,
			l.Email,
			l.ProjectType,
			l.BudgetRange,
			string(l.Status),
			l.Message,
		})
	}

	style := export.DefaultStyle()
	style.Landscape = true
	table := &export.Table{
		Title:       "VedixLab Leads",
		Subtitle:    fmt.Sprintf("%d leads", len(leads)),
		GeneratedAt: s.now(),
		Headers:     []string{"Received", "Name", "Email", "Project Type", "Budget", "Status", "Message"},
		Rows:        rows,
		ColumnWidths: map[int]float64{
			0: 18, 1: 22, 2: 30, 3: 22, 4: 16, 5: 12, 6: 60,
		},
		Style: style,
	}
	return s.exporter.Export(table, format, "leads")
}

// PurgeStale removes closed leads older than retentionDays and reports how many were deleted.
func (s *LeadService) PurgeStale(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	n, err := s.leadRepo.DeleteOlderThan(ctx, cutoff, purgeableStatuses)
	if err != nil {
		return 0, fmt.Errorf("failed to purge leads: %w", err)
	}
	return n, nil
}
