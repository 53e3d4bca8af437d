package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/repositories"
)

type PricingService struct {
	pricingRepo repositories.PricingRepo
}

func NewPricingService(pricingRepo repositories.PricingRepo) *PricingService {
	return &PricingService{pricingRepo: pricingRepo}
}

func (s *PricingService) ListPlans(ctx context.Context) ([]models.PricingPlan, error) {
	plans, err := s.pricingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing plans: %w", err)
	}
	return plans, nil
}

func (s *PricingService) GetPlan(ctx context.Context, id string) (*models.PricingPlan, error) {
	plan, err := s.pricingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return plan, nil
}

// CreatePlan validates and stores a new plan.
func (s *PricingService) CreatePlan(ctx context.Context, req *models.PricingPlanRequest) (*models.PricingPlan, error) {
	plan := &models.PricingPlan{}
	req.Apply(plan)
	trimPlan(plan)

	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	if err := s.pricingRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create pricing plan: %w", err)
	}
	return plan, nil
}

func (s *PricingService) UpdatePlan(ctx context.Context, id string, req *models.PricingPlanRequest) (*models.PricingPlan, error) {
	plan, err := s.pricingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	req.Apply(plan)
	trimPlan(plan)
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	if err := s.pricingRepo.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to update pricing plan: %w", err)
	}
	return plan, nil
}

func (s *PricingService) DeletePlan(ctx context.Context, id string) error {
	return mapNotFound(s.pricingRepo.Delete(ctx, id))
}

func trimPlan(p *models.PricingPlan) {
	p.Name = strings.TrimSpace(p.Name)
	p.Tagline = strings.TrimSpace(p.Tagline)
}

func validatePlan(p *models.PricingPlan) error {
	switch {
	case p.Name == "":
		return invalid("name is required")
	case p.Tagline == "":
		return invalid("tagline is required")
	case strings.TrimSpace(p.Price) == "":
		return invalid("price is required")
	}
	return nil
}
