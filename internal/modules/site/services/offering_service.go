package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/repositories"
)

// OfferingService manages the service cards shown on the site.
type OfferingService struct {
	serviceRepo repositories.ServiceRepo
}

func NewOfferingService(serviceRepo repositories.ServiceRepo) *OfferingService {
	return &OfferingService{serviceRepo: serviceRepo}
}

func (s *OfferingService) ListServices(ctx context.Context) ([]models.ServiceOffering, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *OfferingService) GetService(ctx context.Context, id string) (*models.ServiceOffering, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return service, nil
}

func (s *OfferingService) CreateService(ctx context.Context, req *models.ServiceOfferingRequest) (*models.ServiceOffering, error) {
	service := &models.ServiceOffering{}
	req.Apply(service)
	trimService(service)

	if err := validateService(service); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

func (s *OfferingService) UpdateService(ctx context.Context, id string, req *models.ServiceOfferingRequest) (*models.ServiceOffering, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	req.Apply(service)
	trimService(service)
	if err := validateService(service); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}

func (s *OfferingService) DeleteService(ctx context.Context, id string) error {
	return mapNotFound(s.serviceRepo.Delete(ctx, id))
}

func trimService(s *models.ServiceOffering) {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
}

func validateService(s *models.ServiceOffering) error {
	switch {
	case s.Icon == "":
		return invalid("icon is required")
	case s.Title == "":
		return invalid("title is required")
	case s.Description == "":
		return invalid("description is required")
	case s.Image == "":
		return invalid("image is required")
	}
	return nil
}
