package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/repositories"
)

type ContentService struct {
	contentRepo repositories.ContentRepo
	serviceRepo repositories.ServiceRepo
}

func NewContentService(contentRepo repositories.ContentRepo, serviceRepo repositories.ServiceRepo) *ContentService {
	return &ContentService{
		contentRepo: contentRepo,
		serviceRepo: serviceRepo,
	}
}

// PageContent is everything the landing page renders in one request.
type PageContent struct {
	Content  []models.ContentSection  `json:"content"`
	Services []models.ServiceOffering `json:"services"`
}

func (s *ContentService) GetPageContent(ctx context.Context) (*PageContent, error) {
	var page PageContent

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sections, err := s.contentRepo.List(gctx)
		page.Content = sections
		return err
	})
	g.Go(func() error {
		services, err := s.serviceRepo.List(gctx)
		page.Services = services
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load page content: %w", err)
	}

	if page.Content == nil {
		page.Content = []models.ContentSection{}
	}
	if page.Services == nil {
		page.Services = []models.ServiceOffering{}
	}
	return &page, nil
}

func (s *ContentService) GetSection(ctx context.Context, section string) (*models.ContentSection, error) {
	content, err := s.contentRepo.GetBySection(ctx, section)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return content, nil
}

// UpsertSection creates the section on first write and patches it afterwards.
func (s *ContentService) UpsertSection(ctx context.Context, section string, req *models.ContentSectionRequest) (*models.ContentSection, error) {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil, invalid("section is required")
	}
	if !models.IsValidSection(section) {
		return nil, invalid(fmt.Sprintf("`%s` is not a valid section", section))
	}

	content, err := s.contentRepo.Upsert(ctx, section, func(c *models.ContentSection) {
		req.Apply(c)
		c.Title = strings.TrimSpace(c.Title)
		c.Subtitle = strings.TrimSpace(c.Subtitle)
		c.Description = strings.TrimSpace(c.Description)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert content: %w", err)
	}
	return content, nil
}
