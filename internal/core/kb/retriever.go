package kb

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/vedixlab/vedixlab-backend/internal/core/llm"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/repositories"
)

// Retriever reads pricing, services and content sections and maps them to llm.SiteKnowledge.
type Retriever struct {
	pricingRepo repositories.PricingRepo
	serviceRepo repositories.ServiceRepo
	contentRepo repositories.ContentRepo
}

func NewRetriever(pricingRepo repositories.PricingRepo, serviceRepo repositories.ServiceRepo, contentRepo repositories.ContentRepo) *Retriever {
	return &Retriever{
		pricingRepo: pricingRepo,
		serviceRepo: serviceRepo,
		contentRepo: contentRepo,
	}
}

type snapshot struct {
	plans    []models.PricingPlan
	services []models.ServiceOffering
	sections []models.ContentSection
}

// Load fetches the three collections concurrently. Any failure fails the whole load.
func (r *Retriever) Load(ctx context.Context) (*llm.SiteKnowledge, error) {
	var snap snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.plans, err = r.pricingRepo.List(gctx)
		return wrap("pricing", err)
	})
	g.Go(func() (err error) {
		snap.services, err = r.serviceRepo.List(gctx)
		return wrap("services", err)
	})
	g.Go(func() (err error) {
		snap.sections, err = r.contentRepo.List(gctx)
		return wrap("content", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snap.knowledge(), nil
}

// LoadBestEffort fetches the three collections concurrently; a failing collection
// is logged and treated as empty. degraded reports whether anything failed.
func (r *Retriever) LoadBestEffort(ctx context.Context) (k *llm.SiteKnowledge, degraded bool) {
	var (
		snap     snapshot
		failures [3]error
		g        errgroup.Group
	)

	g.Go(func() error {
		snap.plans, failures[0] = r.pricingRepo.List(ctx)
		return nil
	})
	g.Go(func() error {
		snap.services, failures[1] = r.serviceRepo.List(ctx)
		return nil
	})
	g.Go(func() error {
		snap.sections, failures[2] = r.contentRepo.List(ctx)
		return nil
	})
	_ = g.Wait()

	for i, name := range []string{"pricing", "services", "content"} {
		if failures[i] != nil {
			degraded = true
			log.Warn().Err(failures[i]).Str("collection", name).Msg("knowledge fetch failed, using empty list")
		}
	}
	if failures[0] != nil {
		snap.plans = nil
	}
	if failures[1] != nil {
		snap.services = nil
	}
	if failures[2] != nil {
		snap.sections = nil
	}

	return snap.knowledge(), degraded
}

func (s *snapshot) knowledge() *llm.SiteKnowledge {
	k := &llm.SiteKnowledge{
		Plans:    make([]llm.Plan, 0, len(s.plans)),
		Services: make([]llm.Service, 0, len(s.services)),
	}

	for _, p := range s.plans {
		k.Plans = append(k.Plans, llm.Plan{
			Name:     p.Name,
			Tagline:  p.Tagline,
			Price:    p.Price,
			Period:   p.Period,
			Features: []string(p.Features),
			Popular:  p.Popular,
		})
	}
	for _, svc := range s.services {
		k.Services = append(k.Services, llm.Service{Title: svc.Title, Description: svc.Description})
	}
	for i := range s.sections {
		sec := &s.sections[i]
		mapped := &llm.Section{
			Title:       sec.Title,
			Subtitle:    sec.Subtitle,
			Description: sec.Description,
			Content:     sec.ContentString(),
		}
		switch sec.Section {
		case models.SectionHero:
			k.Hero = mapped
		case models.SectionAbout:
			k.About = mapped
		case models.SectionContact:
			k.Contact = mapped
		}
	}
	return k
}

func wrap(collection string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", collection, err)
	}
	return nil
}
