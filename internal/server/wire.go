package server

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/vedixlab/vedixlab-backend/internal/core/audit"
	"github.com/vedixlab/vedixlab-backend/internal/core/auth"
	"github.com/vedixlab/vedixlab-backend/internal/core/chatbot"
	"github.com/vedixlab/vedixlab-backend/internal/core/export"
	"github.com/vedixlab/vedixlab-backend/internal/core/kb"
	"github.com/vedixlab/vedixlab-backend/internal/core/llm"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/handlers"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/repositories"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/services"
	"github.com/vedixlab/vedixlab-backend/internal/shared/config"
)

// Deps is the wired application plus the services cmd/api needs at boot.
type Deps struct {
	App   *fiber.App
	Auth  *auth.Service
	Audit *audit.Service
	Leads *services.LeadService
}

// Wire builds repositories, services and handlers on db. provider may be nil
// when no OpenRouter credential is configured.
func Wire(cfg *config.Config, db *gorm.DB, provider llm.ChatProvider, opts Options) *Deps {
	pricingRepo := repositories.NewPricingRepo(db)
	serviceRepo := repositories.NewServiceRepo(db)
	contentRepo := repositories.NewContentRepo(db)
	leadRepo := repositories.NewLeadRepo(db)

	pricingService := services.NewPricingService(pricingRepo)
	offeringService := services.NewOfferingService(serviceRepo)
	contentService := services.NewContentService(contentRepo, serviceRepo)
	leadService := services.NewLeadService(leadRepo, export.NewService())

	authService := auth.NewService(auth.NewRepository(db), auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpire))
	auditService := audit.NewService(db)

	// Prompt builder and fallback each load the site data on their own.
	retriever := kb.NewRetriever(pricingRepo, serviceRepo, contentRepo)
	dispatcher := chatbot.NewDispatcher(
		cfg.Chat(),
		provider,
		chatbot.NewPromptBuilder(retriever),
		chatbot.NewFallbackResponder(retriever, nil),
	)

	production := cfg.IsProduction()
	opts.FrontendURL = cfg.FrontendURL
	opts.Production = production

	app := New(Handlers{
		Health:    handlers.NewHealthHandler(),
		Pricing:   handlers.NewPricingHandler(pricingService, production),
		Offerings: handlers.NewOfferingHandler(offeringService, production),
		Content:   handlers.NewContentHandler(contentService, production),
		Contact:   handlers.NewContactHandler(leadService, production),
		Leads:     handlers.NewLeadHandler(leadService, production),
		Chatbot:   handlers.NewChatbotHandler(dispatcher),
		Auth:      auth.NewHandler(authService, production),
		Audit:     audit.NewHandler(auditService, production),
	}, authService, auditService, opts)

	return &Deps{App: app, Auth: authService, Audit: auditService, Leads: leadService}
}
