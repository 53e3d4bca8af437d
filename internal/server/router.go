package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"

	"github.com/vedixlab/vedixlab-backend/internal/core/audit"
	"github.com/vedixlab/vedixlab-backend/internal/core/auth"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/handlers"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health    *handlers.HealthHandler
	Pricing   *handlers.PricingHandler
	Offerings *handlers.OfferingHandler
	Content   *handlers.ContentHandler
	Contact   *handlers.ContactHandler
	Leads     *handlers.LeadHandler
	Chatbot   *handlers.ChatbotHandler
	Auth      *auth.Handler
	Audit     *audit.Handler
}

type Options struct {
	FrontendURL string
	Production  bool

	// Zero values fall back to 100 per 15 minutes and 10 per minute.
	APILimit   int
	APIWindow  time.Duration
	ChatLimit  int
	ChatWindow time.Duration
}

func (o *Options) defaults() {
	if o.FrontendURL == "" {
		o.FrontendURL = "http://localhost:5173"
	}
	if o.APILimit <= 0 {
		o.APILimit = 100
	}
	if o.APIWindow <= 0 {
		o.APIWindow = 15 * time.Minute
	}
	if o.ChatLimit <= 0 {
		o.ChatLimit = 10
	}
	if o.ChatWindow <= 0 {
		o.ChatWindow = time.Minute
	}
}

// New builds the fiber app with middleware and every /api route.
func New(h Handlers, authService *auth.Service, auditService *audit.Service, opts Options) *fiber.App {
	opts.defaults()

	app := fiber.New(fiber.Config{
		AppName:      "VedixLab API",
		ErrorHandler: errorHandler(opts.Production),
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     opts.FrontendURL,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(requestLogger())

	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        opts.APILimit,
		Expiration: opts.APIWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests from this IP, please try again later.",
			})
		},
	}))
	requireAdmin := auth.AuthMiddleware(authService)
	track := func(entity string) fiber.Handler {
		return audit.Middleware(auditService, entity)
	}

	api.Get("/health", h.Health.GetHealth)

	pricing := api.Group("/pricing")
	pricing.Get("/", h.Pricing.ListPlans)
	pricing.Get("/:id", h.Pricing.GetPlan)
	pricing.Post("/", requireAdmin, track("pricing"), h.Pricing.CreatePlan)
	pricing.Put("/:id", requireAdmin, track("pricing"), h.Pricing.UpdatePlan)
	pricing.Delete("/:id", requireAdmin, track("pricing"), h.Pricing.DeletePlan)

	api.Get("/services", h.Offerings.ListServices)
	api.Get("/services/:id", h.Offerings.GetService)

	content := api.Group("/content")
	content.Get("/", h.Content.GetContent)
	content.Get("/section/:section", h.Content.GetSection)
	content.Post("/section", requireAdmin, track("content"), h.Content.UpsertSection)
	content.Put("/section/:section", requireAdmin, track("content"), h.Content.UpsertSection)
	content.Get("/services", h.Offerings.ListServices)
	content.Post("/services", requireAdmin, track("service"), h.Offerings.CreateService)
	content.Put("/services/:id", requireAdmin, track("service"), h.Offerings.UpdateService)
	content.Delete("/services/:id", requireAdmin, track("service"), h.Offerings.DeleteService)

	api.Post("/contact", h.Contact.Submit)

	chat := api.Group("/chatbot")
	chat.Get("/test", h.Chatbot.Test)
	chat.Post("/chat", limiter.New(limiter.Config{
		Max:        opts.ChatLimit,
		Expiration: opts.ChatWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many chatbot requests. Please wait a moment before trying again.",
			})
		},
	}), h.Chatbot.Chat)

	admin := api.Group("/admin")
	admin.Post("/login", h.Auth.Login)
	admin.Get("/verify", requireAdmin, h.Auth.Verify)
	admin.Get("/audit", requireAdmin, h.Audit.List)

	leads := api.Group("/leads", requireAdmin)
	leads.Get("/", h.Leads.ListLeads)
	leads.Get("/export", h.Leads.ExportLeads)
	leads.Get("/:id", h.Leads.GetLead)
	leads.Patch("/:id/status", track("lead"), h.Leads.UpdateStatus)
	leads.Delete("/:id", track("lead"), h.Leads.DeleteLead)

	app.Use(notFound)

	return app
}
