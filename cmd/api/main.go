package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/vedixlab/vedixlab-backend/cmd/api/docs"
	"github.com/vedixlab/vedixlab-backend/internal/core/chatbot"
	"github.com/vedixlab/vedixlab-backend/internal/core/scheduler"
	"github.com/vedixlab/vedixlab-backend/internal/server"
	"github.com/vedixlab/vedixlab-backend/internal/shared/config"
	"github.com/vedixlab/vedixlab-backend/internal/shared/database"
	"github.com/vedixlab/vedixlab-backend/internal/shared/utils"
)

// @title VedixLab API
// @version 1.0
// @description Content, pricing, leads and the site assistant for vedixlab.com
// @contact.name VedixLab
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	db, err := database.NewDB(cfg.DatabaseURL, cfg.LogLevel == "debug")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db.GORM); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	chatCfg := cfg.Chat()
	provider := chatbot.NewProvider(chatCfg, cfg.OpenRouterBaseURL, cfg.FrontendURL)
	if provider != nil {
		log.Info().Str("provider", provider.GetProviderName()).Str("model", chatCfg.Model).Msg("chat provider configured")
	} else if chatCfg.Development {
		log.Warn().Msg("OPENROUTER_API_KEY not set, chatbot runs in keyword fallback mode")
	} else {
		log.Error().Msg("OPENROUTER_API_KEY not set, chatbot requests will fail")
	}

	deps := server.Wire(cfg, db.GORM, provider, server.Options{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	created, err := deps.Auth.EnsureDefaultAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed default admin")
	}
	if created && cfg.IsProduction() {
		log.Warn().Msg("default admin created with configured credentials, change the password")
	}

	jobs := scheduler.New()
	if cfg.LeadRetentionDays > 0 {
		if err := jobs.Add(scheduler.LeadRetentionJob, cfg.LeadRetentionCron, scheduler.LeadRetention(deps.Leads, cfg.LeadRetentionDays)); err != nil {
			log.Fatal().Err(err).Msg("invalid LEAD_RETENTION_CRON")
		}
	}
	if cfg.AuditRetentionDays > 0 {
		if err := jobs.Add(scheduler.AuditRetentionJob, cfg.LeadRetentionCron, scheduler.Retention(scheduler.AuditRetentionJob, deps.Audit, cfg.AuditRetentionDays)); err != nil {
			log.Fatal().Err(err).Msg("invalid LEAD_RETENTION_CRON")
		}
	}
	jobs.Start()

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		log.Info().Msgf("swagger UI: http://localhost:%s/swagger/", cfg.Port)
		if err := deps.App.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	jobs.Stop()
	if err := deps.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
