package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/vedixlab/vedixlab-backend/internal/core/chatbot"
)

const (
	defaultOpenRouterModel   = "google/gemini-2.0-flash-exp:free"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultJWTSecret         = "your-secret-key-change-in-production"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	FrontendURL string
	LogLevel    string
	AutoMigrate bool

	// Admin auth
	JWTSecret     string
	JWTExpire     time.Duration
	AdminEmail    string
	AdminPassword string

	// Chatbot
	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterBaseURL string
	AIRequestTimeout  time.Duration

	// Retention in days; 0 keeps everything. Both purges share LeadRetentionCron.
	LeadRetentionDays  int
	AuditRetentionDays int
	LeadRetentionCron  string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	env := os.Getenv("NODE_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "5000"),
		Env:               env,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:5173"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AutoMigrate:       getEnvBool("AUTO_MIGRATE", true),
		JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpire:         parseExpire(getEnv("JWT_EXPIRE", "7d"), 7*24*time.Hour),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@gmail.com"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "admin@#1234"),
		OpenRouterAPIKey:  strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", defaultOpenRouterModel),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", defaultOpenRouterBaseURL),
		AIRequestTimeout:  time.Duration(getEnvInt("AI_REQUEST_TIMEOUT", 80000)) * time.Millisecond,
		LeadRetentionDays: getEnvInt("LEAD_RETENTION_DAYS", 0),
		LeadRetentionCron: getEnv("LEAD_RETENTION_CRON", "0 0 3 * * *"),

		AuditRetentionDays: getEnvInt("AUDIT_RETENTION_DAYS", 0),
	}

	// Default values
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.AIRequestTimeout <= 0 {
		cfg.AIRequestTimeout = 80 * time.Second
	}

	return cfg
}

// IsDevelopment mirrors the frontend convention: an unset environment counts as development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Chat projects the chatbot settings so the dispatcher never reads the environment itself.
func (c *Config) Chat() chatbot.Config {
	return chatbot.Config{
		APIKey:      c.OpenRouterAPIKey,
		Model:       c.OpenRouterModel,
		Timeout:     c.AIRequestTimeout,
		Development: c.IsDevelopment(),
		Production:  c.IsProduction(),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer in environment, using default")
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// parseExpire accepts Go durations ("12h") and day counts ("7d").
func parseExpire(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if strings.HasSuffix(raw, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
		if err == nil && days > 0 {
			return time.Duration(days) * 24 * time.Hour
		}
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
