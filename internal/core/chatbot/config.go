package chatbot

import (
	"strings"
	"time"

	"github.com/vedixlab/vedixlab-backend/internal/core/llm"
)

// ProviderTitle identifies the site to OpenRouter (X-Title header).
const ProviderTitle = "VedixLab Chatbot"

// PlaceholderAPIKey is the value shipped in .env.example; it counts as no key.
const PlaceholderAPIKey = "your-openrouter-api-key-here"

const (
	MaxMessageLength = 2000
	HistoryLimit     = 6

	maxTokens   = 600
	temperature = 0.7
	topP        = 0.9

	defaultTimeout = 80 * time.Second
)

// Config is everything the dispatcher needs from the environment.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// Development enables the keyword fallback when no key is configured.
	Development bool
	// Production hides internal error detail from responses.
	Production bool
}

// HasCredential reports whether a real API key is configured.
func (c Config) HasCredential() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && key != PlaceholderAPIKey
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// NewProvider builds the OpenRouter provider from c, or returns nil when no
// real key is configured. referer is sent as HTTP-Referer.
func NewProvider(c Config, baseURL, referer string) llm.ChatProvider {
	if !c.HasCredential() {
		return nil
	}
	return llm.NewOpenRouterProvider(llm.OpenRouterConfig{
		APIKey:  strings.TrimSpace(c.APIKey),
		Model:   c.Model,
		BaseURL: baseURL,
		Referer: referer,
		Title:   ProviderTitle,
	})
}
