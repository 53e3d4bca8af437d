package chatbot

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vedixlab/vedixlab-backend/internal/core/llm"
)

// KnowledgeSource loads the site data. kb.Retriever is the production implementation.
type KnowledgeSource interface {
	Load(ctx context.Context) (*llm.SiteKnowledge, error)
	LoadBestEffort(ctx context.Context) (*llm.SiteKnowledge, bool)
}

// Prompt is a system prompt plus whether it had to fall back to the generic text.
type Prompt struct {
	Text     string
	Degraded bool
}

type PromptBuilder struct {
	source KnowledgeSource
}

func NewPromptBuilder(source KnowledgeSource) *PromptBuilder {
	return &PromptBuilder{source: source}
}

// Build never fails: a load error yields the generic prompt marked Degraded.
func (b *PromptBuilder) Build(ctx context.Context) Prompt {
	k, err := b.source.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("building system prompt failed, using generic prompt")
		return Prompt{Text: llm.GenericSystemPrompt, Degraded: true}
	}
	return Prompt{Text: llm.BuildSystemPrompt(k)}
}
