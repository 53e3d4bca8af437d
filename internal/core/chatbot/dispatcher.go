package chatbot

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/vedixlab/vedixlab-backend/internal/core/llm"
)

// Outcome is the terminal state of one chat request.
type Outcome int

const (
	OutcomeRejected Outcome = iota
	OutcomeFallback
	OutcomeNotConfigured
	OutcomeSucceeded
	OutcomeTimedOut
	OutcomeAuthFailed
	OutcomeRateLimited
	OutcomeUpstreamError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeFallback:
		return "fallback"
	case OutcomeNotConfigured:
		return "not_configured"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeAuthFailed:
		return "auth_failed"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeUpstreamError:
		return "upstream_error"
	default:
		return "unknown"
	}
}

func (o Outcome) HTTPStatus() int {
	switch o {
	case OutcomeRejected:
		return http.StatusBadRequest
	case OutcomeFallback, OutcomeSucceeded, OutcomeTimedOut:
		return http.StatusOK
	case OutcomeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// OK reports whether the caller receives a reply rather than an error.
func (o Outcome) OK() bool {
	return o.HTTPStatus() == http.StatusOK
}

const (
	msgRequired       = "Message is required and must be a non-empty string"
	msgTooLong        = "Message is too long. Please keep it under 2000 characters."
	msgNotConfigured  = "Chatbot service is not configured. Please contact administrator."
	msgAuthFailed     = "Chatbot service authentication failed. Please contact administrator."
	msgRateLimited    = "Too many requests. Please wait a moment and try again."
	msgUnreachable    = "Unable to connect to chatbot service. Please try again later."
	msgUpstreamFailed = "Failed to get response from chatbot. Please try again later."
	msgEmptyReply     = "Sorry, I could not generate a response."

	// TimeoutNote accompanies the apology sent when the upstream call times out.
	TimeoutNote = "Response timeout - please retry"
)

const timeoutReply = "I apologize, but the AI service is taking longer than usual to respond. " +
	"This might be due to high demand. Please try again in a moment, or feel free to ask a simpler question.\n\n" +
	"In the meantime, I can help you with:\n" +
	"• Information about our services\n" +
	"• Pricing details\n" +
	"• Contact information\n" +
	"• Technical support"

// ChatMessage is one prior turn supplied by the client.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Message string
	History []ChatMessage
}

// Result carries everything the HTTP layer needs to render a response.
// Reply is the assistant text on OK outcomes and the error message otherwise.
type Result struct {
	Outcome   Outcome
	Reply     string
	Note      string
	Detail    string
	Timestamp time.Time
	// Rule is the fallback rule that answered, if any.
	Rule           string
	PromptDegraded bool
}

// AssembleMessages builds the outbound list: the system prompt, the last
// HistoryLimit history entries and the trimmed user message.
func AssembleMessages(system string, history []ChatMessage, message string) []llm.Message {
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}

	out := make([]llm.Message, 0, len(history)+2)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: system})
	for _, h := range history {
		role := llm.RoleAssistant
		if h.Role == llm.RoleUser {
			role = llm.RoleUser
		}
		out = append(out, llm.Message{Role: role, Content: h.Content})
	}
	out = append(out, llm.Message{Role: llm.RoleUser, Content: strings.TrimSpace(message)})
	return out
}

// Validate returns the rejection message for an unacceptable user message, or "".
func Validate(message string) string {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return msgRequired
	}
	if utf8.RuneCountInString(trimmed) > MaxMessageLength {
		return msgTooLong
	}
	return ""
}

// Dispatcher routes a chat request to the completion API or the keyword fallback.
type Dispatcher struct {
	cfg      Config
	provider llm.ChatProvider
	prompts  *PromptBuilder
	fallback *FallbackResponder
	now      func() time.Time
}

// NewDispatcher wires the dispatcher. provider may be nil when no credential is configured.
func NewDispatcher(cfg Config, provider llm.ChatProvider, prompts *PromptBuilder, fallback *FallbackResponder) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		provider: provider,
		prompts:  prompts,
		fallback: fallback,
		now:      time.Now,
	}
}

// Dispatch makes at most one outbound call and never retries.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	if msg := Validate(req.Message); msg != "" {
		return d.result(OutcomeRejected, msg)
	}

	if !d.cfg.HasCredential() || d.provider == nil {
		if !d.cfg.Development {
			log.Error().Msg("chat request received but no OpenRouter credential is configured")
			return d.result(OutcomeNotConfigured, msgNotConfigured)
		}
		reply := d.fallback.Respond(ctx, req.Message)
		log.Info().Str("rule", reply.Rule).Bool("degraded", reply.Degraded).Msg("chat answered by fallback")
		res := d.result(OutcomeFallback, reply.Text)
		res.Note = FallbackNote
		res.Rule = reply.Rule
		return res
	}

	prompt := d.prompts.Build(ctx)
	messages := AssembleMessages(prompt.Text, req.History, req.Message)

	callCtx, cancel := context.WithTimeout(ctx, d.cfg.timeout())
	defer cancel()

	start := d.now()
	text, err := d.provider.Complete(callCtx, messages, llm.CompletionParams{
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
	elapsed := d.now().Sub(start)

	if err != nil {
		res := d.classify(err)
		res.PromptDegraded = prompt.Degraded
		log.Warn().Err(err).
			Str("provider", d.provider.GetProviderName()).
			Str("outcome", res.Outcome.String()).
			Dur("elapsed", elapsed).
			Msg("chat completion failed")
		return res
	}

	text = strings.TrimSpace(text)
	if text == "" {
		text = msgEmptyReply
	}
	log.Info().
		Str("provider", d.provider.GetProviderName()).
		Dur("elapsed", elapsed).
		Bool("prompt_degraded", prompt.Degraded).
		Msg("chat completion succeeded")

	res := d.result(OutcomeSucceeded, text)
	res.PromptDegraded = prompt.Degraded
	return res
}

func (d *Dispatcher) classify(err error) Result {
	switch {
	case errors.Is(err, llm.ErrTimeout):
		res := d.result(OutcomeTimedOut, timeoutReply)
		res.Note = TimeoutNote
		return res
	case llm.StatusCode(err) == http.StatusUnauthorized:
		return d.result(OutcomeAuthFailed, msgAuthFailed)
	case llm.StatusCode(err) == http.StatusTooManyRequests:
		return d.result(OutcomeRateLimited, msgRateLimited)
	case errors.Is(err, llm.ErrUnreachable):
		return d.result(OutcomeUpstreamError, msgUnreachable)
	}

	res := d.result(OutcomeUpstreamError, msgUpstreamFailed)
	if !d.cfg.Production {
		res.Detail = err.Error()
	}
	return res
}

func (d *Dispatcher) result(o Outcome, reply string) Result {
	return Result{Outcome: o, Reply: reply, Timestamp: d.now().UTC()}
}
