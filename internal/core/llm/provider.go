package llm

import (
	"context"
	"errors"
	"fmt"
)

// Chat roles understood by OpenAI-compatible APIs.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// CompletionParams are the sampling settings for one completion call.
type CompletionParams struct {
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// ChatProvider issues a single, non-streaming chat completion.
type ChatProvider interface {
	Complete(ctx context.Context, messages []Message, params CompletionParams) (string, error)
	GetProviderName() string
}

var (
	// ErrTimeout means the call was aborted because its deadline passed.
	ErrTimeout = errors.New("upstream request timed out")
	// ErrUnreachable means no HTTP response was received at all.
	ErrUnreachable = errors.New("upstream unreachable")
)

// UpstreamError is a non-2xx answer from the completion API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: %d %s", e.StatusCode, e.Body)
}

// StatusCode extracts the upstream HTTP status from err, or 0 when err is not an UpstreamError.
func StatusCode(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}
