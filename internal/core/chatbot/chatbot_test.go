package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/vedixlab/vedixlab-backend/internal/core/kb"
	"github.com/vedixlab/vedixlab-backend/internal/core/llm"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/models"
	"github.com/vedixlab/vedixlab-backend/internal/modules/site/repositories"
	"github.com/vedixlab/vedixlab-backend/internal/shared/database"
)

type staticSource struct {
	k     *llm.SiteKnowledge
	err   error
	loads int32
}

func (s *staticSource) Load(context.Context) (*llm.SiteKnowledge, error) {
	atomic.AddInt32(&s.loads, 1)
	if s.err != nil {
		return nil, s.err
	}
	return s.k, nil
}

func (s *staticSource) LoadBestEffort(context.Context) (*llm.SiteKnowledge, bool) {
	atomic.AddInt32(&s.loads, 1)
	if s.err != nil {
		return &llm.SiteKnowledge{}, true
	}
	return s.k, false
}

type recordingProvider struct {
	calls    int32
	messages []llm.Message
	params   llm.CompletionParams
	reply    string
	err      error
}

func (p *recordingProvider) Complete(_ context.Context, messages []llm.Message, params llm.CompletionParams) (string, error) {
	atomic.AddInt32(&p.calls, 1)
	p.messages = messages
	p.params = params
	return p.reply, p.err
}

func (p *recordingProvider) GetProviderName() string { return "recording" }

func fixtureKnowledge() *llm.SiteKnowledge {
	return &llm.SiteKnowledge{
		Hero:    &llm.Section{Title: "VedixLab", Subtitle: "AI that ships"},
		Contact: &llm.Section{Title: "Contact", Description: "hello@vedixlab.com"},
		Services: []llm.Service{
			{Title: "AI Agents", Description: "Autonomous assistants for support teams"},
			{Title: "Web Platforms", Description: "Fast, accessible web apps"},
			{Title: "Data Pipelines", Description: "Reliable ingestion and analytics"},
		},
		Plans: []llm.Plan{
			{Name: "Starter", Tagline: "For small teams", Price: "$499", Period: "project", Features: []string{"Landing page", "Chat widget"}},
			{Name: "Growth", Tagline: "Scale up", Price: "$1,499", Period: "project", Features: []string{"A", "B", "C", "D", "E"}, Popular: true},
		},
	}
}

func keyedConfig() Config {
	return Config{APIKey: "sk-or-test", Model: "test/model", Timeout: time.Second, Development: true}
}

func newTestDispatcher(cfg Config, provider llm.ChatProvider, source KnowledgeSource) *Dispatcher {
	return NewDispatcher(cfg, provider, NewPromptBuilder(source), NewFallbackResponder(source, nil))
}

func TestDispatchRejectsInvalidMessagesWithoutCalling(t *testing.T) {
	provider := &recordingProvider{reply: "unused"}
	d := newTestDispatcher(keyedConfig(), provider, &staticSource{k: fixtureKnowledge()})

	for _, msg := range []string{"", "   ", "\n\t", strings.Repeat("a", MaxMessageLength+1)} {
		res := d.Dispatch(context.Background(), Request{Message: msg})
		assert.Equal(t, OutcomeRejected, res.Outcome)
		assert.Equal(t, http.StatusBadRequest, res.Outcome.HTTPStatus())
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&provider.calls))

	res := d.Dispatch(context.Background(), Request{Message: strings.Repeat("a", MaxMessageLength)})
	assert.Equal(t, OutcomeSucceeded, res.Outcome)
}

func TestDispatchForwardsLastSixHistoryEntries(t *testing.T) {
	provider := &recordingProvider{reply: "  Sure thing.  "}
	d := newTestDispatcher(keyedConfig(), provider, &staticSource{k: fixtureKnowledge()})

	history := make([]ChatMessage, 0, 9)
	for i := 0; i < 9; i++ {
		role := "user"
		if i%2 == 1 {
			role = "bot"
		}
		history = append(history, ChatMessage{Role: role, Content: fmt.Sprintf("turn-%d", i)})
	}

	res := d.Dispatch(context.Background(), Request{Message: "  next question ", History: history})
	require.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.Equal(t, "Sure thing.", res.Reply)

	require.Len(t, provider.messages, 8)
	assert.Equal(t, llm.RoleSystem, provider.messages[0].Role)
	assert.Contains(t, provider.messages[0].Content, "AI Agents")
	for i, m := range provider.messages[1:7] {
		assert.Equal(t, fmt.Sprintf("turn-%d", i+3), m.Content)
	}
	assert.Equal(t, llm.RoleAssistant, provider.messages[1].Role) // "bot" at index 3
	assert.Equal(t, llm.RoleUser, provider.messages[2].Role)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "next question"}, provider.messages[7])

	assert.Equal(t, 600, provider.params.MaxTokens)
	assert.InDelta(t, 0.7, provider.params.Temperature, 1e-6)
	assert.InDelta(t, 0.9, provider.params.TopP, 1e-6)
}

func TestDispatchEmptyCompletion(t *testing.T) {
	provider := &recordingProvider{reply: "   "}
	d := newTestDispatcher(keyedConfig(), provider, &staticSource{k: fixtureKnowledge()})

	res := d.Dispatch(context.Background(), Request{Message: "anything"})
	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.Equal(t, "Sorry, I could not generate a response.", res.Reply)
}

func TestDispatchDegradedPromptStillCalls(t *testing.T) {
	provider := &recordingProvider{reply: "ok"}
	d := newTestDispatcher(keyedConfig(), provider, &staticSource{err: errors.New("db down")})

	res := d.Dispatch(context.Background(), Request{Message: "hi"})
	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.True(t, res.PromptDegraded)
	assert.Equal(t, llm.GenericSystemPrompt, provider.messages[0].Content)
}

func TestDispatchWithoutCredential(t *testing.T) {
	source := &staticSource{k: fixtureKnowledge()}

	t.Run("placeholder key in development uses fallback", func(t *testing.T) {
		provider := &recordingProvider{}
		cfg := Config{APIKey: PlaceholderAPIKey, Development: true}
		res := newTestDispatcher(cfg, provider, source).Dispatch(context.Background(), Request{Message: "hello"})
		assert.Equal(t, OutcomeFallback, res.Outcome)
		assert.Equal(t, FallbackNote, res.Note)
		assert.Equal(t, int32(0), provider.calls)
	})

	t.Run("production returns not configured", func(t *testing.T) {
		cfg := Config{Production: true}
		res := newTestDispatcher(cfg, nil, source).Dispatch(context.Background(), Request{Message: "hello"})
		assert.Equal(t, OutcomeNotConfigured, res.Outcome)
		assert.Equal(t, http.StatusInternalServerError, res.Outcome.HTTPStatus())
		assert.Equal(t, "Chatbot service is not configured. Please contact administrator.", res.Reply)
	})
}

func TestFallbackPricingUsesLiveCollection(t *testing.T) {
	db, err := database.NewMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	pricing := repositories.NewPricingRepo(db.GORM)
	retriever := kb.NewRetriever(pricing, repositories.NewServiceRepo(db.GORM), repositories.NewContentRepo(db.GORM))
	d := newTestDispatcher(Config{Development: true}, nil, retriever)

	require.NoError(t, pricing.Create(ctx, &models.PricingPlan{
		Name: "Starter", Tagline: "Small teams", Price: "$499", Period: "project",
		Features: datatypes.JSONSlice[string]{"One", "Two", "Three", "Four"}, Order: 1,
	}))

	res := d.Dispatch(ctx, Request{Message: "What's your PRICING like?"})
	require.Equal(t, OutcomeFallback, res.Outcome)
	assert.Equal(t, RulePricing, res.Rule)
	assert.Contains(t, res.Reply, "Starter")
	assert.Contains(t, res.Reply, "$499/project")
	assert.Contains(t, res.Reply, "Features: One, Two, Three...")

	require.NoError(t, pricing.Create(ctx, &models.PricingPlan{
		Name: "Enterprise", Tagline: "Custom", Price: "Custom", Popular: true, Order: 2,
	}))

	res = d.Dispatch(ctx, Request{Message: "pricing"})
	assert.Contains(t, res.Reply, "Enterprise (POPULAR)")
	assert.Contains(t, res.Reply, "Price: Custom\n")
}

func TestFallbackServicesScenario(t *testing.T) {
	d := newTestDispatcher(Config{Development: true}, nil, &staticSource{k: fixtureKnowledge()})

	res := d.Dispatch(context.Background(), Request{Message: "What are your services?"})
	require.Equal(t, OutcomeFallback, res.Outcome)
	assert.Equal(t, RuleServices, res.Rule)
	assert.Contains(t, res.Reply, "1. AI Agents\n   Autonomous assistants for support teams")
	assert.Contains(t, res.Reply, "3. Data Pipelines")
	assert.True(t, strings.HasSuffix(res.Reply, "Would you like more details about any specific service?"))
}

func TestFallbackIsIdempotent(t *testing.T) {
	d := newTestDispatcher(Config{Development: true}, nil, &staticSource{k: fixtureKnowledge()})

	first := d.Dispatch(context.Background(), Request{Message: "hello"})
	second := d.Dispatch(context.Background(), Request{Message: "hello"})

	assert.Equal(t, RuleGreeting, first.Rule)
	assert.Equal(t, first.Rule, second.Rule)
	assert.Equal(t, first.Reply, second.Reply)
	assert.Equal(t, first.Note, second.Note)
	assert.Contains(t, first.Reply, "I'm your AI assistant for VedixLab. AI that ships ")
}

func TestFallbackRuleOrder(t *testing.T) {
	f := NewFallbackResponder(&staticSource{k: &llm.SiteKnowledge{}}, nil)

	cases := map[string]string{
		"Hey, what do you offer?": RuleGreeting,
		"Tell me about a SERVICE": RuleServices,
		"how much does it cost":   RulePricing,
		"I need support":          RuleContact,
		"lorem ipsum":             RuleDefault,
	}

	for msg, want := range cases {
		assert.Equal(t, want, f.Respond(context.Background(), msg).Rule, msg)
	}
}

func TestFallbackDegradesToStaticText(t *testing.T) {
	source := &staticSource{err: errors.New("db down")}
	f := NewFallbackResponder(source, nil)

	reply := f.Respond(context.Background(), "tell me the price")
	assert.Equal(t, RulePricing, reply.Rule)
	assert.True(t, reply.Degraded)
	assert.Contains(t, reply.Text, "Please check our Pricing page")

	reply = f.Respond(context.Background(), "lorem ipsum")
	assert.Equal(t, RuleDefault, reply.Rule)
	assert.Equal(t, int32(1), source.loads)
}

func TestPromptBuilderRoundTrip(t *testing.T) {
	k := fixtureKnowledge()
	p := NewPromptBuilder(&staticSource{k: k}).Build(context.Background())

	assert.False(t, p.Degraded)
	for _, plan := range k.Plans {
		assert.Contains(t, p.Text, plan.Name)
	}
	for _, svc := range k.Services {
		assert.Contains(t, p.Text, svc.Title)
	}
	assert.Less(t, len(p.Text), 3000)
}

func openRouterDispatcher(t *testing.T, handler http.HandlerFunc, cfg Config) (*Dispatcher, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	provider := NewProvider(cfg, srv.URL, "")
	return newTestDispatcher(cfg, provider, &staticSource{k: fixtureKnowledge()}), &calls
}

func TestDispatchTimeoutIsSoftSuccess(t *testing.T) {
	cfg := keyedConfig()
	cfg.Timeout = 50 * time.Millisecond
	release := make(chan struct{})
	d, calls := openRouterDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}, cfg)
	// Registered after the server's Close, so it runs first and frees the handler.
	t.Cleanup(func() { close(release) })

	res := d.Dispatch(context.Background(), Request{Message: "slow question"})
	assert.Equal(t, OutcomeTimedOut, res.Outcome)
	assert.Equal(t, http.StatusOK, res.Outcome.HTTPStatus())
	assert.Equal(t, TimeoutNote, res.Note)
	assert.True(t, strings.HasPrefix(res.Reply, "I apologize, but the AI service is taking longer"))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestDispatchUpstreamStatusMapping(t *testing.T) {
	errorBody := func(status int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			fmt.Fprintf(w, `{"error":{"message":"upstream said no","code":%d}}`, status)
		}
	}

	cases := []struct {
		status  int
		outcome Outcome
		http    int
		message string
	}{
		{http.StatusUnauthorized, OutcomeAuthFailed, http.StatusInternalServerError, "Chatbot service authentication failed. Please contact administrator."},
		{http.StatusTooManyRequests, OutcomeRateLimited, http.StatusTooManyRequests, "Too many requests. Please wait a moment and try again."},
		{http.StatusBadGateway, OutcomeUpstreamError, http.StatusInternalServerError, "Failed to get response from chatbot. Please try again later."},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			d, calls := openRouterDispatcher(t, errorBody(tc.status), keyedConfig())

			res := d.Dispatch(context.Background(), Request{Message: "question"})
			assert.Equal(t, tc.outcome, res.Outcome)
			assert.Equal(t, tc.http, res.Outcome.HTTPStatus())
			assert.Equal(t, tc.message, res.Reply)
			assert.Equal(t, int32(1), atomic.LoadInt32(calls))
		})
	}
}

func TestDispatchHidesDetailInProduction(t *testing.T) {
	cfg := keyedConfig()
	cfg.Development = false
	cfg.Production = true
	d, _ := openRouterDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	}, cfg)

	res := d.Dispatch(context.Background(), Request{Message: "question"})
	assert.Equal(t, OutcomeUpstreamError, res.Outcome)
	assert.Empty(t, res.Detail)
}

func TestDispatchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	provider := llm.NewOpenRouterProvider(llm.OpenRouterConfig{APIKey: "sk", Model: "m", BaseURL: url})
	d := newTestDispatcher(keyedConfig(), provider, &staticSource{k: fixtureKnowledge()})

	res := d.Dispatch(context.Background(), Request{Message: "question"})
	assert.Equal(t, OutcomeUpstreamError, res.Outcome)
	assert.Equal(t, "Unable to connect to chatbot service. Please try again later.", res.Reply)
}

func TestNewProviderUsesChatConfig(t *testing.T) {
	assert.Nil(t, NewProvider(Config{APIKey: PlaceholderAPIKey, Model: "m"}, "", ""))
	assert.Nil(t, NewProvider(Config{APIKey: "  "}, "", ""))

	var model, title, referer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		model, title, referer = body.Model, r.Header.Get("X-Title"), r.Header.Get("HTTP-Referer")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	cfg := keyedConfig()
	cfg.Model = "meta-llama/llama-3.1-8b-instruct:free"
	provider := NewProvider(cfg, srv.URL, "https://vedixlab.com")
	require.NotNil(t, provider)

	text, err := provider.Complete(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, llm.CompletionParams{})
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, cfg.Model, model)
	assert.Equal(t, ProviderTitle, title)
	assert.Equal(t, "https://vedixlab.com", referer)
}

type slowSource struct {
	staticSource
	delay time.Duration
}

func (s *slowSource) Load(ctx context.Context) (*llm.SiteKnowledge, error) {
	time.Sleep(s.delay)
	return s.staticSource.Load(ctx)
}

func TestDispatchTimeoutCoversOnlyTheCompletion(t *testing.T) {
	cfg := keyedConfig()
	cfg.Timeout = 20 * time.Millisecond
	provider := &recordingProvider{reply: "done"}
	source := &slowSource{staticSource: staticSource{k: fixtureKnowledge()}, delay: 60 * time.Millisecond}

	res := newTestDispatcher(cfg, provider, source).Dispatch(context.Background(), Request{Message: "hello"})
	assert.Equal(t, OutcomeSucceeded, res.Outcome)
	assert.Equal(t, "done", res.Reply)
	assert.False(t, res.PromptDegraded)
}
