package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"github.com/vedixlab/vedixlab-backend/internal/core/llm"
	"github.com/vedixlab/vedixlab-backend/internal/shared/config"
	"github.com/vedixlab/vedixlab-backend/internal/shared/database"
)

type testAPI struct {
	t     *testing.T
	deps  *Deps
	token string
}

func newTestAPI(t *testing.T, opts Options) *testAPI {
	return newChatTestAPI(t, "development", "your-openrouter-api-key-here", nil, opts)
}

func newChatTestAPI(t *testing.T, env, apiKey string, provider llm.ChatProvider, opts Options) *testAPI {
	t.Helper()
	db, err := database.NewMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Env:              env,
		FrontendURL:      "http://localhost:5173",
		JWTSecret:        "test-secret",
		JWTExpire:        time.Hour,
		OpenRouterAPIKey: apiKey,
		OpenRouterModel:  "test/model",
	}
	deps := Wire(cfg, db.GORM, provider, opts)

	_, err = deps.Auth.EnsureDefaultAdmin(context.Background(), "admin@gmail.com", "admin@#1234")
	require.NoError(t, err)

	return &testAPI{t: t, deps: deps}
}

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Complete(context.Context, []llm.Message, llm.CompletionParams) (string, error) {
	return p.reply, p.err
}

func (p *stubProvider) GetProviderName() string { return "stub" }

func (a *testAPI) do(method, path, body string) (int, map[string]interface{}) {
	a.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.deps.App.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (a *testAPI) login() {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/api/admin/login", `{"email":"admin@gmail.com","password":"admin@#1234"}`)
	require.Equal(a.t, http.StatusOK, status)
	a.token = body["data"].(map[string]interface{})["token"].(string)
}

func TestHealthAndNotFound(t *testing.T) {
	api := newTestAPI(t, Options{})

	status, body := api.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Server is running", body["message"])

	status, body = api.do(http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Route not found", body["message"])
}

func TestPricingRoutes(t *testing.T) {
	api := newTestAPI(t, Options{})
	plan := `{"name":"Starter","tagline":"Launch fast","price":"$499","period":"project","features":["Landing page"],"order":1}`

	status, body := api.do(http.MethodPost, "/api/pricing", plan)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])

	api.login()
	status, body = api.do(http.MethodPost, "/api/pricing", plan)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Pricing plan created successfully", body["message"])
	id := body["data"].(map[string]interface{})["_id"].(string)

	status, body = api.do(http.MethodPost, "/api/pricing", `{"name":"No price","tagline":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "price is required", body["error"])

	api.token = ""
	status, body = api.do(http.MethodGet, "/api/pricing", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])

	status, _ = api.do(http.MethodGet, "/api/pricing/"+id, "")
	assert.Equal(t, http.StatusOK, status)

	status, body = api.do(http.MethodGet, "/api/pricing/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Pricing plan not found", body["message"])

	api.login()
	status, body = api.do(http.MethodPut, "/api/pricing/"+id, `{"popular":true}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]interface{})["popular"])

	status, _ = api.do(http.MethodDelete, "/api/pricing/"+id, "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(http.MethodDelete, "/api/pricing/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = api.do(http.MethodGet, "/api/admin/audit?entity=pricing", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(3), body["count"])
	latest := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "delete", latest["action"])
	assert.Equal(t, id, latest["entityId"])
	assert.Equal(t, "admin@gmail.com", latest["email"])
}

func TestContentAndServiceRoutes(t *testing.T) {
	api := newTestAPI(t, Options{})
	api.login()

	status, body := api.do(http.MethodPut, "/api/content/section/hero", `{"title":"VedixLab","subtitle":"AI that ships","content":{"cta":"Book a call"}}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Content updated successfully", body["message"])

	status, body = api.do(http.MethodPost, "/api/content/section", `{"section":"banner","title":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = api.do(http.MethodPost, "/api/content/services", `{"icon":"🤖","title":"AI Agents","description":"Automate support","image":"ai.png"}`)
	require.Equal(t, http.StatusCreated, status)
	serviceID := body["data"].(map[string]interface{})["_id"].(string)

	api.token = ""
	status, body = api.do(http.MethodGet, "/api/content", "")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["content"], 1)
	assert.Len(t, data["services"], 1)

	status, body = api.do(http.MethodGet, "/api/content/section/hero", "")
	require.Equal(t, http.StatusOK, status)
	hero := body["data"].(map[string]interface{})
	assert.Equal(t, "Book a call", hero["content"].(map[string]interface{})["cta"])

	status, body = api.do(http.MethodGet, "/api/content/section/about", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Content section not found", body["message"])

	status, _ = api.do(http.MethodGet, "/api/services/"+serviceID, "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = api.do(http.MethodDelete, "/api/content/services/"+serviceID, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestContactCreatesLead(t *testing.T) {
	api := newTestAPI(t, Options{})

	status, body := api.do(http.MethodPost, "/api/contact", `{"name":"Ana","email":"not-an-email","projectType":"AI","budgetRange":"$5k","message":"Hi"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid email format", body["message"])

	status, body = api.do(http.MethodPost, "/api/contact", `{"name":"Ana","email":"ana@example.com","projectType":"AI","budgetRange":"$5k","message":"Hi"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Thank you for your inquiry! We will get back to you within 24 hours.", body["message"])

	status, _ = api.do(http.MethodGet, "/api/leads", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	api.login()
	status, body = api.do(http.MethodGet, "/api/leads?status=new", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), body["count"])
	lead := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "ana@example.com", lead["email"])

	status, body = api.do(http.MethodPatch, "/api/leads/"+lead["_id"].(string)+"/status", `{"status":"qualified"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "qualified", body["data"].(map[string]interface{})["status"])

	status, _ = api.do(http.MethodPatch, "/api/leads/"+lead["_id"].(string)+"/status", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLeadExport(t *testing.T) {
	api := newTestAPI(t, Options{})
	api.login()

	for _, tc := range []struct {
		format string
		ctype  string
		ext    string
	}{
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx"},
		{"pdf", "application/pdf", ".pdf"},
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/leads/export?format="+tc.format, nil)
		req.Header.Set("Authorization", "Bearer "+api.token)
		resp, err := api.deps.App.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, tc.ctype, resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), tc.ext)
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.NotEmpty(t, raw)
	}

	status, _ := api.do(http.MethodGet, "/api/leads/export?format=csv", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestChatbotRoutes(t *testing.T) {
	api := newTestAPI(t, Options{ChatLimit: 3})

	status, body := api.do(http.MethodGet, "/api/chatbot/test", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Chatbot routes are working!", body["message"])

	status, body = api.do(http.MethodPost, "/api/chatbot/chat", `{"message":42}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Message is required and must be a non-empty string", body["message"])

	status, body = api.do(http.MethodPost, "/api/chatbot/chat", `{"message":"hello","history":[{"role":"user","content":"hey"}]}`)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data["message"], "Hello! 👋")
	assert.Equal(t, "Using fallback mode. Configure OPENROUTER_API_KEY for full AI capabilities.", data["note"])
	assert.NotEmpty(t, data["timestamp"])

	status, _ = api.do(http.MethodPost, "/api/chatbot/chat", `{"message":"pricing"}`)
	assert.Equal(t, http.StatusOK, status)

	status, body = api.do(http.MethodPost, "/api/chatbot/chat", `{"message":"one too many"}`)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "Too many chatbot requests. Please wait a moment before trying again.", body["message"])
}

func TestAPIRateLimit(t *testing.T) {
	api := newTestAPI(t, Options{APILimit: 2})

	for i := 0; i < 2; i++ {
		status, _ := api.do(http.MethodGet, "/api/health", "")
		require.Equal(t, http.StatusOK, status)
	}
	status, body := api.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, false, body["success"])
}

func TestChatEnvelopes(t *testing.T) {
	cases := []struct {
		name    string
		env     string
		stub    *stubProvider
		status  int
		success bool
		message string
		note    string
		detail  string
	}{
		{
			name:    "reply is trimmed",
			env:     "development",
			stub:    &stubProvider{reply: "  We build AI agents.  "},
			status:  http.StatusOK,
			success: true,
			message: "We build AI agents.",
		},
		{
			name:    "timeout is a soft success",
			env:     "development",
			stub:    &stubProvider{err: fmt.Errorf("%w: deadline", llm.ErrTimeout)},
			status:  http.StatusOK,
			success: true,
			message: "I apologize, but the AI service is taking longer",
			note:    "Response timeout - please retry",
		},
		{
			name:    "auth failure",
			env:     "development",
			stub:    &stubProvider{err: &llm.UpstreamError{StatusCode: http.StatusUnauthorized}},
			status:  http.StatusInternalServerError,
			message: "Chatbot service authentication failed. Please contact administrator.",
		},
		{
			name:    "upstream error shows detail in development",
			env:     "development",
			stub:    &stubProvider{err: errors.New("weird")},
			status:  http.StatusInternalServerError,
			message: "Failed to get response from chatbot. Please try again later.",
			detail:  "weird",
		},
		{
			name:    "upstream error hides detail in production",
			env:     "production",
			stub:    &stubProvider{err: errors.New("weird")},
			status:  http.StatusInternalServerError,
			message: "Failed to get response from chatbot. Please try again later.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := newChatTestAPI(t, tc.env, "sk-or-test", tc.stub, Options{})

			status, body := api.do(http.MethodPost, "/api/chatbot/chat", `{"message":"what do you build?"}`)
			require.Equal(t, tc.status, status)
			assert.Equal(t, tc.success, body["success"])

			if !tc.success {
				assert.Equal(t, tc.message, body["message"])
				detail, ok := body["error"]
				if tc.detail == "" {
					assert.False(t, ok, "error detail should be omitted")
				} else {
					assert.Equal(t, tc.detail, detail)
				}
				return
			}

			data := body["data"].(map[string]interface{})
			assert.Contains(t, data["message"], tc.message)
			assert.NotEmpty(t, data["timestamp"])
			note, ok := data["note"]
			if tc.note == "" {
				assert.False(t, ok)
			} else {
				assert.Equal(t, tc.note, note)
			}
		})
	}
}

func TestChatLogsMalformedBody(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	t.Cleanup(func() { log.Logger = prev })

	api := newChatTestAPI(t, "development", "sk-or-test", &stubProvider{reply: "unused"}, Options{})

	status, body := api.do(http.MethodPost, "/api/chatbot/chat", `{"message": "unterminated`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Message is required and must be a non-empty string", body["message"])
	assert.Contains(t, buf.String(), "malformed chat request body")
}
