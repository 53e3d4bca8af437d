package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/vedixlab/vedixlab-backend/internal/core/chatbot"
)

type ChatbotHandler struct {
	dispatcher *chatbot.Dispatcher
}

func NewChatbotHandler(dispatcher *chatbot.Dispatcher) *ChatbotHandler {
	return &ChatbotHandler{dispatcher: dispatcher}
}

// ChatRequest is the public chat payload. Message is decoded loosely so a
// non-string value is rejected with the same 400 as an empty one.
type ChatRequest struct {
	Message interface{}     `json:"message" swaggertype:"string"`
	History json.RawMessage `json:"history,omitempty" swaggertype:"array,object"`
}

// Test godoc
// @Summary Chatbot route check
// @Tags Chatbot
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /chatbot/test [get]
func (h *ChatbotHandler) Test(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Chatbot routes are working!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Chat godoc
// @Summary Ask the site assistant
// @Description Answers from OpenRouter with live site data, or from keyword rules when no key is configured in development
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Message and up to 6 prior turns"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /chatbot/chat [post]
func (h *ChatbotHandler) Chat(c *fiber.Ctx) error {
	var body ChatRequest
	if err := c.BodyParser(&body); err != nil {
		// An unparsable body leaves Message empty and is rejected below.
		log.Debug().Err(err).Interface("request_id", c.Locals("requestid")).Msg("malformed chat request body")
	}

	req := chatbot.Request{}
	if msg, ok := body.Message.(string); ok {
		req.Message = msg
	}
	// Malformed history is ignored rather than failing the turn.
	if len(body.History) > 0 {
		var history []chatbot.ChatMessage
		if err := json.Unmarshal(body.History, &history); err == nil {
			req.History = history
		}
	}

	res := h.dispatcher.Dispatch(c.UserContext(), req)
	status := res.Outcome.HTTPStatus()

	if res.Outcome.OK() {
		data := fiber.Map{
			"message":   res.Reply,
			"timestamp": res.Timestamp.Format(time.RFC3339Nano),
		}
		if res.Note != "" {
			data["note"] = res.Note
		}
		return c.Status(status).JSON(fiber.Map{
			"success": true,
			"data":    data,
		})
	}

	out := fiber.Map{
		"success": false,
		"message": res.Reply,
	}
	if res.Detail != "" {
		out["error"] = res.Detail
	}
	return c.Status(status).JSON(out)
}
