package api

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/qolzam/telar/apps/reply-engine/internal/middleware/requestid"
	"github.com/qolzam/telar/apps/reply-engine/internal/pkg/log"
	"github.com/qolzam/telar/apps/reply-engine/internal/reply"
)

// ReplyGenerator drafts a reply for a customer email.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, req *reply.Request) (string, error)
}

type Handler struct {
	replies  ReplyGenerator
	provider string
	model    string
}

// HandlerConfig describes the provider in use, for the health endpoint.
type HandlerConfig struct {
	Provider string
	Model    string
}

func NewHandler(replies ReplyGenerator, config HandlerConfig) *Handler {
	return &Handler{
		replies:  replies,
		provider: config.Provider,
		model:    config.Model,
	}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
	Model    string            `json:"model,omitempty"`
}

// GenerateReply handles POST /api/generate-reply.
func (h *Handler) GenerateReply(c *fiber.Ctx) error {
	ctx := requestid.Context(c)

	// Bodies that are empty or not JSON decode as an empty request and fail validation below.
	var req reply.Request
	if c.Is("json") && len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.WarnWithContext(ctx, "Invalid generate-reply payload: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(reply.ErrorResponse{Error: MsgInvalidPayload})
		}
	}

	text, err := h.replies.GenerateReply(ctx, &req)
	if err != nil {
		return HandleServiceError(ctx, c, err)
	}

	return c.JSON(reply.Response{Reply: text})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	response := HealthResponse{
		Status: "healthy",
		Services: map[string]string{
			"api": "healthy",
			"llm": h.provider,
		},
		Model: h.model,
	}

	return c.JSON(response)
}
