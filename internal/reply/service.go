package reply

import (
	"context"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/qolzam/telar/apps/reply-engine/internal/pkg/log"
)

// Generation parameters sent with every provider call.
const (
	DefaultModel = "gemini-2.5-flash"
	Temperature  = 0.5
	TopP         = 0.95
)

// Service drafts replies to customer emails through a completion model.
type Service struct {
	compClient     llms.Model
	model          string
	requestTimeout time.Duration
}

// Config holds reply service configuration
type Config struct {
	// Model is passed to the provider on every call. Defaults to DefaultModel.
	Model string
	// RequestTimeout bounds the provider call. Zero leaves it unbounded.
	RequestTimeout time.Duration
}

// NewService creates a new reply service around a shared, read-only completion client.
func NewService(compClient llms.Model, config Config) *Service {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	return &Service{
		compClient:     compClient,
		model:          config.Model,
		requestTimeout: config.RequestTimeout,
	}
}

// Model returns the model identifier sent to the provider.
func (s *Service) Model() string {
	return s.model
}

// GenerateReply validates the request, builds the prompts and returns the
// provider's text with surrounding whitespace removed.
func (s *Service) GenerateReply(ctx context.Context, req *Request) (string, error) {
	if err := Validate(req); err != nil {
		return "", NewError(CodeMissingRequiredData, "incomplete reply request", err)
	}

	bundle, err := renderPrompt(req)
	if err != nil {
		return "", NewError(CodePromptError, "failed to build prompt", err)
	}
	log.DebugWithContext(ctx, "Prompt bundle for tone %q", req.Tone)
	log.DebugStruct(bundle)

	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, bundle.SystemInstruction),
		llms.TextParts(llms.ChatMessageTypeHuman, bundle.UserPrompt),
	}

	resp, err := s.compClient.GenerateContent(ctx, messages,
		llms.WithModel(s.model),
		llms.WithTemperature(Temperature),
		llms.WithTopP(TopP),
	)
	if err != nil {
		return "", NewError(CodeProviderError, "llm client failed to generate reply", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", NewError(CodeProviderError, "llm client returned an empty response", ErrEmptyCompletion)
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
