package llm

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// CompletionModel adapts a CompletionClient to the LangChainGo llms.Model interface.
// System messages become the request's system prompt; everything else is joined
// into the user prompt. Model, temperature, top-p and max tokens are taken from
// the call options.
type CompletionModel struct {
	client CompletionClient
}

// Ensure CompletionModel implements llms.Model
var _ llms.Model = (*CompletionModel)(nil)

// NewCompletionModel creates a new adapter around client
func NewCompletionModel(client CompletionClient) *CompletionModel {
	return &CompletionModel{client: client}
}

// Call implements the deprecated Call method for backwards compatibility
func (a *CompletionModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, a, prompt, options...)
}

// GenerateContent implements the main LangChainGo interface
func (a *CompletionModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	var system, prompt []string
	for _, msg := range messages {
		for _, part := range msg.Parts {
			textPart, ok := part.(llms.TextContent)
			if !ok {
				continue
			}
			if msg.Role == llms.ChatMessageTypeSystem {
				system = append(system, textPart.Text)
			} else {
				prompt = append(prompt, textPart.Text)
			}
		}
	}

	response, err := a.client.GenerateCompletion(ctx, CompletionRequest{
		System:      strings.Join(system, "\n"),
		Prompt:      strings.Join(prompt, "\n"),
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
	})
	if err != nil {
		return nil, err
	}

	choice := &llms.ContentChoice{
		Content: response.Text,
	}
	if response.Usage != nil {
		choice.GenerationInfo = map[string]any{
			"PromptTokens":     response.Usage.PromptTokens,
			"CompletionTokens": response.Usage.CompletionTokens,
			"TotalTokens":      response.Usage.TotalTokens,
		}
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{choice},
	}, nil
}

// Health reports the wrapped client's health.
func (a *CompletionModel) Health(ctx context.Context) error {
	return a.client.Health(ctx)
}
