package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiClient talks to the Google Generative Language API.
type GeminiClient struct {
	client          *genai.Client
	completionModel string
}

var _ CompletionClient = (*GeminiClient)(nil)

// GeminiConfig contains Gemini client configuration
type GeminiConfig struct {
	APIKey          string
	CompletionModel string
	// HTTPClient replaces the default transport when set.
	HTTPClient *http.Client
}

// NewGeminiClient creates a Gemini client. It is safe for concurrent use and
// is meant to be created once per process.
func NewGeminiClient(ctx context.Context, config GeminiConfig) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if config.CompletionModel == "" {
		config.CompletionModel = defaultGeminiModel
	}

	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(config.HTTPClient))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:          client,
		completionModel: config.CompletionModel,
	}, nil
}

// GenerateCompletion sends the prompt as a single user turn. Only the sampling
// values present in creq are set; everything else is left to the API defaults.
func (c *GeminiClient) GenerateCompletion(ctx context.Context, creq CompletionRequest) (*CompletionResponse, error) {
	name := creq.Model
	if name == "" {
		name = c.completionModel
	}

	model := c.client.GenerativeModel(name)
	if creq.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(creq.System)}}
	}
	if creq.Temperature != 0 {
		model.SetTemperature(float32(creq.Temperature))
	}
	if creq.TopP != 0 {
		model.SetTopP(float32(creq.TopP))
	}
	if creq.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(creq.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(creq.Prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("received no candidates from gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	result := &CompletionResponse{Text: text.String()}
	if usage := resp.UsageMetadata; usage != nil {
		result.Usage = &Usage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}
	return result, nil
}

// Health checks that the configured model is reachable.
func (c *GeminiClient) Health(ctx context.Context) error {
	if _, err := c.client.GenerativeModel(c.completionModel).Info(ctx); err != nil {
		return fmt.Errorf("gemini service health check failed: %w", err)
	}
	return nil
}

// Close releases the underlying connections.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
