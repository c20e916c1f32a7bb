package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

type GroqClient struct {
	apiKey          string
	baseURL         string
	httpClient      *http.Client
	completionModel string
}

var _ CompletionClient = (*GroqClient)(nil)

// GroqConfig contains Groq client configuration
type GroqConfig struct {
	APIKey          string
	BaseURL         string
	CompletionModel string
	Timeout         time.Duration
}

// NewGroqClient creates a new client for interacting with the Groq API.
func NewGroqClient(config GroqConfig) (*GroqClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Groq API key is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultGroqBaseURL
	}
	if config.CompletionModel == "" {
		config.CompletionModel = "llama3-8b-8192"
	}

	return &GroqClient{
		apiKey:          config.APIKey,
		baseURL:         config.BaseURL,
		httpClient:      &http.Client{Timeout: config.Timeout},
		completionModel: config.CompletionModel,
	}, nil
}

// Groq API request/response structures (OpenAI compatible)
type groqCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqCompletionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Usage *Usage `json:"usage,omitempty"`
}

// GenerateCompletion sends a prompt to the Groq API and gets a completion.
func (c *GroqClient) GenerateCompletion(ctx context.Context, creq CompletionRequest) (*CompletionResponse, error) {
	apiURL := c.baseURL + "/chat/completions"

	model := creq.Model
	if model == "" {
		model = c.completionModel
	}

	messages := make([]message, 0, 2)
	if creq.System != "" {
		messages = append(messages, message{Role: "system", Content: creq.System})
	}
	messages = append(messages, message{Role: "user", Content: creq.Prompt})

	reqBody := groqCompletionRequest{
		Model:     model,
		Messages:  messages,
		Stream:    false,
		MaxTokens: creq.MaxTokens,
	}
	if creq.Temperature != 0 {
		reqBody.Temperature = &creq.Temperature
	}
	if creq.TopP != 0 {
		reqBody.TopP = &creq.TopP
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal groq request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create groq request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to groq: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("groq API returned status %d: %s", resp.StatusCode, string(body))
	}

	var groqResp groqCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&groqResp); err != nil {
		return nil, fmt.Errorf("failed to decode groq response: %w", err)
	}

	if len(groqResp.Choices) == 0 {
		return nil, fmt.Errorf("received no choices from groq")
	}

	return &CompletionResponse{
		Text:  groqResp.Choices[0].Message.Content,
		Usage: groqResp.Usage,
	}, nil
}

// Health checks Groq service availability by listing models.
func (c *GroqClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return fmt.Errorf("failed to create groq health check request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("groq service health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("groq service not healthy, status: %d", resp.StatusCode)
	}
	return nil
}
