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

// OllamaClient talks to a local Ollama server.
type OllamaClient struct {
	baseURL         string
	httpClient      *http.Client
	completionModel string
}

var _ CompletionClient = (*OllamaClient)(nil)

// OllamaConfig contains Ollama client configuration
type OllamaConfig struct {
	BaseURL         string
	CompletionModel string
	Timeout         time.Duration
}

// NewOllamaClient creates a new Ollama client with sensible defaults
func NewOllamaClient(config OllamaConfig) *OllamaClient {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434"
	}
	if config.CompletionModel == "" {
		config.CompletionModel = "llama3"
	}

	// Timeout zero keeps the http.Client unbounded; callers bound requests by context.
	return &OllamaClient{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		completionModel: config.CompletionModel,
	}
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

// GenerateCompletion generates text completions from prompts
func (c *OllamaClient) GenerateCompletion(ctx context.Context, creq CompletionRequest) (*CompletionResponse, error) {
	url := fmt.Sprintf("%s/api/generate", c.baseURL)

	model := creq.Model
	if model == "" {
		model = c.completionModel
	}

	reqBody := ollamaGenerateRequest{
		Model:  model,
		Prompt: creq.Prompt,
		System: creq.System,
		Stream: false,
	}
	if creq.Temperature != 0 || creq.TopP != 0 || creq.MaxTokens != 0 {
		reqBody.Options = &ollamaOptions{
			Temperature: creq.Temperature,
			TopP:        creq.TopP,
			NumPredict:  creq.MaxTokens,
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama service is not available - please ensure ollama is running at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("failed to decode ollama response: %w", err)
	}

	return &CompletionResponse{
		Text: genResp.Response,
		Usage: &Usage{
			PromptTokens:     genResp.PromptEvalCount,
			CompletionTokens: genResp.EvalCount,
			TotalTokens:      genResp.PromptEvalCount + genResp.EvalCount,
		},
	}, nil
}

// Health checks Ollama service availability
func (c *OllamaClient) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/tags", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama service is not available at %s - please ensure ollama is running: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama service not healthy at %s, status: %d", c.baseURL, resp.StatusCode)
	}

	return nil
}
