package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOllamaClient_Defaults(t *testing.T) {
	client := NewOllamaClient(OllamaConfig{})

	assert.Equal(t, "http://localhost:11434", client.baseURL)
	assert.Equal(t, "llama3", client.completionModel)
	assert.Zero(t, client.httpClient.Timeout)
}

func TestOllamaGenerateCompletion_SendsSystemAndOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var body ollamaGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "mistral", body.Model)
		assert.Equal(t, "be kind", body.System)
		assert.Equal(t, "hello", body.Prompt)
		assert.False(t, body.Stream)
		require.NotNil(t, body.Options)
		assert.Equal(t, 0.5, body.Options.Temperature)
		assert.Equal(t, 0.95, body.Options.TopP)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaGenerateResponse{
			Response:        "  hi there  ",
			Done:            true,
			PromptEvalCount: 7,
			EvalCount:       3,
		})
	}))
	defer server.Close()

	client := NewOllamaClient(OllamaConfig{BaseURL: server.URL, Timeout: 5 * time.Second})
	resp, err := client.GenerateCompletion(context.Background(), CompletionRequest{
		System:      "be kind",
		Prompt:      "hello",
		Model:       "mistral",
		Temperature: 0.5,
		TopP:        0.95,
	})

	require.NoError(t, err)
	assert.Equal(t, "  hi there  ", resp.Text)
	assert.Equal(t, 10, resp.Usage.TotalTokens)
}

func TestOllamaGenerateCompletion_UsesDefaultModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body ollamaGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama3", body.Model)
		assert.Nil(t, body.Options)
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "ok", Done: true})
	}))
	defer server.Close()

	client := NewOllamaClient(OllamaConfig{BaseURL: server.URL})
	resp, err := client.GenerateCompletion(context.Background(), CompletionRequest{Prompt: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}

func TestOllamaGenerateCompletion_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("model not loaded"))
	}))
	defer server.Close()

	client := NewOllamaClient(OllamaConfig{BaseURL: server.URL})
	_, err := client.GenerateCompletion(context.Background(), CompletionRequest{Prompt: "hello"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestOllamaHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Expected path /api/tags, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewOllamaClient(OllamaConfig{BaseURL: server.URL})
	assert.NoError(t, client.Health(context.Background()))

	server.Close()
	assert.Error(t, client.Health(context.Background()))
}
