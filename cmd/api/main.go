// Reply Engine - drafts customer support email replies with a generative model
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qolzam/telar/apps/reply-engine/internal/api"
	"github.com/qolzam/telar/apps/reply-engine/internal/config"
	"github.com/qolzam/telar/apps/reply-engine/internal/pkg/log"
	"github.com/qolzam/telar/apps/reply-engine/internal/platform/llm"
	"github.com/qolzam/telar/apps/reply-engine/internal/reply"
)

const (
	serviceName    = "reply-engine"
	serviceVersion = "v1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}
	log.SetDebug(cfg.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var completionClient llm.CompletionClient
	model := reply.DefaultModel

	log.Info("Initializing completion client with provider: %s", cfg.LLM.Provider)
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		geminiClient, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:          cfg.LLM.APIKey,
			CompletionModel: model,
		})
		if err != nil {
			log.Fatal("Failed to create Gemini completion client: %v", err)
		}
		defer geminiClient.Close()
		completionClient = geminiClient
	case config.ProviderGroq:
		groqClient, err := llm.NewGroqClient(llm.GroqConfig{
			APIKey:          cfg.LLM.GroqAPIKey,
			CompletionModel: cfg.LLM.GroqModel,
		})
		if err != nil {
			log.Fatal("Failed to create Groq completion client: %v", err)
		}
		completionClient = groqClient
		model = cfg.LLM.GroqModel
	case config.ProviderOllama:
		completionClient = llm.NewOllamaClient(llm.OllamaConfig{
			BaseURL:         cfg.LLM.OllamaBaseURL,
			CompletionModel: cfg.LLM.OllamaModel,
		})
		model = cfg.LLM.OllamaModel
	default:
		log.Fatal("Invalid LLM_PROVIDER specified: %s (supported: gemini, ollama, groq)", cfg.LLM.Provider)
	}

	completionModel := llm.NewCompletionModel(completionClient)
	healthCtx, healthCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := completionModel.Health(healthCtx); err != nil {
		log.Warn("%s health check failed: %v", cfg.LLM.Provider, err)
		log.Warn("Continuing startup, but reply generation may not work properly")
	}
	healthCancel()
	log.Info("✓ Completion provider: %s (model: %s)", cfg.LLM.Provider, model)

	if cfg.LLM.RequestTimeout == 0 {
		log.Warn("LLM_REQUEST_TIMEOUT is not set, provider calls are not time-bounded")
	}

	replyService := reply.NewService(completionModel, reply.Config{
		Model:          model,
		RequestTimeout: cfg.LLM.RequestTimeout,
	})

	handler := api.NewHandler(replyService, api.HandlerConfig{
		Provider: cfg.LLM.Provider,
		Model:    model,
	})
	app := api.Router(handler, api.RouterConfig{
		AppName:      fmt.Sprintf("%s %s", serviceName, serviceVersion),
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	go func() {
		log.Info("Starting %s %s on %s", serviceName, serviceVersion, cfg.Server.Addr())
		log.Info("Backend server is now running with AI capabilities on http://localhost:%s", cfg.Server.Port)

		if err := app.Listen(cfg.Server.Addr()); err != nil {
			log.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
