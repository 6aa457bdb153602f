package generator

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"quizforge/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// LLMClient is the narrow port the generators call. Wrapping langchaingo
// behind it keeps prompt/parse logic testable without a live provider.
type LLMClient interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

type langchainClient struct {
	model       llms.Model
	temperature float64
}

// NewLLMClient builds the configured provider: "openai" for the hosted API,
// "ollama" for a local server.
func NewLLMClient(cfg config.LLMConfig) (LLMClient, error) {
	var model llms.Model
	var err error

	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai api key is not configured")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.Model),
		)
	case "ollama":
		httpClient := &http.Client{Timeout: 60 * time.Second}
		model, err = ollama.New(
			ollama.WithServerURL(cfg.OllamaServer),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	return &langchainClient{model: model, temperature: cfg.Temperature}, nil
}

func (c *langchainClient) Invoke(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(c.temperature))
}
