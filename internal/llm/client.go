package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/rahul/gurukul/pkg/config"
)

// ErrUnavailable is returned by New when no API key is configured. Callers
// decide what degraded mode looks like: the RAG engine falls back to
// retrieval-only answers, the plan pipeline reports an error.
var ErrUnavailable = errors.New("llm: no api key configured")

// Client wraps a chat model with the call options fixed from config.
type Client struct {
	model       llms.Model
	temperature float64
	maxTokens   int
}

// New builds a client for the configured provider. DeepSeek is served
// through its OpenAI-compatible endpoint, so both providers use the same
// underlying langchaingo client.
func New(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrUnavailable
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s client: %w", cfg.Provider, err)
	}
	return FromModel(model, cfg.Temperature, cfg.MaxTokens), nil
}

// FromModel wraps an existing model. Tests use this with a stub.
func FromModel(model llms.Model, temperature float64, maxTokens int) *Client {
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	return &Client{model: model, temperature: temperature, maxTokens: maxTokens}
}

// Complete sends a single prompt and returns the text response.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("llm call failed: %w", err)
	}
	return resp, nil
}

// Model exposes the underlying model for components that speak langchaingo
// directly (the English assistant, the RAG engine).
func (c *Client) Model() llms.Model {
	return c.model
}
