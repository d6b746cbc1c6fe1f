// Package openai implements port.AnalysisProvider on the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"getgsa/internal/analyzer"
	"getgsa/internal/config"
	"getgsa/internal/port"
)

const maxTokens = 4096

func init() {
	analyzer.RegisterProvider("openai", func(cfg *config.AnalyzerConfig) (port.AnalysisProvider, error) {
		return NewProvider(cfg), nil
	})
}

// Provider implements port.AnalysisProvider using the OpenAI API.
type Provider struct {
	client *goopenai.Client
	model  string
}

// NewProvider creates an OpenAI-backed provider from the analyzer config.
func NewProvider(cfg *config.AnalyzerConfig) *Provider {
	return newProvider(cfg, "")
}

// NewProviderWithEndpoint creates a provider pointing at a custom API base
// URL (for testing).
func NewProviderWithEndpoint(cfg *config.AnalyzerConfig, baseURL string) *Provider {
	return newProvider(cfg, baseURL)
}

func newProvider(cfg *config.AnalyzerConfig, baseURL string) *Provider {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Provider{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

func (p *Provider) Name() string { return "openai" }

func (p *Provider) Model() string { return p.model }

// Complete sends one JSON-mode chat completion and returns the message body.
func (p *Provider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   maxTokens,
		Temperature: 0.1,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429 {
			return "", analyzer.NewRateLimitError("openai", err, 0)
		}
		return "", fmt.Errorf("creating chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return resp.Choices[0].Message.Content, nil
}
