package llm

import (
	"context"
	"errors"
	"fmt"

	"sitechat/sitechat/utils/logging"

	"google.golang.org/genai"
)

// GeminiClient calls the Gemini API through the genai SDK.
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int
}

func NewGeminiClient(ctx context.Context, apiKey string, opts ClientOptions) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrNotConfigured)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  opts.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		client:    client,
		model:     opts.model(ProviderGemini),
		maxTokens: opts.MaxOutputTokens,
	}, nil
}

// generateConfig is built per call; the SDK fills defaults into it.
func (c *GeminiClient) generateConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if c.maxTokens > 0 {
		cfg.MaxOutputTokens = int32(c.maxTokens)
	}
	return cfg
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "gemini_generate")()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.generateConfig())
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned no content")
	}
	return text, nil
}

func (c *GeminiClient) GenerateStream(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	return pump(ctx, func(emit func(string) bool) error {
		defer logging.LogDuration(ctx, "gemini_generate_stream")()

		for resp, err := range c.client.Models.GenerateContentStream(ctx, c.model, genai.Text(prompt), c.generateConfig()) {
			if err != nil {
				return fmt.Errorf("gemini stream failed: %w", err)
			}
			if text := resp.Text(); text != "" && !emit(text) {
				return nil
			}
		}
		return nil
	})
}
