package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	httputils "sitechat/sitechat/utils/http"
	"sitechat/sitechat/utils/logging"
)

const ollamaBaseURL = "http://localhost:11434/api"

// OllamaClient talks to a local Ollama server. It needs no credential.
type OllamaClient struct {
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

func NewOllamaClient(opts ClientOptions) *OllamaClient {
	base := opts.BaseURL
	if base == "" {
		base = ollamaBaseURL
	}
	return &OllamaClient{
		baseURL:   strings.TrimRight(base, "/"),
		model:     opts.model(ProviderOllama),
		maxTokens: opts.MaxOutputTokens,
		client:    opts.httpClient(),
	}
}

type ChatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type ChatResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

func (c *OllamaClient) request(prompt string, stream bool) ChatRequest {
	req := ChatRequest{
		Model:    c.model,
		Messages: []Message{{Role: "user", Content: prompt}},
		Stream:   stream,
	}
	if c.maxTokens > 0 {
		req.Options = map[string]any{"num_predict": c.maxTokens}
	}
	return req
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "ollama_generate")()

	var resp ChatResponse
	if err := httputils.PostJSON(ctx, c.client, c.baseURL+"/chat", nil, c.request(prompt, false), &resp); err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	if resp.Message.Content == "" {
		return "", errors.New("ollama returned no content")
	}
	return resp.Message.Content, nil
}

// GenerateStream decodes the newline-delimited JSON chunks Ollama streams.
func (c *OllamaClient) GenerateStream(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	return pump(ctx, func(emit func(string) bool) error {
		defer logging.LogDuration(ctx, "ollama_generate_stream")()

		body, err := httputils.PostStream(ctx, c.client, c.baseURL+"/chat", nil, c.request(prompt, true))
		if err != nil {
			return fmt.Errorf("ollama stream request failed: %w", err)
		}
		defer body.Close()

		decoder := json.NewDecoder(body)
		for {
			var chunk ChatResponse
			if err := decoder.Decode(&chunk); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return fmt.Errorf("ollama stream decode failed: %w", err)
			}
			if chunk.Message.Content != "" && !emit(chunk.Message.Content) {
				return nil
			}
			if chunk.Done {
				return nil
			}
		}
	})
}
