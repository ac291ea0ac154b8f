package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	httputils "sitechat/sitechat/utils/http"
	"sitechat/sitechat/utils/logging"

	"go.uber.org/zap"
)

const openAIBaseURL = "https://api.openai.com/v1"

// GPTClient speaks the OpenAI chat completions protocol. Groq serves the
// same protocol under a different base URL.
type GPTClient struct {
	name      string
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

func NewGPTClient(apiKey string, opts ClientOptions) (*GPTClient, error) {
	return newCompatClient(ProviderOpenAI, openAIBaseURL, apiKey, opts)
}

func newCompatClient(name, defaultBase, apiKey string, opts ClientOptions) (*GPTClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrNotConfigured)
	}
	base := opts.BaseURL
	if base == "" {
		base = defaultBase
	}
	return &GPTClient{
		name:      name,
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(base, "/"),
		model:     opts.model(name),
		maxTokens: opts.MaxOutputTokens,
		client:    opts.httpClient(),
	}, nil
}

type gptChatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	Stream    bool      `json:"stream"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type gptResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type gptStreamResponse struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *GPTClient) request(prompt string, stream bool) gptChatRequest {
	return gptChatRequest{
		Model:     c.model,
		Messages:  []Message{{Role: "user", Content: prompt}},
		Stream:    stream,
		MaxTokens: c.maxTokens,
	}
}

// Generate executes a single completion request (non-streaming).
func (c *GPTClient) Generate(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, c.name+"_generate")()

	var parsed gptResponse
	err := httputils.PostJSON(ctx, c.client, c.baseURL+"/chat/completions", httputils.Bearer(c.apiKey), c.request(prompt, false), &parsed)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", c.name, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no content in %s response", c.name)
	}
	return parsed.Choices[0].Message.Content, nil
}

// GenerateStream reads the server-sent event stream of deltas.
func (c *GPTClient) GenerateStream(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	return pump(ctx, func(emit func(string) bool) error {
		defer logging.LogDuration(ctx, c.name+"_generate_stream")()

		body, err := httputils.PostStream(ctx, c.client, c.baseURL+"/chat/completions", httputils.Bearer(c.apiKey), c.request(prompt, true))
		if err != nil {
			return fmt.Errorf("%s stream request failed: %w", c.name, err)
		}
		defer body.Close()

		reader := bufio.NewReader(body)
		for {
			line, err := reader.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("%s stream read failed: %w", c.name, err)
			}
			eof := err != nil

			line = strings.TrimSpace(line)
			// skip comments and non-data lines
			if strings.HasPrefix(line, "data:") {
				data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
				if data == "[DONE]" {
					return nil
				}
				var chunk gptStreamResponse
				if err := json.Unmarshal([]byte(data), &chunk); err != nil {
					logging.ErrorLogger.Error(c.name+" stream JSON parse error",
						zap.Error(err), zap.String("raw_line", data))
				} else {
					for _, choice := range chunk.Choices {
						if choice.Delta.Content != "" && !emit(choice.Delta.Content) {
							return nil
						}
					}
				}
			}
			if eof {
				return nil
			}
		}
	})
}
