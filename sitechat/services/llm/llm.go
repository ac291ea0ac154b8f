// sitechat/services/llm/llm.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"sitechat/sitechat/config"
)

// ErrNotConfigured is returned when the selected provider has no credential.
var ErrNotConfigured = errors.New("language model is not configured")

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
	ProviderOllama = "ollama"
)

var defaultModels = map[string]string{
	ProviderGemini: "gemini-2.0-flash",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderGroq:   "llama-3.1-8b-instant",
	ProviderOllama: "llama3:8b",
}

// Generator turns one prompt into one completion.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StreamGenerator also yields the completion incrementally. The chunk channel
// is closed when the stream ends; the error channel then carries at most one
// error and is closed.
type StreamGenerator interface {
	Generator
	GenerateStream(ctx context.Context, prompt string) (<-chan string, <-chan error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ClientOptions are shared by every provider. Zero values select the
// provider defaults.
type ClientOptions struct {
	Model           string
	BaseURL         string
	HTTPClient      *http.Client
	MaxOutputTokens int
}

func (o ClientOptions) model(provider string) string {
	if o.Model != "" {
		return o.Model
	}
	return defaultModels[provider]
}

func (o ClientOptions) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return http.DefaultClient
}

// New builds the generator selected by cfg.LLMProvider. A provider without
// its credential yields ErrNotConfigured.
func New(ctx context.Context, cfg config.Config) (Generator, error) {
	opts := ClientOptions{Model: cfg.LLMModel, MaxOutputTokens: cfg.LLMMaxOutputTokens}

	var (
		gen Generator
		err error
	)
	switch cfg.LLMProvider {
	case ProviderGemini, "":
		var c *GeminiClient
		if c, err = NewGeminiClient(ctx, cfg.GeminiAPIKey, opts); err == nil {
			gen = c
		}
	case ProviderOpenAI:
		var c *GPTClient
		if c, err = NewGPTClient(cfg.OpenAIAPIKey, opts); err == nil {
			gen = c
		}
	case ProviderGroq:
		var c *GPTClient
		if c, err = NewGroqClient(cfg.GroqAPIKey, opts); err == nil {
			gen = c
		}
	case ProviderOllama:
		opts.BaseURL = cfg.OllamaURL
		gen = NewOllamaClient(opts)
	default:
		err = fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// pump runs produce on its own goroutine and exposes its output as a
// stream. emit reports false once ctx is done.
func pump(ctx context.Context, produce func(emit func(string) bool) error) (<-chan string, <-chan error) {
	ch := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer close(ch)

		err := produce(func(chunk string) bool {
			select {
			case ch <- chunk:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			errCh <- err
		}
	}()

	return ch, errCh
}
