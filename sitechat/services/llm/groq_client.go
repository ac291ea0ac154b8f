// sitechat/services/llm/groq_client.go
package llm

// Groq’s OpenAI-compatible base path.
const groqBaseURL = "https://api.groq.com/openai/v1"

// NewGroqClient returns a chat completions client pointing at Groq.
func NewGroqClient(apiKey string, opts ClientOptions) (*GPTClient, error) {
	return newCompatClient(ProviderGroq, groqBaseURL, apiKey, opts)
}
