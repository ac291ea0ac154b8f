package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	LogDir string

	LLMProvider        string
	LLMModel           string
	LLMTimeout         time.Duration
	LLMMaxOutputTokens int
	GeminiAPIKey       string
	OpenAIAPIKey       string
	GroqAPIKey         string
	OllamaURL          string

	ExtractTimeout  time.Duration
	ExtractorConfig string
	ScrapeParallel  int

	RequestTimeout time.Duration
	AllowedOrigins []string
	ChatRateLimit  float64
	ChatRateBurst  int
	// TrustProxy honours X-Forwarded-For/X-Real-IP for client addresses.
	TrustProxy bool
}

// LoadConfig reads the process environment, after loading a .env file from
// the working directory when one exists.
func LoadConfig() Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	return Config{
		Port:   getEnv("PORT", "8000"),
		LogDir: getEnv("LOG_DIR", "./logs"),

		LLMProvider:        strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:           getEnv("LLM_MODEL", ""),
		LLMTimeout:         getDuration("LLM_TIMEOUT", 60*time.Second),
		LLMMaxOutputTokens: getInt("LLM_MAX_OUTPUT_TOKENS", 0),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		GroqAPIKey:         getEnv("GROQ_API_KEY", ""),
		OllamaURL:          getEnv("OLLAMA_URL", "http://localhost:11434/api"),

		ExtractTimeout:  getDuration("EXTRACT_TIMEOUT", 15*time.Second),
		ExtractorConfig: getEnv("EXTRACTOR_CONFIG", ""),
		ScrapeParallel:  getInt("SCRAPE_PARALLEL", 4),

		RequestTimeout: getDuration("REQUEST_TIMEOUT", 90*time.Second),
		AllowedOrigins: getList("ALLOWED_ORIGINS", []string{"*"}),
		ChatRateLimit:  getFloat("CHAT_RATE_LIMIT", 5),
		ChatRateBurst:  getInt("CHAT_RATE_BURST", 10),
		TrustProxy:     getBool("TRUST_PROXY", false),
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

func getFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return f
}

func getList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
