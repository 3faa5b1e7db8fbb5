package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by SOCRATAI_LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the backend that writes quiz questions.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for compatible gateways
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// OnRetry, when set, is called before each backoff sleep with the
	// 1-based number of the attempt that failed.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// DefaultConfig returns the configuration used when nothing is set.
// Question sets are large, so the timeout is generous.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  AnthropicConfig{Model: "claude-haiku-4-5"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-2.0-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001", BaseURL: "https://openrouter.ai/api/v1"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from SOCRATAI_* variables. The plain
// vendor key variables (GEMINI_API_KEY and friends) are used when the
// prefixed ones are unset.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&cfg.Provider, "SOCRATAI_LLM_PROVIDER")

	set(&cfg.Anthropic.APIKey, "SOCRATAI_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "SOCRATAI_ANTHROPIC_MODEL")

	set(&cfg.OpenAI.APIKey, "SOCRATAI_OPENAI_API_KEY", "OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "SOCRATAI_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "SOCRATAI_OPENAI_BASE_URL")

	set(&cfg.Gemini.APIKey, "SOCRATAI_GEMINI_API_KEY", "GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "SOCRATAI_GEMINI_MODEL")

	set(&cfg.OpenRouter.APIKey, "SOCRATAI_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "SOCRATAI_OPENROUTER_MODEL")

	if v := os.Getenv("SOCRATAI_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "SOCRATAI_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "SOCRATAI_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "SOCRATAI_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "SOCRATAI_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
