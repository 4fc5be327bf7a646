package llm

import (
	"fmt"
	"os"
	"time"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Config selects and configures a provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "openrouter", "gemini"
	// or "mock".
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	OpenRouter ProviderConfig
	Gemini     ProviderConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// ProviderConfig holds credentials for one backend. BaseURL is only used
// by OpenAI-compatible backends.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig targets Anthropic's small model, which is what the
// recommendation reasons were originally phrased with.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		OpenRouter: ProviderConfig{Model: "anthropic/claude-3.5-haiku", BaseURL: defaultOpenRouterBaseURL},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv overlays SKILLMAP_* environment variables on the
// defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setIf(&cfg.Provider, "SKILLMAP_LLM_PROVIDER")
	setIf(&cfg.Anthropic.APIKey, "SKILLMAP_ANTHROPIC_API_KEY")
	setIf(&cfg.Anthropic.Model, "SKILLMAP_ANTHROPIC_MODEL")
	setIf(&cfg.OpenAI.APIKey, "SKILLMAP_OPENAI_API_KEY")
	setIf(&cfg.OpenAI.Model, "SKILLMAP_OPENAI_MODEL")
	setIf(&cfg.OpenAI.BaseURL, "SKILLMAP_OPENAI_BASE_URL")
	setIf(&cfg.OpenRouter.APIKey, "SKILLMAP_OPENROUTER_API_KEY")
	setIf(&cfg.OpenRouter.Model, "SKILLMAP_OPENROUTER_MODEL")
	setIf(&cfg.Gemini.APIKey, "SKILLMAP_GEMINI_API_KEY")
	setIf(&cfg.Gemini.Model, "SKILLMAP_GEMINI_MODEL")

	if v := os.Getenv("SKILLMAP_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}

	// Fall back to the vendor's own variable when no SKILLMAP_ key is set.
	if cfg.Anthropic.APIKey == "" {
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	return cfg
}

func setIf(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "SKILLMAP_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "SKILLMAP_OPENAI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "SKILLMAP_OPENROUTER_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "SKILLMAP_GEMINI_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
