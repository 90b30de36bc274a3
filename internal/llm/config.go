package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use. Empty means "pick the
	// first provider with an API key", see Discover.
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=groq openai openrouter anthropic gemini mock"`

	Groq       GroqConfig       `mapstructure:"groq"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds a single generation (including retries). Default: 60s.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// GroqConfig holds Groq-specific configuration. Groq serves an
// OpenAI-compatible chat completions API.
type GroqConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "llama-3.3-70b-versatile"
	BaseURL string `mapstructure:"base_url"` // Default: "https://api.groq.com/openai/v1"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `mapstructure:"base_url"` // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "meta-llama/llama-3.3-70b-instruct"
	BaseURL string `mapstructure:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "claude-haiku"
	BaseURL string `mapstructure:"base_url"` // Optional. Override for proxies.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"` // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 (the default) disables retries: a failed generation is
// reported to the user, who decides whether to try again.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"gte=0"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Groq: GroqConfig{
			Model:   "llama-3.3-70b-versatile",
			BaseURL: defaultGroqBaseURL,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model:   "meta-llama/llama-3.3-70b-instruct",
			BaseURL: defaultOpenRouterBaseURL,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// Discover fills empty API keys from the vendors' standard environment
// variables and, when no provider is selected, picks the first provider
// whose key is available (Groq → OpenAI → Anthropic → Gemini → OpenRouter).
// With no key anywhere the provider defaults to Groq so Validate can
// report which variable is missing.
func Discover(cfg Config) Config {
	fill := func(dst *string, env string) {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
	}
	fill(&cfg.Groq.APIKey, "GROQ_API_KEY")
	fill(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	fill(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	fill(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	fill(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")

	if cfg.Provider != "" {
		return cfg
	}

	switch {
	case cfg.Groq.APIKey != "":
		cfg.Provider = ProviderGroq
	case cfg.OpenAI.APIKey != "":
		cfg.Provider = ProviderOpenAI
	case cfg.Anthropic.APIKey != "":
		cfg.Provider = ProviderAnthropic
	case cfg.Gemini.APIKey != "":
		cfg.Provider = ProviderGemini
	case cfg.OpenRouter.APIKey != "":
		cfg.Provider = ProviderOpenRouter
	default:
		cfg.Provider = ProviderGroq
	}
	return cfg
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGroq:
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY (or STUDYBUDDY_LLM_GROQ_API_KEY) is required for the groq provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY (or STUDYBUDDY_LLM_OPENAI_API_KEY) is required for the openai provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY (or STUDYBUDDY_LLM_OPENROUTER_API_KEY) is required for the openrouter provider")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY (or STUDYBUDDY_LLM_ANTHROPIC_API_KEY) is required for the anthropic provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY (or STUDYBUDDY_LLM_GEMINI_API_KEY) is required for the gemini provider")
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
