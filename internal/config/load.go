package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abhisek/studybuddy/internal/auth"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// EnvPrefix is prepended to every environment override, e.g.
// STUDYBUDDY_LLM_PROVIDER or STUDYBUDDY_SERVER_ADDR.
const EnvPrefix = "STUDYBUDDY"

// Load reads configuration. Values come from, in increasing priority:
// built-in defaults, a YAML file, and STUDYBUDDY_* environment variables.
// Provider API keys are then discovered from their conventional variables
// when unset.
//
// An explicit path must exist. With an empty path the file at DefaultPath
// is read when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path == "" {
		if p, err := DefaultPath(); err == nil {
			if _, statErr := os.Stat(p); statErr == nil {
				path = p
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.LLM = llm.Discover(cfg.LLM)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "warning" {
		cfg.Log.Level = "warn"
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/studybuddy/config.yaml, or
// ~/.config/studybuddy/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "studybuddy", "config.yaml"), nil
}

// Validate runs struct validation over cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are static values of the right types.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	l := llm.DefaultConfig()
	v.SetDefault("llm.provider", l.Provider)
	v.SetDefault("llm.timeout", l.Timeout)
	v.SetDefault("llm.groq.api_key", "")
	v.SetDefault("llm.groq.model", l.Groq.Model)
	v.SetDefault("llm.groq.base_url", l.Groq.BaseURL)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", l.OpenAI.BaseURL)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", l.OpenRouter.BaseURL)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)

	s := studygen.DefaultConfig()
	v.SetDefault("study.question_count", s.QuestionCount)
	v.SetDefault("study.flashcard_count", s.FlashcardCount)
	v.SetDefault("study.max_items", s.MaxItems)
	v.SetDefault("study.max_tokens", s.MaxTokens)
	v.SetDefault("study.temperature", s.Temperature)
	v.SetDefault("study.native_schema", s.NativeSchema)

	a := auth.DefaultConfig()
	v.SetDefault("auth.enabled", a.Enabled)
	v.SetDefault("auth.username", a.Username)
	v.SetDefault("auth.password_digest", a.PasswordDigest)

	v.SetDefault("store.path", "")
	v.SetDefault("store.disabled", false)
	v.SetDefault("store.capture_bodies", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.allowed_origins", []string{})
}
