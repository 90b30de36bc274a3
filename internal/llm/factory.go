package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/studybuddy/internal/store"
)

// Options carries the runtime collaborators of NewProvider.
type Options struct {
	EventRepo     store.EventRepo // may be nil
	Logger        *slog.Logger    // default slog.Default()
	CaptureBodies bool
}

// NewProvider creates a Provider from configuration.
// Middleware order: caller → timeout → retry → logging → base, so every
// attempt is logged and the deadline covers all attempts.
func NewProvider(ctx context.Context, cfg Config, opts Options) (Provider, error) {
	base, err := newBaseProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, opts.EventRepo, WithLogger(opts.Logger), WithBodyCapture(opts.CaptureBodies))
	retried := WithRetry(logged, cfg.Retry)
	return WithTimeout(retried, cfg.Timeout), nil
}

func newBaseProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderGroq:
		return NewGroqProvider(cfg.Groq)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		return NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.Anthropic)
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
