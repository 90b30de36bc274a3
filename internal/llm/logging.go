package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/studybuddy/internal/store"
)

// LoggingProvider is a decorator that writes one log line per LLM request
// and records it as an event in the store.
type LoggingProvider struct {
	inner         Provider
	eventRepo     store.EventRepo
	logger        *slog.Logger
	captureBodies bool
}

// LoggingOption configures a LoggingProvider.
type LoggingOption func(*LoggingProvider)

// WithLogger sets the slog logger. Default: slog.Default().
func WithLogger(l *slog.Logger) LoggingOption {
	return func(p *LoggingProvider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithBodyCapture stores prompt and completion text alongside the
// request metadata. Off by default because notes can be private.
func WithBodyCapture(enabled bool) LoggingOption {
	return func(p *LoggingProvider) { p.captureBodies = enabled }
}

// WithLogging wraps a Provider with event logging. repo may be nil, in
// which case only the log line is written.
func WithLogging(p Provider, repo store.EventRepo, opts ...LoggingOption) Provider {
	lp := &LoggingProvider{inner: p, eventRepo: repo, logger: slog.Default()}
	for _, o := range opts {
		o(lp)
	}
	return lp
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.inner.Name(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		SessionID: SessionIDFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if l.captureBodies {
		data.RequestBody = serializeRequest(req)
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		if l.captureBodies {
			data.ResponseBody = string(resp.Content)
		}
	}

	attrs := []any{
		slog.String("provider", data.Provider),
		slog.String("model", data.Model),
		slog.String("purpose", data.Purpose),
		slog.Int64("latency_ms", data.LatencyMs),
		slog.Int("input_tokens", data.InputTokens),
		slog.Int("output_tokens", data.OutputTokens),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.ErrorContext(ctx, "llm request failed", append(attrs, slog.Any("error", err))...)
	} else {
		l.logger.InfoContext(ctx, "llm request", attrs...)
	}

	if l.eventRepo != nil {
		// Use a detached context so a timed-out request is still recorded.
		logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		if logErr := l.eventRepo.AppendLLMRequest(logCtx, data); logErr != nil {
			l.logger.WarnContext(ctx, "failed to record LLM request event", slog.Any("error", logErr))
		}
		cancel()
	}

	return resp, err
}

func (l *LoggingProvider) Name() string {
	return l.inner.Name()
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(def)
			b.WriteString("\n")
		}
	}

	return b.String()
}
