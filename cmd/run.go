package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/app"
	"github.com/abhisek/studybuddy/internal/auth"
	"github.com/abhisek/studybuddy/internal/config"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// runApp loads config, opens the store, builds the generator, and launches the TUI.
// stdout belongs to the terminal, so logs go to a file.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logCfg := cfg.Log.Logger()
	if logCfg.File == "" {
		p, err := logger.DefaultLogPath()
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
		logCfg.File = p
	}
	log, closeLog, err := logger.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closeLog()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	if err := cfg.LLM.Validate(); err != nil {
		log.Warn("LLM provider not configured, generation will fail", slog.String("error", err.Error()))
	}
	gen := &lazyGenerator{build: func(ctx context.Context) (studygen.Generator, error) {
		return buildGenerator(ctx, cfg, st, log)
	}}

	opts := app.Options{Generator: gen, Logger: log}
	if cfg.Auth.Enabled {
		opts.Gate = auth.New(cfg.Auth)
	}

	log.Info("starting terminal UI", slog.String("provider", cfg.LLM.Provider))
	return app.Run(ctx, opts)
}

// buildGenerator creates the LLM provider and wraps it in a study material
// generator. st may be nil, in which case LLM calls are not recorded.
func buildGenerator(ctx context.Context, cfg *config.Config, st *store.Store, log *slog.Logger) (*studygen.LLMGenerator, error) {
	if err := cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	opts := llm.Options{Logger: log, CaptureBodies: cfg.Store.CaptureBodies}
	if st != nil {
		opts.EventRepo = st.EventRepo()
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, opts)
	if err != nil {
		return nil, err
	}
	return studygen.New(provider, cfg.Study), nil
}

// lazyGenerator builds the provider on the first non-empty request, so the
// terminal UI starts without an API key and reports the problem on the
// note input screen instead.
type lazyGenerator struct {
	build func(ctx context.Context) (studygen.Generator, error)

	once sync.Once
	gen  studygen.Generator
	err  error
}

func (g *lazyGenerator) Generate(ctx context.Context, notes string) (*studygen.Materials, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, studygen.ErrEmptyNotes
	}
	g.once.Do(func() { g.gen, g.err = g.build(ctx) })
	if g.err != nil {
		return nil, &studygen.GenerationError{Stage: studygen.StageRequest, Err: g.err}
	}
	return g.gen.Generate(ctx, notes)
}
