package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/api"
	"github.com/abhisek/studybuddy/internal/auth"
	"github.com/abhisek/studybuddy/internal/logger"
)

// requestSlack is added to the LLM timeout to bound an HTTP request.
const requestSlack = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the study material and login endpoints over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		log, closeLog, err := logger.Setup(cfg.Log.Logger())
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		gen, err := buildGenerator(ctx, cfg, st, log)
		if err != nil {
			return err
		}

		h := api.NewHandler(gen, auth.New(cfg.Auth), log)
		router := api.NewRouter(h, api.RouterOptions{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RequestTimeout: cfg.LLM.Timeout + requestSlack,
			Logger:         log,
		})

		log.Info("starting HTTP API",
			slog.String("addr", cfg.Server.Addr),
			slog.String("provider", cfg.LLM.Provider),
		)
		return api.Serve(ctx, cfg.Server.Addr, router, log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
