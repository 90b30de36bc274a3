package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/studygen"
)

var generateCmd = &cobra.Command{
	Use:   "generate [file|-]",
	Short: "Generate questions and flashcards from notes and print them as JSON",
	Long: "Reads notes from the named file, or from stdin when the argument is \"-\" or omitted,\n" +
		"and prints the generated study materials as JSON.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, closeLog, err := logger.Setup(cfg.Log.Logger())
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}
		defer closeLog()

		notes, err := readNotes(cmd, args)
		if err != nil {
			return err
		}

		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		ctx := cmd.Context()
		gen, err := buildGenerator(ctx, cfg, st, log)
		if err != nil {
			return err
		}

		ctx = llm.WithSessionID(ctx, "cli")
		materials, err := gen.Generate(ctx, notes)
		if err != nil {
			log.Error("generation failed", slog.String("error", err.Error()))
			return errors.New(studygen.UserFacing(err))
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(materials)
	},
}

func readNotes(cmd *cobra.Command, args []string) (string, error) {
	var (
		b   []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read notes: %w", err)
	}
	return string(b), nil
}
