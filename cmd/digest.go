package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/studybuddy/internal/auth"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print a password digest for auth.password_digest",
	Long: "Reads a password from stdin and prints its SHA-256 hex digest, or a bcrypt hash\n" +
		"with --bcrypt. Put the output in auth.password_digest.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return errors.New("password must not be empty")
		}

		useBcrypt, _ := cmd.Flags().GetBool("bcrypt")
		if !useBcrypt {
			fmt.Fprintln(cmd.OutOrStdout(), auth.Digest(password))
			return nil
		}

		cost, _ := cmd.Flags().GetInt("cost")
		hash, err := auth.BcryptDigest(password, cost)
		if err != nil {
			return fmt.Errorf("bcrypt: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	digestCmd.Flags().Bool("bcrypt", false, "Emit a bcrypt hash instead of SHA-256")
	digestCmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost")
}
