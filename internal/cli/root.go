// Package cli implements the mailforge command tree.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailforge/internal/config"
)

const defaultEnvFile = ".env"

type globalFlags struct {
	configFile string
	envFile    string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}
	var cfg *config.Config

	root := &cobra.Command{
		Use:   "mailforge",
		Short: "Compose, preview and send welcome emails",
		Long: `mailforge renders a welcome email from a fixed template or from an
ordered list of content blocks and delivers it through Resend.

Example:
  mailforge serve                              # HTTP API on :8080
  mailforge render --username Ada -o out.html  # write the preview HTML
  mailforge send --to ada@example.com --username Ada`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnvFile(flags.envFile, cmd.Flags().Changed("env-file")); err != nil {
				return err
			}
			loaded, err := config.Load(flags.configFile)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", defaultEnvFile, "dotenv file loaded before config")

	current := func() *config.Config { return cfg }
	root.AddCommand(
		newServeCommand(current),
		newRenderCommand(current),
		newSendCommand(current),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadEnvFile loads path without overriding variables already set.
// A missing file is only an error when the flag was given explicitly.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
