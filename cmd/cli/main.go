package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/bayescalc/cmd/cli/calc"
	"github.com/myrjola/bayescalc/cmd/cli/lr"
	"github.com/myrjola/bayescalc/cmd/cli/tmpl"
	"github.com/myrjola/bayescalc/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bayescalc-cli",
		Long:          `Command line utilities for the Bayesian evidence calculator https://github.com/myrjola/bayescalc`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		name, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err //nolint:wrapcheck // cobra error is descriptive
		}
		level, err := logging.ParseLevel(name)
		if err != nil {
			return err //nolint:wrapcheck // already annotated
		}
		logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			AddSource:   false,
			Level:       level,
			ReplaceAttr: nil,
		})))
		cmd.SetContext(calc.WithLogger(cmd.Context(), logger))
		return nil
	}

	rootCmd.AddGroup(calc.Group, tmpl.Group, lr.Group)
	rootCmd.AddCommand(calc.NewUpdate(), calc.NewInterpret(), tmpl.NewTemplates(), lr.NewLR())
	return rootCmd
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
