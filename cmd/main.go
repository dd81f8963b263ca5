package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/spf13/cobra"

	"certsale/internal/config"
)

// exitError carries the process exit code out of a command.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

// main loads the configuration and dispatches to the serve, migrate or
// seed command. Running without a command serves.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stdout).With(slog.String("env", cfg.Env))
	slog.SetDefault(logger)

	root := newRootCmd(cfg, logger)
	if err := root.ExecuteContext(context.Background()); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config, logger *slog.Logger) *cobra.Command {
	var seed bool
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the campaign HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg, logger, seed)
		},
	}
	serve.Flags().BoolVar(&seed, "seed", false, "create demo campaigns before serving")

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL schema migrations",
		RunE: func(*cobra.Command, []string) error {
			return runMigrate(cfg, logger)
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo campaigns in the configured storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), cfg, logger)
		},
	}

	root := &cobra.Command{
		Use:           "certsale",
		Short:         "Certificate sale campaigns with escrow, refunds and distributions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())
	root.AddCommand(serve, migrate, seedCmd)
	return root
}

func signalExit(sig os.Signal) error {
	if s, ok := sig.(syscall.Signal); ok {
		return exitError{code: 128 + int(s)}
	}
	return nil
}
