// Package main is the maintenance CLI for the Self Focus backend.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/self-focus/backend/config"
	"github.com/self-focus/backend/internal/infra/db"
	"github.com/self-focus/backend/internal/infra/dependency"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:           "selffocus",
	Short:         "Self Focus maintenance commands",
	Long:          "Run maintenance jobs against the Self Focus database: streak recomputation, ledger export and email delivery.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := slog.LevelWarn
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %s\n", err)
		os.Exit(1)
	}
}

// withInjector opens the configured database and hands a fully wired injector
// to fn. Commands run with in-process locks.
func withInjector(ctx context.Context, fn func(ctx context.Context, inj *dependency.Injector) error) error {
	cfg := config.Load()

	database, err := db.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Warn("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	inj, err := dependency.NewInjector(cfg, database.DB(), dependency.Options{
		DBHealthCheck: database.HealthCheck,
	})
	if err != nil {
		return err
	}
	return fn(ctx, inj)
}
