// Command archive runs the football archive batch jobs.
//
// Usage:
//
//	archive enrich names --limit 200
//	archive import squad --file export.csv --season 2024-25 --league "Ligue 1" --club Nice
//	archive report unresolved
//	archive rank goals --competition "World Cup" --edition 2022
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/football-archive/pipeline/internal/app"
	"github.com/football-archive/pipeline/internal/config"
)

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "archive",
		Short:         "Football archive data pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(enrichCmd())
	root.AddCommand(importCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(rankCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run loads config, starts telemetry and builds the services, then hands
// them to fn under a context cancelled by SIGINT or SIGTERM.
func run(fn func(ctx context.Context, a *app.App) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(cfg)
	defer func() { _ = logger.Sync() }()

	shutdown, err := app.StartTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	a, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	start := time.Now()
	err = fn(ctx, a)
	logger.Debug("command finished", "duration", time.Since(start).Round(time.Millisecond), "error", err)
	return err
}
