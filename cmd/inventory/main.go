// Package main runs the interactive inventory terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/inventory/internal/app"
	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/pkg/bootstrap"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
}

// run loads the configuration and the inventory, then serves the console on stdin and stdout.
func run(ctx context.Context) error {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}

	logOut, closeLog, err := bootstrap.OpenLogOutput(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to open log output: %w", err)
	}
	defer func() { _ = closeLog() }()

	logger := bootstrap.NewLogger(cfg.Log.Level, cfg.Log.Format, logOut)
	slog.SetDefault(logger)
	logger.Debug("Configuration loaded", "config", cfg.String())

	deps, err := app.SetupDependencies(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up inventory: %w", err)
	}

	h := app.SetupConsole(deps, cfg, os.Stdin, os.Stdout)
	if err := h.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("console failed: %w", err)
	}
	logger.Info("Inventory terminal stopped")
	return nil
}
