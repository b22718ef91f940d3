// Package app contains the application setup for the inventory terminal.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/internal/money"
	"github.com/abgdnv/inventory/internal/service"
	"github.com/abgdnv/inventory/internal/store"
	"github.com/abgdnv/inventory/internal/transport/console"
)

type Dependencies struct {
	ProductService service.ProductService
	Prices         *money.Formatter
	Logger         *slog.Logger
}

// SetupDependencies builds the service over the configured inventory file and loads it.
func SetupDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	prices, err := money.NewFormatter(cfg.Display.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to create price formatter: %w", err)
	}

	pService := service.NewService(store.NewInventory(), cfg.Inventory.File, logger)
	if err := pService.Load(ctx); err != nil {
		return nil, err
	}

	return &Dependencies{
		ProductService: pService,
		Prices:         prices,
		Logger:         logger,
	}, nil
}

// SetupConsole creates the operator console on top of the dependencies.
func SetupConsole(deps *Dependencies, cfg *config.Config, in io.Reader, out io.Writer) *console.Handler {
	return console.NewHandler(deps.ProductService, deps.Prices, in, out, console.Options{Color: cfg.Display.Color}, deps.Logger)
}
