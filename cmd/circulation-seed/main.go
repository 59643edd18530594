// Command circulation-seed fills an empty library with a sample catalog and approved patrons.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	ctx := context.Background()

	engine, closeEngine, err := config.OpenEngine(ctx, cfg, sqlengine.WithLogger(logger))
	if err != nil {
		logger.Error("failed to open the ledger", "error", err)
		os.Exit(1)
	}
	defer closeEngine()

	result, err := newSeeder(engine, engine, cfg.Policy, logger).Seed(ctx)
	if err != nil {
		logger.Error("seeding failed", "error", err)
		closeEngine()
		os.Exit(1) //nolint:gocritic // the engine is closed above
	}

	logger.Info("library seeded",
		"titles_added", result.TitlesAdded,
		"patrons_added", result.PatronsAdded,
	)
}
