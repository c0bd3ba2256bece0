package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"time"

	"github.com/MrG-Man/Acca-Tracker/internal/app"
	"github.com/MrG-Man/Acca-Tracker/internal/config"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/logging"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/resilience"
	"github.com/MrG-Man/Acca-Tracker/internal/usecase"
)

// sync refreshes the upcoming Saturday's selectable fixture catalog
// and stores it. Run once after midweek fixture announcements, or from
// cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger, app.Options{})
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	// The fetch path itself never retries, so a flaky Friday evening
	// on the source is absorbed here.
	var result usecase.CatalogResult
	err = resilience.Retry(ctx, resilience.RetryConfig{
		MaxAttempts:     3,
		InitialInterval: 5 * time.Second,
		MaxInterval:     time.Minute,
	}, func(ctx context.Context) error {
		var syncErr error
		result, syncErr = application.Catalog.SyncWeek(ctx)
		return syncErr
	})
	if err != nil {
		logger.Error("sync week", "error", err)
		os.Exit(1)
	}

	logger.Info("week synced",
		"saturday", result.Saturday,
		"matches", len(result.Matches),
		"failed_leagues", result.FailedLeagues,
		"stale_leagues", result.StaleLeagues,
		"skipped_rows", result.SkippedRows,
	)

	if len(result.FailedLeagues) > 0 {
		os.Exit(1)
	}
}
