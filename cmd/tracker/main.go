package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrG-Man/Acca-Tracker/internal/app"
	"github.com/MrG-Man/Acca-Tracker/internal/config"
	"github.com/MrG-Man/Acca-Tracker/internal/observability"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/logging"
)

// tracker polls live scores for the upcoming Saturday on a fixed
// interval and persists results as matches finish.
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

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init profiler", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("profiler shutdown failed", "error", err)
		}
	}()

	application, err := app.New(ctx, cfg, logger, app.Options{})
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	saturday := application.Catalog.NextSaturday()
	logger.Info("tracker starting",
		"saturday", saturday,
		"poll_interval", cfg.PollInterval.String(),
	)

	poll := func() {
		snapshot, err := application.Live.SyncScores(ctx, saturday)
		if err != nil {
			logger.ErrorContext(ctx, "poll failed", "saturday", saturday, "error", err)
			return
		}
		logger.InfoContext(ctx, "poll complete",
			"saturday", snapshot.Saturday,
			"verdict", snapshot.Verdict,
			"both_scored", snapshot.BothScored,
			"missed", snapshot.Missed,
		)
	}

	poll()
	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("tracker stopped")
			return
		case <-ticker.C:
			poll()
		}
	}
}
