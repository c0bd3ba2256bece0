package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/MrG-Man/Acca-Tracker/external/bbc"
	"github.com/MrG-Man/Acca-Tracker/internal/config"
	"github.com/MrG-Man/Acca-Tracker/internal/domain/selection"
	"github.com/MrG-Man/Acca-Tracker/internal/infrastructure/repository/memory"
	"github.com/MrG-Man/Acca-Tracker/internal/infrastructure/repository/postgres"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/logging"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/resilience"
	"github.com/MrG-Man/Acca-Tracker/internal/usecase"
)

// App wires the tracker's services from configuration: one source
// client shared by catalog and live polling, one week repository, the
// four services on top.
type App struct {
	Config config.Config
	Logger *logging.Logger

	WeekRepo selection.Repository

	Catalog   *usecase.CatalogService
	Ledger    *usecase.LedgerService
	Live      *usecase.LiveService
	Standings *usecase.StandingsService

	db *sqlx.DB
}

// Options tune construction. InMemory skips the database entirely,
// which is how tests and one-shot CLI invocations run.
type Options struct {
	InMemory   bool
	HTTPClient *http.Client
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{Config: cfg, Logger: logger}

	if opts.InMemory || cfg.DBURL == "" {
		a.WeekRepo = memory.NewWeekRepository()
	} else {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := openDatabase(connectCtx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.db = db
		a.WeekRepo = postgres.NewWeekRepository(db)
	}

	client := bbc.NewClient(bbc.ClientConfig{
		HTTPClient:     opts.HTTPClient,
		BaseURL:        cfg.SourceBaseURL,
		UserAgent:      cfg.SourceUserAgent,
		Timeout:        cfg.SourceTimeout,
		RateInterval:   cfg.SourceRateInterval,
		Logger:         logger,
		CircuitEnabled: cfg.SourceCircuitEnabled,
		CircuitBreaker: resilience.BreakerConfig{
			FailureThreshold: cfg.SourceCircuitFailures,
			OpenTimeout:      cfg.SourceCircuitOpenTimeout,
			HalfOpenMaxProbe: cfg.SourceCircuitMaxProbe,
		},
	})
	gateway := bbc.NewGateway(client)

	// One lock set per repository: catalog sync, assignment mutations
	// and score sync all rewrite the same week documents.
	locks := selection.NewWeekLocks()

	a.Catalog = usecase.NewCatalogService(gateway, a.WeekRepo, locks, cfg.SourceLeaguePaths, cfg.FixturesCacheTTL, logger)

	ledger, err := usecase.NewLedgerService(a.WeekRepo, locks, cfg.Selectors, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build ledger: %w", err)
	}
	a.Ledger = ledger

	a.Live = usecase.NewLiveService(gateway, a.WeekRepo, locks, cfg.SourceLeaguePaths, cfg.LiveCacheTTL, ledger.Panel(), logger)
	a.Standings = usecase.NewStandingsService(a.WeekRepo, ledger.Panel(), logger)

	return a, nil
}

func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Warn("close database", "error", err)
		}
	}
}
