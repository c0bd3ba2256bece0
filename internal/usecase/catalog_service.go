package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/match"
	"github.com/MrG-Man/Acca-Tracker/internal/domain/selection"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/cache"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/logging"
)

const defaultCatalogWorkers = 4

// CatalogResult is the selectable fixture list for one Saturday plus
// per-league failure detail. Partial success is the normal outcome
// when a league page is down.
type CatalogResult struct {
	Saturday      string
	Matches       []match.Match
	FailedLeagues []string
	StaleLeagues  []string
	SkippedRows   int
}

// CatalogService derives the weekly selectable fixture set: next
// Saturday's 15:00 kickoffs across the configured leagues, deduplicated
// and deterministically ordered.
type CatalogService struct {
	source      SourceGateway
	repo        selection.Repository
	locks       *selection.WeekLocks
	store       *cache.Store[SourceResult]
	leagues     map[string]string
	fixturesTTL time.Duration
	workers     int
	logger      *logging.Logger
	now         func() time.Time
}

func NewCatalogService(
	source SourceGateway,
	repo selection.Repository,
	locks *selection.WeekLocks,
	leagues map[string]string,
	fixturesTTL time.Duration,
	logger *logging.Logger,
) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = selection.NewWeekLocks()
	}

	return &CatalogService{
		source:      source,
		repo:        repo,
		locks:       locks,
		store:       cache.NewStore[SourceResult](),
		leagues:     leagues,
		fixturesTTL: fixturesTTL,
		workers:     defaultCatalogWorkers,
		logger:      logger,
		now:         time.Now,
	}
}

// NextSaturday returns the key of the week currently being planned:
// the first Saturday strictly after today.
func (s *CatalogService) NextSaturday() string {
	return match.NextSaturdayKey(s.now())
}

// ListSelectableFixtures fetches every configured league page, filters
// to 15:00 kickoffs and merges the results. A failing league is
// reported in FailedLeagues instead of aborting the whole list.
func (s *CatalogService) ListSelectableFixtures(ctx context.Context, saturday string) (CatalogResult, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.ListSelectableFixtures")
	defer span.End()

	if saturday == "" {
		saturday = s.NextSaturday()
	}
	if _, err := time.Parse(match.SaturdayFormat, saturday); err != nil {
		return CatalogResult{}, fmt.Errorf("%w: invalid saturday %q", ErrInvalidInput, saturday)
	}

	type leagueOutcome struct {
		league  string
		result  cache.Result[SourceResult]
		failed  bool
		fetches error
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return CatalogResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	outcomes := make([]leagueOutcome, 0, len(s.leagues))

	var workers sync.WaitGroup
	for league, path := range s.leagues {
		league, path := league, path
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			key := "fixtures:" + saturday + ":" + league
			res, fetchErr := s.store.GetOrFetch(ctx, key, s.fixturesTTL, func(ctx context.Context) (SourceResult, error) {
				return s.source.FetchFixtures(ctx, league, path)
			})

			mu.Lock()
			outcomes = append(outcomes, leagueOutcome{
				league:  league,
				result:  res,
				failed:  fetchErr != nil,
				fetches: fetchErr,
			})
			mu.Unlock()
		}); err != nil {
			workers.Done()
			mu.Lock()
			outcomes = append(outcomes, leagueOutcome{league: league, failed: true, fetches: err})
			mu.Unlock()
		}
	}
	workers.Wait()

	out := CatalogResult{Saturday: saturday}
	merged := make([]match.Match, 0, 32)
	for _, outcome := range outcomes {
		if outcome.failed {
			s.logger.WarnContext(ctx, "league fixtures unavailable",
				"league", outcome.league,
				"saturday", saturday,
				"error", outcome.fetches,
			)
			out.FailedLeagues = append(out.FailedLeagues, outcome.league)
			continue
		}
		if outcome.result.Stale {
			out.StaleLeagues = append(out.StaleLeagues, outcome.league)
		}
		out.SkippedRows += outcome.result.Value.Skipped
		merged = append(merged, match.FilterThreePM(outcome.result.Value.Matches)...)
	}
	sort.Strings(out.FailedLeagues)
	sort.Strings(out.StaleLeagues)

	merged = match.Dedupe(merged)
	match.SortForDisplay(merged)
	out.Matches = merged

	s.logger.InfoContext(ctx, "selectable fixtures computed",
		"saturday", saturday,
		"matches", len(out.Matches),
		"failed_leagues", len(out.FailedLeagues),
		"stale_leagues", len(out.StaleLeagues),
		"skipped_rows", out.SkippedRows,
	)

	return out, nil
}

// SyncWeek refreshes the upcoming week's catalog and persists it into
// the week state, creating the record on first sight of the Saturday.
func (s *CatalogService) SyncWeek(ctx context.Context) (CatalogResult, error) {
	ctx, span := startUsecaseSpan(ctx, "CatalogService.SyncWeek")
	defer span.End()

	saturday := s.NextSaturday()
	result, err := s.ListSelectableFixtures(ctx, saturday)
	if err != nil {
		return CatalogResult{}, err
	}

	lock := s.locks.Acquire(saturday)
	lock.Lock()
	defer lock.Unlock()

	now := s.now().UTC()
	state, ok, err := s.repo.Get(ctx, saturday)
	if err != nil {
		return CatalogResult{}, fmt.Errorf("load week state: %w", err)
	}
	if !ok {
		state = selection.NewWeekState(saturday, now)
	}

	state.Matches = result.Matches
	state.UpdatedAt = now
	if err := s.repo.Save(ctx, state); err != nil {
		return CatalogResult{}, fmt.Errorf("save week state: %w", err)
	}

	return result, nil
}
