package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/match"
	"github.com/MrG-Man/Acca-Tracker/internal/domain/selection"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/cache"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/logging"
)

const defaultLiveWorkers = 4

// LiveMatchState is one selector's leg as of the latest poll.
type LiveMatchState struct {
	Selector     string
	HasSelection bool
	Match        match.Match
	Leg          string
	Stale        bool
	FetchFailed  bool
}

// TrackerSnapshot is the whole accumulator picture for one Saturday:
// every panel selector's leg plus the aggregate verdict.
type TrackerSnapshot struct {
	Saturday   string
	Complete   bool
	Legs       []LiveMatchState
	Verdict    string
	BothScored int
	Missed     int
	PolledAt   time.Time
}

// LiveService recomputes the accumulator state from live league pages.
// Both-teams-scored is derived from current scores on every poll, never
// accumulated, so a corrected score corrects the leg.
type LiveService struct {
	source  SourceGateway
	repo    selection.Repository
	locks   *selection.WeekLocks
	store   *cache.Store[SourceResult]
	leagues map[string]string
	liveTTL time.Duration
	panel   []string
	workers int
	logger  *logging.Logger
	now     func() time.Time
}

func NewLiveService(
	source SourceGateway,
	repo selection.Repository,
	locks *selection.WeekLocks,
	leagues map[string]string,
	liveTTL time.Duration,
	panel []string,
	logger *logging.Logger,
) *LiveService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = selection.NewWeekLocks()
	}
	if len(panel) == 0 {
		panel = selection.DefaultSelectors
	}

	return &LiveService{
		source:  source,
		repo:    repo,
		locks:   locks,
		store:   cache.NewStore[SourceResult](),
		leagues: leagues,
		liveTTL: liveTTL,
		panel:   append([]string(nil), panel...),
		workers: defaultLiveWorkers,
		logger:  logger,
		now:     time.Now,
	}
}

type leagueScores struct {
	byID   map[string]match.Match
	stale  bool
	failed bool
}

// fetchLive polls every league that has at least one assignment and
// indexes the parsed matches by identity. One league failing marks its
// legs, not the snapshot.
func (s *LiveService) fetchLive(ctx context.Context, saturday string, leagues []string) map[string]leagueScores {
	var mu sync.Mutex
	out := make(map[string]leagueScores, len(leagues))

	workers := pool.New().WithMaxGoroutines(s.workers)
	for _, league := range leagues {
		league := league
		workers.Go(func() {
			path, known := s.leagues[league]
			if !known {
				mu.Lock()
				out[league] = leagueScores{failed: true}
				mu.Unlock()
				return
			}

			key := "live:" + saturday + ":" + league
			res, err := s.store.GetOrFetch(ctx, key, s.liveTTL, func(ctx context.Context) (SourceResult, error) {
				return s.source.FetchLiveScores(ctx, league, path)
			})

			scores := leagueScores{byID: make(map[string]match.Match)}
			if err != nil {
				s.logger.WarnContext(ctx, "live scores unavailable",
					"league", league,
					"saturday", saturday,
					"error", err,
				)
				scores.failed = true
			} else {
				scores.stale = res.Stale
				for _, m := range res.Value.Matches {
					scores.byID[m.ID()] = m
				}
			}

			mu.Lock()
			out[league] = scores
			mu.Unlock()
		})
	}
	workers.Wait()

	return out
}

// Snapshot polls live scores for every assigned league and classifies
// all eight legs. Selectors without an assignment appear with a
// no-selection placeholder so the panel always renders in full.
func (s *LiveService) Snapshot(ctx context.Context, saturday string) (TrackerSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "LiveService.Snapshot")
	defer span.End()

	state, ok, err := s.repo.Get(ctx, saturday)
	if err != nil {
		return TrackerSnapshot{}, fmt.Errorf("load week state: %w", err)
	}
	if !ok {
		return TrackerSnapshot{}, fmt.Errorf("%w: week %s", ErrNotFound, saturday)
	}

	leagueSet := make(map[string]struct{})
	for _, assignment := range state.Assignments {
		leagueSet[assignment.Match.League] = struct{}{}
	}
	leagues := make([]string, 0, len(leagueSet))
	for league := range leagueSet {
		leagues = append(leagues, league)
	}
	sort.Strings(leagues)

	scores := s.fetchLive(ctx, saturday, leagues)

	snapshot := TrackerSnapshot{
		Saturday: saturday,
		Complete: state.IsComplete(),
		Legs:     make([]LiveMatchState, 0, len(s.panel)),
		PolledAt: s.now().UTC(),
	}

	verdictLegs := make([]string, 0, len(state.Assignments))
	for _, selector := range s.panel {
		assignment, assigned := state.Assignments[selector]
		if !assigned {
			snapshot.Legs = append(snapshot.Legs, LiveMatchState{
				Selector: selector,
				Match:    match.Match{Status: match.StatusNoSelection},
			})
			continue
		}

		leg := LiveMatchState{
			Selector:     selector,
			HasSelection: true,
			Match:        assignment.Match,
		}

		league := scores[assignment.Match.League]
		switch {
		case league.failed:
			leg.FetchFailed = true
			leg.Match.Status = match.StatusError
		default:
			leg.Stale = league.stale
			if live, found := league.byID[assignment.MatchID]; found {
				leg.Match.Status = live.Status
				leg.Match.HomeScore = live.HomeScore
				leg.Match.AwayScore = live.AwayScore
				leg.Match.MatchTime = live.MatchTime
			}
		}

		// A leg we cannot read counts as still waiting, never as a miss.
		if leg.FetchFailed {
			leg.Leg = match.LegAwaitingGoals
		} else {
			leg.Leg = match.ClassifyLeg(leg.Match.Status, leg.Match.HomeScore, leg.Match.AwayScore)
		}

		switch leg.Leg {
		case match.LegBothScored:
			snapshot.BothScored++
		case match.LegNoBTTS:
			snapshot.Missed++
		}

		verdictLegs = append(verdictLegs, leg.Leg)
		snapshot.Legs = append(snapshot.Legs, leg)
	}

	snapshot.Verdict = match.Verdict(verdictLegs)

	s.logger.InfoContext(ctx, "accumulator snapshot computed",
		"saturday", saturday,
		"verdict", snapshot.Verdict,
		"both_scored", snapshot.BothScored,
		"missed", snapshot.Missed,
	)

	return snapshot, nil
}

// SyncScores writes the latest polled scores back into the stored
// assignments so finished weeks keep their results after the league
// pages roll over.
func (s *LiveService) SyncScores(ctx context.Context, saturday string) (TrackerSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "LiveService.SyncScores")
	defer span.End()

	snapshot, err := s.Snapshot(ctx, saturday)
	if err != nil {
		return TrackerSnapshot{}, err
	}

	lock := s.locks.Acquire(saturday)
	lock.Lock()
	defer lock.Unlock()

	state, ok, err := s.repo.Get(ctx, saturday)
	if err != nil {
		return TrackerSnapshot{}, fmt.Errorf("load week state: %w", err)
	}
	if !ok {
		return TrackerSnapshot{}, fmt.Errorf("%w: week %s", ErrNotFound, saturday)
	}

	changed := false
	for _, leg := range snapshot.Legs {
		if !leg.HasSelection || leg.FetchFailed {
			continue
		}
		assignment, assigned := state.Assignments[leg.Selector]
		if !assigned {
			continue
		}
		if assignment.Match.Status == leg.Match.Status &&
			assignment.Match.HomeScore == leg.Match.HomeScore &&
			assignment.Match.AwayScore == leg.Match.AwayScore {
			continue
		}
		assignment.Match.Status = leg.Match.Status
		assignment.Match.HomeScore = leg.Match.HomeScore
		assignment.Match.AwayScore = leg.Match.AwayScore
		assignment.Match.MatchTime = leg.Match.MatchTime
		state.Assignments[leg.Selector] = assignment
		changed = true
	}

	if changed {
		state.UpdatedAt = s.now().UTC()
		if err := s.repo.Save(ctx, state); err != nil {
			return TrackerSnapshot{}, fmt.Errorf("save week state: %w", err)
		}
	}

	return snapshot, nil
}
