package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/match"
	"github.com/MrG-Man/Acca-Tracker/internal/domain/selection"
	"github.com/MrG-Man/Acca-Tracker/internal/platform/logging"
)

// Season scoring per finished leg.
const (
	PointsBTTS      = 3
	PointsOneScored = 0
	PointsNoGoals   = -3
)

// HistoricalSeedPoints carries forward the running totals from before
// results were tracked here.
var HistoricalSeedPoints = map[string]int{
	"Eamonn Bone": 27,
	"Fran Radar":  21,
	"Glynny":      21,
	"Mickey D":    21,
	"Rob Carney":  21,
	"Steve H":     18,
	"Danny":       18,
	"Eddie Lee":   6,
}

// StandingsRow is one selector's season tally.
type StandingsRow struct {
	Selector string
	Points   int
	Weeks    int
	Landed   int
	Missed   int
}

// StandingsService folds every stored week's finished legs into a
// season table. Unfinished matches score nothing until they finish.
type StandingsService struct {
	repo   selection.Repository
	panel  []string
	seeds  map[string]int
	logger *logging.Logger
}

func NewStandingsService(repo selection.Repository, panel []string, logger *logging.Logger) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	if len(panel) == 0 {
		panel = selection.DefaultSelectors
	}

	return &StandingsService{
		repo:   repo,
		panel:  append([]string(nil), panel...),
		seeds:  HistoricalSeedPoints,
		logger: logger,
	}
}

func legPoints(m match.Match) int {
	switch {
	case match.BTTS(m.HomeScore, m.AwayScore):
		return PointsBTTS
	case m.HomeScore > 0 || m.AwayScore > 0:
		return PointsOneScored
	default:
		return PointsNoGoals
	}
}

// Standings returns the season table, highest points first, ties broken
// by name.
func (s *StandingsService) Standings(ctx context.Context) ([]StandingsRow, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.Standings")
	defer span.End()

	rows := make(map[string]*StandingsRow, len(s.panel))
	for _, selector := range s.panel {
		rows[selector] = &StandingsRow{Selector: selector, Points: s.seeds[selector]}
	}

	saturdays, err := s.repo.ListSaturdays(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}

	for _, saturday := range saturdays {
		state, ok, err := s.repo.Get(ctx, saturday)
		if err != nil {
			return nil, fmt.Errorf("load week %s: %w", saturday, err)
		}
		if !ok {
			continue
		}

		for selector, assignment := range state.Assignments {
			row, onPanel := rows[selector]
			if !onPanel {
				continue
			}
			if !match.IsFinishedStatus(assignment.Match.Status) {
				continue
			}

			points := legPoints(assignment.Match)
			row.Points += points
			row.Weeks++
			switch points {
			case PointsBTTS:
				row.Landed++
			case PointsNoGoals:
				row.Missed++
			}
		}
	}

	out := make([]StandingsRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Selector < out[j].Selector
	})

	s.logger.DebugContext(ctx, "standings computed", "weeks", len(saturdays), "rows", len(out))

	return out, nil
}
