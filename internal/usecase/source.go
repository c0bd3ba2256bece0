package usecase

import (
	"context"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/match"
)

// SourceResult is one page's worth of parsed matches plus the number
// of rows the parser had to skip.
type SourceResult struct {
	Matches []match.Match
	Skipped int
}

// SourceGateway is the fixture/score feed consumed by the catalog and
// live services. Implemented by the BBC Sport scraper.
type SourceGateway interface {
	FetchFixtures(ctx context.Context, league, path string) (SourceResult, error)
	FetchLiveScores(ctx context.Context, league, path string) (SourceResult, error)
}
