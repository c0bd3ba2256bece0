package bbc

import (
	"testing"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/match"
)

const fixturesPage = `<html><body>
<section class="ssrcss-1abc-StyledSection">
  <div class="ssrcss-2def-FixtureRow">
    Arsenal versus Chelsea, kick off 15:00
    <time class="ssrcss-3ghi-StyledTime">15:00</time>
    <span class="ssrcss-4jkl-StyledVenue">Emirates Stadium</span>
  </div>
  <div class="ssrcss-2def-FixtureRow">
    Leeds United versus Hull City, kick off 12:30
    <time class="ssrcss-3ghi-StyledTime">12:30</time>
  </div>
  <div class="ssrcss-2def-FixtureRow">
    Burnley versus Preston North End
  </div>
  <div class="ssrcss-2def-FixtureRow">
    X versus Y, kick off 15:00
  </div>
  <div class="ssrcss-5mno-Advert">Read more about the title race</div>
</section>
</body></html>`

func TestParseFixtures(t *testing.T) {
	t.Parallel()

	res, err := ParseFixtures([]byte(fixturesPage), "English Championship")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d: %+v", len(res.Matches), res.Matches)
	}

	byHome := make(map[string]match.Match, len(res.Matches))
	for _, m := range res.Matches {
		byHome[m.HomeTeam] = m
		if m.League != "English Championship" {
			t.Fatalf("unexpected league %q", m.League)
		}
		if m.Status != match.StatusNotStarted {
			t.Fatalf("fixtures must start not_started, got %q", m.Status)
		}
	}

	arsenal, ok := byHome["Arsenal"]
	if !ok {
		t.Fatalf("missing Arsenal fixture: %+v", res.Matches)
	}
	if arsenal.AwayTeam != "Chelsea" || arsenal.Kickoff != "15:00" || arsenal.Venue != "Emirates Stadium" {
		t.Fatalf("unexpected fixture: %+v", arsenal)
	}

	leeds := byHome["Leeds United"]
	if leeds.Kickoff != "12:30" {
		t.Fatalf("expected 12:30 kickoff, got %q", leeds.Kickoff)
	}

	// No time element and no kickoff text: kept with unknown kickoff.
	burnley, ok := byHome["Burnley"]
	if !ok {
		t.Fatalf("fixture without kickoff must still be parsed: %+v", res.Matches)
	}
	if burnley.Kickoff != "" {
		t.Fatalf("expected unknown kickoff, got %q", burnley.Kickoff)
	}

	// Single-letter team names fail validation and count as skipped.
	if res.Skipped == 0 {
		t.Fatal("expected the malformed row to be counted as skipped")
	}
}

func TestParseFixtures_DeduplicatesNestedContainers(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<div class="ssrcss-outer-Wrapper">
  <div class="ssrcss-inner-FixtureRow">
    Everton versus Liverpool, kick off 15:00
    <time class="ssrcss-t-StyledTime">15:00</time>
  </div>
</div>
</body></html>`

	res, err := ParseFixtures([]byte(page), "Premier League")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("expected nested duplicates collapsed to 1, got %d", len(res.Matches))
	}
}

func TestParseFixtures_EmptyDocument(t *testing.T) {
	t.Parallel()

	res, err := ParseFixtures([]byte("<html><body><p>No games today</p></body></html>"), "Premier League")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 0 || res.Skipped != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

const liveScoresPage = `<html><body>
<ul class="ssrcss-1xyz-StyledList">
  <li class="ssrcss-2abc-MatchRow" aria-label="Arsenal 2, Chelsea 1">
    <span class="ssrcss-3d-StyledProgress">65 mins</span>
  </li>
  <li class="ssrcss-2abc-MatchRow" aria-label="Fulham 0, Brentford 0">
    <span class="ssrcss-3d-StyledProgress">HT</span>
  </li>
  <li class="ssrcss-2abc-MatchRow" aria-label="Newcastle United 3, Sunderland 2">
    <span class="ssrcss-3d-StyledProgress">FT</span>
  </li>
  <li class="ssrcss-2abc-MatchRow" aria-label="Wolves 0, Aston Villa 0">
  </li>
</ul>
</body></html>`

func TestParseLiveScores(t *testing.T) {
	t.Parallel()

	res, err := ParseLiveScores([]byte(liveScoresPage), "Premier League")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 4 {
		t.Fatalf("expected 4 matches, got %d: %+v", len(res.Matches), res.Matches)
	}

	byHome := make(map[string]match.Match, len(res.Matches))
	for _, m := range res.Matches {
		byHome[m.HomeTeam] = m
	}

	arsenal := byHome["Arsenal"]
	if arsenal.Status != match.StatusLive || arsenal.HomeScore != 2 || arsenal.AwayScore != 1 {
		t.Fatalf("unexpected live row: %+v", arsenal)
	}
	if arsenal.MatchTime != "65'" {
		t.Fatalf("expected elapsed 65', got %q", arsenal.MatchTime)
	}

	fulham := byHome["Fulham"]
	if fulham.Status != match.StatusHalfTime {
		t.Fatalf("expected half_time, got %q", fulham.Status)
	}

	newcastle := byHome["Newcastle United"]
	if newcastle.Status != match.StatusFinished || newcastle.HomeScore != 3 || newcastle.AwayScore != 2 {
		t.Fatalf("unexpected finished row: %+v", newcastle)
	}

	wolves := byHome["Wolves"]
	if wolves.Status != match.StatusNotStarted {
		t.Fatalf("expected not_started for row without progress text, got %q", wolves.Status)
	}
}

func TestParseLiveScores_SkipsMalformedLabels(t *testing.T) {
	t.Parallel()

	page := `<html><body>
<li class="ssrcss-2abc-MatchRow" aria-label="Match postponed"></li>
<li class="ssrcss-2abc-MatchRow" aria-label="Arsenal 1, Chelsea 1">
  <span class="ssrcss-3d-StyledProgress">12 mins</span>
</li>
</body></html>`

	res, err := ParseLiveScores([]byte(page), "Premier League")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(res.Matches))
	}
	if res.Skipped != 1 {
		t.Fatalf("expected 1 skipped row, got %d", res.Skipped)
	}
}
