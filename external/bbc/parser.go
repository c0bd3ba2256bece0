package bbc

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/match"
)

// ParseResult carries the matches extracted from one page plus the
// count of fixture rows that could not be parsed. Partial results are
// the normal outcome for this markup, not an error.
type ParseResult struct {
	Matches []match.Match
	Skipped int
}

var (
	versusWithKickoff = regexp.MustCompile(`(?i)(.{2,50}?)\s+versus\s+(.{2,50}?)[,.]?\s+kick[- ]?off\s+(\d{1,2}:\d{2})`)
	versusBare        = regexp.MustCompile(`(?i)^(.{2,50}?)\s+versus\s+(.{2,50}?)[,.]?$`)
	scoreLabel        = regexp.MustCompile(`^(.{2,50}?)\s+(\d+),\s+(.{2,50}?)\s+(\d+)\.?$`)
	elapsedMinutes    = regexp.MustCompile(`^(\d{1,3})\s*(?:mins?|')$`)
)

// ParseFixtures extracts upcoming fixtures from a scores-fixtures
// page. Rows without a recognizable kickoff keep an empty kickoff
// rather than aborting the page; rows without team names are skipped
// and counted.
func ParseFixtures(raw []byte, league string) (ParseResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return ParseResult{}, errors.Wrap(err, "parse fixtures document")
	}

	var out ParseResult
	seen := make(map[string]struct{})

	fixtureContainers(doc).Each(func(_ int, s *goquery.Selection) {
		m, ok := parseFixtureRow(s, league)
		if !ok {
			if looksLikeFixtureRow(s) {
				out.Skipped++
			}
			return
		}

		key := m.ID() + "_" + m.Kickoff
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out.Matches = append(out.Matches, m)
	})

	return out, nil
}

// ParseLiveScores extracts in-play and finished matches with their
// scores and status from a scores-fixtures page.
func ParseLiveScores(raw []byte, league string) (ParseResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return ParseResult{}, errors.Wrap(err, "parse live scores document")
	}

	var out ParseResult
	seen := make(map[string]struct{})

	fixtureContainers(doc).Each(func(_ int, s *goquery.Selection) {
		m, ok := parseLiveRow(s, league)
		if !ok {
			if looksLikeScoreRow(s) {
				out.Skipped++
			}
			return
		}

		if _, dup := seen[m.ID()]; dup {
			return
		}
		seen[m.ID()] = struct{}{}
		out.Matches = append(out.Matches, m)
	})

	return out, nil
}

// fixtureContainers selects candidate match rows. BBC Sport renders
// with generated ssrcss class names, so match on the prefix instead of
// exact classes.
func fixtureContainers(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div[class*='ssrcss'], section[class*='ssrcss'], li[class*='ssrcss']")
}

func parseFixtureRow(s *goquery.Selection, league string) (match.Match, bool) {
	text := collapseSpace(s.Text())
	if text == "" {
		return match.Match{}, false
	}

	var home, away, kickoff string
	if groups := versusWithKickoff.FindStringSubmatch(text); groups != nil {
		home, away, kickoff = groups[1], groups[2], groups[3]
	} else if groups := versusBare.FindStringSubmatch(text); groups != nil {
		home, away = groups[1], groups[2]
	} else {
		return match.Match{}, false
	}

	home = strings.TrimSpace(home)
	away = strings.TrimSpace(away)
	if len(home) < 2 || len(away) < 2 {
		return match.Match{}, false
	}

	// A time element on the row wins over the kickoff in the text.
	if t := collapseSpace(s.Find("time").First().Text()); t != "" {
		kickoff = t
	}

	venue := collapseSpace(s.Find("span[class*='Venue'], span[class*='stadium']").First().Text())

	return match.Match{
		League:   league,
		HomeTeam: home,
		AwayTeam: away,
		Kickoff:  kickoff,
		Venue:    venue,
		Status:   match.StatusNotStarted,
	}, true
}

func parseLiveRow(s *goquery.Selection, league string) (match.Match, bool) {
	label, ok := s.Attr("aria-label")
	if !ok {
		label = collapseSpace(s.Find("[aria-label]").First().AttrOr("aria-label", ""))
	}
	label = collapseSpace(label)

	groups := scoreLabel.FindStringSubmatch(label)
	if groups == nil {
		return match.Match{}, false
	}

	homeScore, err := strconv.Atoi(groups[2])
	if err != nil {
		return match.Match{}, false
	}
	awayScore, err := strconv.Atoi(groups[4])
	if err != nil {
		return match.Match{}, false
	}

	statusText := collapseSpace(s.Find("span[class*='Status'], span[class*='Progress'], abbr").First().Text())
	status, matchTime := classifyStatusText(statusText)

	return match.Match{
		League:    league,
		HomeTeam:  strings.TrimSpace(groups[1]),
		AwayTeam:  strings.TrimSpace(groups[3]),
		Status:    status,
		HomeScore: homeScore,
		AwayScore: awayScore,
		MatchTime: matchTime,
	}, true
}

// classifyStatusText maps the row's progress text to a canonical
// status plus the elapsed-time string when the match is in play.
func classifyStatusText(text string) (string, string) {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	switch lower {
	case "":
		return match.StatusNotStarted, ""
	case "ft", "full time", "full-time":
		return match.StatusFinished, ""
	case "ht", "half time", "half-time":
		return match.StatusHalfTime, "HT"
	}

	if groups := elapsedMinutes.FindStringSubmatch(lower); groups != nil {
		return match.StatusLive, groups[1] + "'"
	}
	if strings.Contains(lower, "live") {
		return match.StatusLive, trimmed
	}

	return match.NormalizeStatus(trimmed), trimmed
}

func looksLikeFixtureRow(s *goquery.Selection) bool {
	return strings.Contains(strings.ToLower(s.Text()), "versus")
}

func looksLikeScoreRow(s *goquery.Selection) bool {
	if _, ok := s.Attr("aria-label"); ok {
		return true
	}
	return s.Find("[aria-label]").Length() > 0
}

func collapseSpace(v string) string {
	return strings.Join(strings.Fields(v), " ")
}
