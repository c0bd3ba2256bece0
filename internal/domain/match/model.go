package match

import (
	"strings"
)

const (
	StatusNotStarted  = "not_started"
	StatusLive        = "live"
	StatusHalfTime    = "half_time"
	StatusFinished    = "finished"
	StatusNoSelection = "no_selection"
	StatusError       = "error"
)

// KickoffThreePM is the only kickoff the Saturday accumulator considers.
const KickoffThreePM = "15:00"

// Match is one fixture as parsed from a league source. League, home and away
// team names form the identity within a week; everything else is attribute
// data that may be missing from the source.
type Match struct {
	League   string `json:"league"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Kickoff  string `json:"kickoff"`
	Venue    string `json:"venue,omitempty"`

	Status    string `json:"status,omitempty"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	MatchTime string `json:"match_time,omitempty"`
}

// Normalize collapses runs of whitespace and lowercases a source-supplied
// name so that formatting drift between pages does not split identities.
func Normalize(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// ID returns the stable match identity "{league}_{home}_{away}" built from
// normalized fields.
func (m Match) ID() string {
	return Normalize(m.League) + "_" + Normalize(m.HomeTeam) + "_" + Normalize(m.AwayTeam)
}

// SameFixture reports whether two matches share a normalized identity.
func (m Match) SameFixture(other Match) bool {
	return m.ID() == other.ID()
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	switch status {
	case "":
		return StatusNotStarted
	case "ht":
		return StatusHalfTime
	case "ft", "full_time", "fulltime":
		return StatusFinished
	case "in_play", "1h", "2h":
		return StatusLive
	default:
		return status
	}
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, StatusHalfTime:
		return true
	default:
		return false
	}
}

// BTTS reports whether both teams have scored. Recomputed from current
// scores on every poll; scores cannot organically decrease so it behaves
// as monotonic once true.
func BTTS(homeScore, awayScore int) bool {
	return homeScore > 0 && awayScore > 0
}
