package match

// Per-match display classification for a tracked leg.
const (
	LegBothScored    = "BOTH SCORED"
	LegNoBTTS        = "NO BTTS"
	LegOneScored     = "ONE SCORED"
	LegAwaitingGoals = "AWAITING GOALS"
)

// Accumulator verdicts over the whole week.
const (
	VerdictFailed     = "FAILED"
	VerdictSuccess    = "SUCCESS"
	VerdictInProgress = "IN_PROGRESS"
	VerdictPending    = "PENDING"
)

// ClassifyLeg maps a match's current status and scores to its display
// classification. BTTS dominates regardless of match status; a finished
// match without BTTS is a terminal miss.
func ClassifyLeg(status string, homeScore, awayScore int) string {
	switch {
	case BTTS(homeScore, awayScore):
		return LegBothScored
	case IsFinishedStatus(status):
		return LegNoBTTS
	case (homeScore > 0) != (awayScore > 0):
		return LegOneScored
	default:
		return LegAwaitingGoals
	}
}

// Verdict aggregates leg classifications into the accumulator outcome.
// Precedence is fixed: one failed leg fails the whole accumulator even if
// every other leg has already landed.
func Verdict(legs []string) string {
	if len(legs) == 0 {
		return VerdictPending
	}

	scored := 0
	for _, leg := range legs {
		switch leg {
		case LegNoBTTS:
			return VerdictFailed
		case LegBothScored:
			scored++
		}
	}

	switch {
	case scored == len(legs):
		return VerdictSuccess
	case scored > 0:
		return VerdictInProgress
	default:
		return VerdictPending
	}
}
