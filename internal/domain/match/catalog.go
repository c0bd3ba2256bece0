package match

import "sort"

// FilterThreePM keeps only fixtures whose kickoff is exactly 15:00.
// Unknown or any other kickoff strings are dropped, never coerced.
func FilterThreePM(in []Match) []Match {
	out := make([]Match, 0, len(in))
	for _, m := range in {
		if m.Kickoff == KickoffThreePM {
			out = append(out, m)
		}
	}
	return out
}

// Dedupe collapses matches that share a normalized identity, keeping
// the first occurrence.
func Dedupe(in []Match) []Match {
	seen := make(map[string]struct{}, len(in))
	out := make([]Match, 0, len(in))
	for _, m := range in {
		id := m.ID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, m)
	}
	return out
}

// SortForDisplay orders matches by league, then home team, then away
// team so the selectable list is stable between refreshes.
func SortForDisplay(in []Match) {
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].League != in[j].League {
			return in[i].League < in[j].League
		}
		if in[i].HomeTeam != in[j].HomeTeam {
			return in[i].HomeTeam < in[j].HomeTeam
		}
		return in[i].AwayTeam < in[j].AwayTeam
	})
}
