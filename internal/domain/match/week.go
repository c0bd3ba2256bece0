package match

import "time"

// SaturdayFormat is the canonical week key, e.g. "2026-09-05".
const SaturdayFormat = "2006-01-02"

// NextSaturday returns the first date strictly after from whose weekday is
// Saturday. Weekly planning always looks forward: when from is itself a
// Saturday the following Saturday is returned, never the current one.
func NextSaturday(from time.Time) time.Time {
	days := (int(time.Saturday) - int(from.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	next := from.AddDate(0, 0, days)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, from.Location())
}

// NextSaturdayKey is NextSaturday rendered as a week key.
func NextSaturdayKey(from time.Time) string {
	return NextSaturday(from).Format(SaturdayFormat)
}
