package selection

import (
	"strings"
	"time"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/match"
)

// PanelSize is the number of selectors required for a complete week.
const PanelSize = 8

// DefaultSelectors is the fixed panel. The set is configuration, not runtime
// data: selectors are never created or destroyed while the service runs.
var DefaultSelectors = []string{
	"Glynny",
	"Eamonn Bone",
	"Mickey D",
	"Rob Carney",
	"Steve H",
	"Danny",
	"Eddie Lee",
	"Fran Radar",
}

// Assignment maps one selector to one catalog match for a week.
type Assignment struct {
	Selector   string      `json:"selector"`
	MatchID    string      `json:"match_id"`
	Match      match.Match `json:"match"`
	AssignedAt time.Time   `json:"assigned_at"`
}

// Override records an explicit admin confirmation that the week may proceed
// with fewer than PanelSize assignments. It never changes how assign behaves;
// it only feeds IsComplete.
type Override struct {
	Confirmed   bool      `json:"confirmed"`
	Reason      string    `json:"reason"`
	Actor       string    `json:"actor"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// WeekState is the whole persisted record for one target Saturday: the
// catalog offered that week, the assignment set and any override. It is
// always read and written as a unit.
type WeekState struct {
	Saturday    string                `json:"saturday"`
	Matches     []match.Match         `json:"matches"`
	Assignments map[string]Assignment `json:"assignments"`
	Override    *Override             `json:"override,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func NewWeekState(saturday string, now time.Time) WeekState {
	return WeekState{
		Saturday:    saturday,
		Assignments: make(map[string]Assignment),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsComplete reports whether the week is ready for live tracking: a full
// panel, or an explicit override on record.
func (w WeekState) IsComplete() bool {
	if len(w.Assignments) >= PanelSize {
		return true
	}
	return w.Override != nil && w.Override.Confirmed
}

// AssignedTo returns the selector currently holding matchID, if any.
func (w WeekState) AssignedTo(matchID string) (string, bool) {
	for selector, assignment := range w.Assignments {
		if assignment.MatchID == matchID {
			return selector, true
		}
	}
	return "", false
}

// CatalogMatch looks up a catalog entry by its identity.
func (w WeekState) CatalogMatch(matchID string) (match.Match, bool) {
	for _, m := range w.Matches {
		if m.ID() == matchID {
			return m, true
		}
	}
	return match.Match{}, false
}

// Clone returns a deep enough copy for read-modify-write: callers may mutate
// the copy's assignment map and catalog slice without aliasing the original.
func (w WeekState) Clone() WeekState {
	out := w
	out.Matches = append([]match.Match(nil), w.Matches...)
	out.Assignments = make(map[string]Assignment, len(w.Assignments))
	for selector, assignment := range w.Assignments {
		out.Assignments[selector] = assignment
	}
	if w.Override != nil {
		override := *w.Override
		out.Override = &override
	}
	return out
}

// ValidPanel reports whether names is a usable selector panel: exactly
// PanelSize distinct non-empty names.
func ValidPanel(names []string) bool {
	if len(names) != PanelSize {
		return false
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return false
		}
		if _, dup := seen[trimmed]; dup {
			return false
		}
		seen[trimmed] = struct{}{}
	}
	return true
}
