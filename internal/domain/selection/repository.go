package selection

import "context"

// Repository persists week states with read-whole/write-whole semantics
// keyed by the target Saturday.
type Repository interface {
	Get(ctx context.Context, saturday string) (WeekState, bool, error)
	Save(ctx context.Context, state WeekState) error
	ListSaturdays(ctx context.Context) ([]string, error)
}
