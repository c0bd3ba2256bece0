package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/selection"
)

// WeekRepository keeps week states in process memory. Used for tests
// and for running the tracker without a database.
type WeekRepository struct {
	mu    sync.RWMutex
	weeks map[string]selection.WeekState
}

func NewWeekRepository() *WeekRepository {
	return &WeekRepository{weeks: make(map[string]selection.WeekState)}
}

func (r *WeekRepository) Get(_ context.Context, saturday string) (selection.WeekState, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.weeks[saturday]
	if !ok {
		return selection.WeekState{}, false, nil
	}
	return state.Clone(), true, nil
}

func (r *WeekRepository) Save(_ context.Context, state selection.WeekState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.weeks[state.Saturday] = state.Clone()
	return nil
}

func (r *WeekRepository) ListSaturdays(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.weeks))
	for saturday := range r.weeks {
		out = append(out, saturday)
	}
	sort.Strings(out)
	return out, nil
}
