package memory

import (
	"context"
	"testing"
	"time"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/selection"
)

func TestWeekRepository_SaveAndGet(t *testing.T) {
	t.Parallel()

	repo := NewWeekRepository()
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "2026-09-05"); err != nil || ok {
		t.Fatalf("Get() on empty repo = ok=%v err=%v", ok, err)
	}

	state := selection.NewWeekState("2026-09-05", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, ok, err := repo.Get(ctx, "2026-09-05")
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v err=%v", ok, err)
	}

	// Stored state is isolated from caller mutations.
	got.Assignments["Glynny"] = selection.Assignment{Selector: "Glynny"}
	again, _, _ := repo.Get(ctx, "2026-09-05")
	if len(again.Assignments) != 0 {
		t.Fatalf("mutation leaked into stored state: %d assignments", len(again.Assignments))
	}
}

func TestWeekRepository_ListSaturdays(t *testing.T) {
	t.Parallel()

	repo := NewWeekRepository()
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	for _, saturday := range []string{"2026-09-19", "2026-09-05", "2026-09-12"} {
		if err := repo.Save(ctx, selection.NewWeekState(saturday, now)); err != nil {
			t.Fatalf("Save(%s) error = %v", saturday, err)
		}
	}

	got, err := repo.ListSaturdays(ctx)
	if err != nil {
		t.Fatalf("ListSaturdays() error = %v", err)
	}
	want := []string{"2026-09-05", "2026-09-12", "2026-09-19"}
	if len(got) != len(want) {
		t.Fatalf("got %d saturdays, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("saturdays[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
