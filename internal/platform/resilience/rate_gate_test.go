package resilience

import (
	"context"
	"testing"
	"time"
)

func TestRateGate_SpacesCalls(t *testing.T) {
	g := NewRateGate(time.Second)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }

	var slept []time.Duration
	g.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		now = now.Add(d)
		return nil
	}

	ctx := context.Background()

	// First call passes immediately.
	if err := g.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slept) != 0 {
		t.Fatalf("first call should not sleep, slept %v", slept)
	}

	// Second call lands inside the interval and waits it out.
	if err := g.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slept) != 1 || slept[0] != time.Second {
		t.Fatalf("expected a 1s wait, got %v", slept)
	}

	// After the interval has elapsed the gate opens again.
	now = now.Add(2 * time.Second)
	slept = nil
	if err := g.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slept) != 0 {
		t.Fatalf("expected no wait after idle period, slept %v", slept)
	}
}

func TestRateGate_QueuedCallersGetSequentialSlots(t *testing.T) {
	g := NewRateGate(time.Second)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }

	var slept []time.Duration
	g.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if err := g.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("expected %d waits, got %v", len(want), slept)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Fatalf("wait %d: got %s, want %s", i, slept[i], want[i])
		}
	}
}

func TestRateGate_IntervalMeasuredFromEndOfCall(t *testing.T) {
	g := NewRateGate(time.Second)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }

	var slept []time.Duration
	g.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		now = now.Add(d)
		return nil
	}

	ctx := context.Background()

	if err := g.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The call runs for 3s before completing, well past the slot it
	// reserved at start. Done moves the next slot to end+interval.
	now = now.Add(3 * time.Second)
	g.Done()

	if err := g.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slept) != 1 || slept[0] != time.Second {
		t.Fatalf("expected a 1s wait after the slow call, got %v", slept)
	}
}

func TestRateGate_DoneOnFastCallKeepsSpacing(t *testing.T) {
	g := NewRateGate(time.Second)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }

	var slept []time.Duration
	g.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		now = now.Add(d)
		return nil
	}

	ctx := context.Background()

	// An instantaneous call: end == start, so end+interval matches the
	// slot Wait already reserved and the next caller waits one interval.
	if err := g.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.Done()

	if err := g.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slept) != 1 || slept[0] != time.Second {
		t.Fatalf("expected a 1s wait, got %v", slept)
	}
}

func TestRateGate_CancelledContext(t *testing.T) {
	g := NewRateGate(time.Minute)

	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.Wait(ctx); err == nil {
		t.Fatal("expected context error while gated")
	}
}

func TestRateGate_ZeroIntervalNeverBlocks(t *testing.T) {
	t.Parallel()

	g := NewRateGate(0)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		if err := g.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}
