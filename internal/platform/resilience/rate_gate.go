package resilience

import (
	"context"
	"sync"
	"time"
)

// RateGate spaces calls at least one interval apart across all callers,
// measured from the end of one call to the start of the next. Wait
// blocks the caller until its slot arrives or ctx is done; Done records
// that the gated call has finished, pushing the next slot out when the
// call ran longer than its reserved start.
type RateGate struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewRateGate(interval time.Duration) *RateGate {
	if interval < 0 {
		interval = 0
	}
	return &RateGate{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

func (g *RateGate) Wait(ctx context.Context) error {
	if g.interval == 0 {
		return ctx.Err()
	}

	g.mu.Lock()
	now := g.now()
	wait := g.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	start := now.Add(wait)
	g.next = start.Add(g.interval)
	g.mu.Unlock()

	if wait == 0 {
		return ctx.Err()
	}
	return g.sleep(ctx, wait)
}

// Done marks the end of a gated call. The next slot moves to one full
// interval after the call finished, so a slow call cannot be followed
// immediately by another.
func (g *RateGate) Done() {
	if g.interval == 0 {
		return
	}

	g.mu.Lock()
	if next := g.now().Add(g.interval); next.After(g.next) {
		g.next = next
	}
	g.mu.Unlock()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
