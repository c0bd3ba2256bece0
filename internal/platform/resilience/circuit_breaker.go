package resilience

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

// BreakerConfig tunes a Breaker. Zero values fall back to defaults in
// NewBreaker.
type BreakerConfig struct {
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxProbe int
}

// Breaker shields an upstream from hammering while it is failing. It
// trips open after FailureThreshold consecutive failures, waits
// OpenTimeout, then lets up to HalfOpenMaxProbe requests through to
// test recovery.
type Breaker struct {
	mu sync.Mutex

	cfg BreakerConfig
	now func() time.Time

	state         BreakerState
	failStreak    int
	openedAt      time.Time
	probeInFlight int
	probeSuccess  int
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenMaxProbe < 1 {
		cfg.HalfOpenMaxProbe = 1
	}

	return &Breaker{
		cfg:   cfg,
		now:   time.Now,
		state: BreakerClosed,
	}
}

// Execute runs fn under the breaker, recording its outcome. When the
// breaker is open the call is rejected with ErrCircuitOpen without
// invoking fn.
func (b *Breaker) Execute(fn func() error) error {
	if err := b.allow(); err != nil {
		return err
	}

	err := fn()
	if err != nil {
		b.recordFailure()
		return err
	}

	b.recordSuccess()
	return nil
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return BreakerHalfOpen
	}
	return b.state
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.state = BreakerHalfOpen
		b.probeInFlight = 0
		b.probeSuccess = 0
	}

	if b.state == BreakerHalfOpen {
		if b.probeInFlight >= b.cfg.HalfOpenMaxProbe {
			return ErrCircuitOpen
		}
		b.probeInFlight++
	}

	return nil
}

func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failStreak = 0
	case BreakerHalfOpen:
		if b.probeInFlight > 0 {
			b.probeInFlight--
		}
		b.probeSuccess++
		if b.probeSuccess >= b.cfg.HalfOpenMaxProbe && b.probeInFlight == 0 {
			b.state = BreakerClosed
			b.failStreak = 0
			b.probeSuccess = 0
			b.openedAt = time.Time{}
		}
	}
}

func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failStreak++
		if b.failStreak >= b.cfg.FailureThreshold {
			b.trip()
		}
	case BreakerHalfOpen:
		if b.probeInFlight > 0 {
			b.probeInFlight--
		}
		b.trip()
	case BreakerOpen:
		b.openedAt = b.now()
	}
}

func (b *Breaker) trip() {
	b.state = BreakerOpen
	b.openedAt = b.now()
	b.probeInFlight = 0
	b.probeSuccess = 0
}
