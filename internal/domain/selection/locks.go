package selection

import "sync"

// WeekLocks serializes write cycles against a single Saturday's week
// state. Save replaces the whole document, so every read-modify-write
// sequence must run inside the lock for its Saturday or a concurrent
// writer's changes are silently lost. One WeekLocks instance must be
// shared by every component that writes through the same Repository.
type WeekLocks struct {
	mu    sync.Mutex
	weeks map[string]*sync.Mutex
}

func NewWeekLocks() *WeekLocks {
	return &WeekLocks{weeks: make(map[string]*sync.Mutex)}
}

// Acquire returns the mutex guarding the given Saturday, creating it on
// first use. Locks are never discarded; the set of Saturdays a running
// process touches is small.
func (l *WeekLocks) Acquire(saturday string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.weeks[saturday]
	if !ok {
		lock = &sync.Mutex{}
		l.weeks[saturday] = lock
	}
	return lock
}
