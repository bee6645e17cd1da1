package service

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// InFlightGuard allows at most one running operation per key.
// A busy key rejects new work immediately; nothing is queued.
// A key only has a slot while its operation runs.
type InFlightGuard struct {
	mu    sync.Mutex
	slots map[string]*semaphore.Weighted
}

// NewInFlightGuard creates an empty guard
func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{slots: make(map[string]*semaphore.Weighted)}
}

// TryAcquire claims the slot for key. The returned release func must be called
// exactly once when ok is true.
func (g *InFlightGuard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sem, exists := g.slots[key]
	if !exists {
		sem = semaphore.NewWeighted(1)
	}
	if !sem.TryAcquire(1) {
		return nil, false
	}
	g.slots[key] = sem

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			sem.Release(1)
			delete(g.slots, key)
		})
	}, true
}

// Busy reports whether an operation for key is running. It never takes the slot.
func (g *InFlightGuard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.slots[key]
	return ok
}

// Len returns the number of keys currently running
func (g *InFlightGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.slots)
}
