// Package admission bounds how many isochrone requests compute at once.
// The graph itself is shared and read-only, so the only resource being
// protected is CPU: too many concurrent Dijkstra expansions and polygon
// unions would thrash rather than finish any faster.
package admission

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Semaphore is a FIFO-fair, context-cancellable admission gate. Waiters are
// served in arrival order; a canceled request releases its place in line
// without taking a permit, and never blocks a request behind it.
type Semaphore struct {
	weighted *semaphore.Weighted
}

// New returns a Semaphore that admits at most n requests at a time.
func New(n int64) *Semaphore {
	if n < 1 {
		n = 1
	}
	return &Semaphore{weighted: semaphore.NewWeighted(n)}
}

// Acquire blocks until a permit is available or ctx is done. On
// cancellation it returns ctx.Err() and holds no permit.
func (s *Semaphore) Acquire(ctx context.Context) error {
	return s.weighted.Acquire(ctx, 1)
}

// Release returns a permit acquired by a prior successful Acquire.
func (s *Semaphore) Release() {
	s.weighted.Release(1)
}
