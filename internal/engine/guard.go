package engine

import "sync/atomic"

// TickGuard admits at most one cycle at a time. A second acquirer fails
// immediately instead of waiting.
type TickGuard struct {
	held atomic.Bool
}

// TryAcquire takes the guard if it is free.
func (g *TickGuard) TryAcquire() bool {
	return g.held.CompareAndSwap(false, true)
}

// Release frees the guard.
func (g *TickGuard) Release() {
	g.held.Store(false)
}

// Held reports whether a cycle currently owns the guard.
func (g *TickGuard) Held() bool {
	return g.held.Load()
}
