package booking

import "sync/atomic"

// Guard admits at most one in-flight booking submission. The check-and-set is a
// single atomic operation, so a second click racing the first is rejected even
// before any response state has been published.
type Guard struct {
	inFlight atomic.Bool
}

// TryBegin moves the guard from idle to in-flight. It returns false, leaving the
// state untouched, when a submission is already running.
func (g *Guard) TryBegin() bool {
	return g.inFlight.CompareAndSwap(false, true)
}

// End returns the guard to idle. Called on every terminal failure; a successful
// submission leaves the guard set until its form is discarded.
func (g *Guard) End() {
	g.inFlight.Store(false)
}

func (g *Guard) InFlight() bool {
	return g.inFlight.Load()
}
