package job

import (
	"sync"
	"sync/atomic"
)

// gate is a wait/notify primitive for idle workers: a fast-path counter
// check, then registering a channel and blocking on it (there is no spin
// stage). Adapted from the teacher's EnhancedEpoch (kernel/threads/foundation/
// epoch.go) — same fast-path-then-block shape — generalized from "wait for a shared
// memory epoch to change" to "wait for any worker to publish new work."
type gate struct {
	epoch     atomic.Uint64
	waitersMu sync.Mutex
	waiters   []chan struct{}
}

func newGate() *gate { return &gate{} }

// bump advances the epoch and wakes exactly one goroutine currently parked
// in wait, matching spec.md §4.11 step 4 / §5's one-post-wakes-one-worker
// pairing — a bump is a signal that one more unit of work (or one wake
// ticket's worth of reason to re-check) became available, not a reason for
// every idle worker to wake at once. A waiter that is not woken directly
// still observes the new epoch the next time anything calls wait on this
// gate, via the fast-path check at the top of wait, so no bump's signal is
// lost — only its immediate wakeup is deferred to a later bump or to the
// waiter's own retry.
func (g *gate) bump() {
	g.epoch.Add(1)
	g.waitersMu.Lock()
	var ch chan struct{}
	if len(g.waiters) > 0 {
		ch = g.waiters[0]
		g.waiters = g.waiters[1:]
	}
	g.waitersMu.Unlock()
	if ch != nil {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// wait blocks until bump is called at least once after wait observed the
// epoch, or stop is closed. last is the epoch value the caller last
// observed; wait returns the new epoch value so the caller can pass it back
// on the next call without missing a bump that lands between calls.
func (g *gate) wait(last uint64, stop <-chan struct{}) uint64 {
	ch := make(chan struct{}, 1)
	// The epoch check and the registration happen under the same lock bump
	// takes after advancing the epoch, so a bump either shows up in this
	// check or finds ch already registered.
	g.waitersMu.Lock()
	if cur := g.epoch.Load(); cur != last {
		g.waitersMu.Unlock()
		return cur
	}
	g.waiters = append(g.waiters, ch)
	g.waitersMu.Unlock()
	select {
	case <-ch:
	case <-stop:
	}
	return g.epoch.Load()
}
