package breaker

import (
	"sync"
	"time"
)

// reopener is a single-shot, re-armable timer. Arming replaces any pending
// arm, so only the most recent one fires; that keeps exactly one recovery
// transition per open episode even when a failed probe re-opens the circuit.
//
// Stop does not guarantee the old callback isn't already running, so callers
// must carry their own staleness guard (the circuit's generation counter).
type reopener struct {
	mu    sync.Mutex
	timer *time.Timer
}

// schedule arranges for fn to run once, d from now, on its own goroutine.
// A previously scheduled fn that has not fired yet is cancelled.
func (r *reopener) schedule(d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(d, fn)
}

// stop cancels the pending arm, if any.
func (r *reopener) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
