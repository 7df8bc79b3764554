package services

import (
	"sync"
	"time"
)

// ReplyScheduler owns the pending-reply timers, keyed by relationship id.
// Scheduling for a key cancels that key's previous timer, so only the latest
// inbound message in a relationship produces a reply. Implementations must not
// leak entries: a fired or cancelled timer removes itself.
type ReplyScheduler interface {
	Schedule(key string, delay time.Duration, fn func())
	Cancel(key string) bool
	Stop()
}

// TimerScheduler is the production ReplyScheduler, one time.Timer per key.
// Timers for different keys are independent; there is no ordering between them.
type TimerScheduler struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[string]*time.Timer)}
}

// Schedule arms a timer for key, replacing any pending one.
func (ts *TimerScheduler) Schedule(key string, delay time.Duration, fn func()) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.stopped {
		return
	}
	if existing, ok := ts.timers[key]; ok {
		existing.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		// A replacement may already own the key if Schedule ran between this
		// timer firing and this goroutine taking the lock. Remove only our own
		// entry, so the replacement stays tracked and cancelable.
		ts.mu.Lock()
		if ts.timers[key] == t {
			delete(ts.timers, key)
		}
		ts.mu.Unlock()
		fn()
	})
	ts.timers[key] = t
}

// Cancel stops key's pending timer, reporting whether one was pending.
func (ts *TimerScheduler) Cancel(key string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	timer, ok := ts.timers[key]
	if !ok {
		return false
	}
	timer.Stop()
	delete(ts.timers, key)
	return true
}

// Stop cancels every pending timer and refuses further scheduling.
func (ts *TimerScheduler) Stop() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.stopped = true
	for key, timer := range ts.timers {
		timer.Stop()
		delete(ts.timers, key)
	}
}

// Pending reports how many timers are armed. Used by tests to check for leaks.
func (ts *TimerScheduler) Pending() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.timers)
}
