package engine

import (
	"sync"
	"time"
)

// Scheduler fires the notify callback once per refresh cycle: immediately
// on every interval change, then at the configured cadence. At most one
// timer is armed at any time. An interval of zero disables periodic firing
// without disabling TriggerNow.
//
// The callback runs on the timer goroutine for periodic fires and on the
// caller's goroutine for SetInterval and TriggerNow, so it must not block
// on the caller. The scheduler never
// waits for a cycle to finish before firing again; overlapping cycles are
// safe because reconciliation re-derives the rendered set from whichever
// snapshot applies last.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	gen      uint64
	stopped  bool
	notify   func()
}

// NewScheduler creates a stopped scheduler. Nothing fires until Start.
func NewScheduler(notify func()) *Scheduler {
	return &Scheduler{notify: notify, stopped: true}
}

// Start begins scheduling at the given interval. Equivalent to SetInterval
// on a fresh scheduler: it fires one cycle immediately.
func (s *Scheduler) Start(interval time.Duration) {
	s.SetInterval(interval)
}

// SetInterval replaces the cadence. Any armed timer is cancelled first, one
// cycle fires immediately, and a new timer is armed if interval is
// positive. Zero means manual refresh only.
func (s *Scheduler) SetInterval(interval time.Duration) {
	s.mu.Lock()
	s.gen++
	s.stopped = false
	s.interval = interval
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if interval > 0 {
		gen := s.gen
		s.timer = time.AfterFunc(interval, func() { s.tick(gen) })
	}
	s.mu.Unlock()

	s.notify()
}

// tick re-arms the timer and fires one cycle. The generation check makes a
// stale callback (one whose timer was replaced while it was already
// running) a no-op, so a replaced timer can never leave two chains armed.
func (s *Scheduler) tick(gen uint64) {
	s.mu.Lock()
	if s.stopped || gen != s.gen || s.interval <= 0 {
		s.mu.Unlock()
		return
	}
	s.timer = time.AfterFunc(s.interval, func() { s.tick(gen) })
	s.mu.Unlock()

	s.notify()
}

// TriggerNow fires one cycle immediately without disturbing the periodic
// timer. Works at any interval, including zero. A no-op after Stop.
func (s *Scheduler) TriggerNow() {
	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()
	if stopped {
		return
	}
	s.notify()
}

// Interval returns the current cadence.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Stop cancels any armed timer and disables TriggerNow. Safe to call more
// than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
