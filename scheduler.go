package mask

import (
	"sync"
	"time"
)

// DefaultThrottleInterval is the minimum time between partial rebuilds on
// the throttled stroke path, roughly one 60 Hz frame.
const DefaultThrottleInterval = 16 * time.Millisecond

// Clock abstracts time for the rebuild scheduler so tests can drive it
// with a virtual clock instead of wall-clock waits.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable pending callback, as returned by Clock.AfterFunc.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from running.
	Stop() bool
}

// systemClock is the real Clock backed by the time package.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns the wall-clock Clock used by default.
func SystemClock() Clock { return systemClock{} }

// Scheduler coalesces partial-rebuild requests into at most one pending
// task. Requests arriving while a task is pending merge their chunk
// rectangles into the running union, so a fast stroke crossing several
// chunks between ticks never loses territory. The timer callback only
// marks the task due; the task itself runs when the owning goroutine calls
// Pump or Flush, so the fire callback never executes off that goroutine.
type Scheduler struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	fire     func(ChunkBounds)

	pending bool
	due     bool
	dirty   ChunkBounds
	timer   Timer
	last    time.Time
}

// NewScheduler creates a scheduler that invokes fire with the accumulated
// dirty chunk rectangle at most once per interval.
func NewScheduler(clock Clock, interval time.Duration, fire func(ChunkBounds)) *Scheduler {
	return &Scheduler{
		clock:    clock,
		interval: interval,
		fire:     fire,
	}
}

// Schedule merges b into the pending dirty rectangle and arms the deferred
// task if none is pending. The task becomes due no sooner than interval
// after the previous firing.
func (s *Scheduler) Schedule(b ChunkBounds) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending {
		s.dirty = s.dirty.Union(b)
		return
	}
	s.pending = true
	s.due = false
	s.dirty = b

	delay := s.interval - s.clock.Now().Sub(s.last)
	if delay < 0 {
		delay = 0
	}
	s.timer = s.clock.AfterFunc(delay, s.markDue)
}

// Pump runs the pending task if its interval has elapsed. The owning
// goroutine calls it, typically once per frame before the mask is read.
func (s *Scheduler) Pump() {
	s.mu.Lock()
	if !s.pending || !s.due {
		s.mu.Unlock()
		return
	}
	b := s.take()
	s.mu.Unlock()
	s.fire(b)
}

// Flush runs a pending task immediately, due or not. Callers use it at
// stroke end so snapshots and exports observe current content.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	if !s.pending {
		s.mu.Unlock()
		return
	}
	b := s.take()
	s.mu.Unlock()
	s.fire(b)
}

// Cancel drops any pending task without firing it. Used when the store is
// cleared wholesale and the pending rectangle no longer means anything.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
	s.due = false
}

// markDue flags the pending task as ready. It runs on the timer goroutine
// and touches nothing but scheduler state.
func (s *Scheduler) markDue() {
	s.mu.Lock()
	if s.pending {
		s.due = true
	}
	s.timer = nil
	s.mu.Unlock()
}

// take clears the slot and stamps the firing time. Caller holds mu.
func (s *Scheduler) take() ChunkBounds {
	b := s.dirty
	s.pending = false
	s.due = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.last = s.clock.Now()
	return b
}
