// Package demotest provides deterministic clock and scheduler fakes for
// driving the demo director without wall-clock waits.
package demotest

import (
	"sort"
	"sync"
	"time"

	"github.com/aarongantt/tangent-landing/internal/demo"
)

// FakeClock is a deterministic Clock for tests.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ demo.Clock = (*FakeClock)(nil)

// NewFakeClock returns a FakeClock starting at the given time.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now implements demo.Clock.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set sets the current clock time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves time forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FakeScheduler collects timers and fires them when time is advanced.
type FakeScheduler struct {
	clock *FakeClock

	mu      sync.Mutex
	nextID  int
	pending []*fakeTimer
}

type fakeTimer struct {
	id  int
	due time.Time
	fn  func()
}

var _ demo.Scheduler = (*FakeScheduler)(nil)

// NewFakeScheduler returns a scheduler whose timers fire via Advance.
func NewFakeScheduler(clock *FakeClock) *FakeScheduler {
	return &FakeScheduler{clock: clock}
}

// After implements demo.Scheduler.
func (s *FakeScheduler) After(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := &fakeTimer{id: s.nextID, due: s.clock.Now().Add(d), fn: fn}
	s.pending = append(s.pending, t)
	id := t.id
	return func() { s.cancel(id) }
}

func (s *FakeScheduler) cancel(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.pending {
		if t.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Pending reports how many timers have not fired yet.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Advance moves the clock forward by d, firing due timers in due order.
// Timers scheduled by fired callbacks are honored within the same advance.
func (s *FakeScheduler) Advance(d time.Duration) {
	target := s.clock.Now().Add(d)
	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		s.clock.Set(t.due)
		t.fn()
	}
	s.clock.Set(target)
}

// popDue removes and returns the earliest timer due at or before target.
func (s *FakeScheduler) popDue(target time.Time) *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].due.Before(s.pending[j].due)
	})
	if s.pending[0].due.After(target) {
		return nil
	}
	t := s.pending[0]
	s.pending = s.pending[1:]
	return t
}
