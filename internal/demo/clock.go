package demo

import "time"

// Clock provides a testable time source.
//
// The reducer stays deterministic and never calls a Clock directly; the
// director injects timestamps into inputs where needed.
type Clock interface {
	Now() time.Time
}

// RealClock is a production Clock implementation backed by time.Now.
type RealClock struct{}

// Now implements Clock.
func (RealClock) Now() time.Time { return time.Now() }

// Scheduler provides testable one-shot timers. Every fixed delay in the
// choreography goes through a Scheduler so tests can drive the whole intro
// without wall-clock waits.
type Scheduler interface {
	// After runs fn once after d. The returned function cancels the timer;
	// canceling after fire is a no-op.
	After(d time.Duration, fn func()) (cancel func())
}

// RealScheduler is a production Scheduler backed by time.AfterFunc.
type RealScheduler struct{}

// After implements Scheduler.
func (RealScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
