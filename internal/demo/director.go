// Package demo implements the scripted hero-demo director: a timer-driven
// sequencer that plays a fixed intro (scroll, letter highlight, chip reveal,
// simulated chat) and thereafter accepts limited user interaction. All of it
// is cosmetic; responses are canned strings and no real AI call is made.
//
// The design is a single event loop owning all mutable state, a pure reducer,
// and declarative scheduling effects, so the whole choreography can be tested
// against a fake clock and scheduler.
package demo

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aarongantt/tangent-landing/internal/logger"
)

// ErrMissingStageElement is returned when a core stage element is absent;
// the director refuses to start rather than partially degrade.
var ErrMissingStageElement = errors.New("demo: missing stage element")

// Stage describes the client page the director animates. Presence flags map
// to the DOM elements the original page required.
type Stage struct {
	HasArticle    bool
	HasAnchor     bool
	HasChips      bool
	HasPanelShell bool
	HasPanel      bool
	HasStream     bool

	// AnchorText is the word the intro highlights, usually "Tangent".
	AnchorText string
	// Layout is the initial client-reported geometry.
	Layout Layout
}

// Config controls a Director instance.
type Config struct {
	Stage Stage
	// Clock and Scheduler default to the real implementations.
	Clock     Clock
	Scheduler Scheduler
	// QueueSize bounds the input queue. If zero, a default is used.
	QueueSize int
}

// Director runs the demo state machine. One instance exists per connected
// demo stage; nothing is shared between instances.
type Director struct {
	clock Clock
	sched Scheduler

	mu    sync.Mutex
	state State

	inputs chan Input
	stopCh chan struct{}
	doneCh chan struct{}

	subMu sync.Mutex
	subs  map[chan Frame]struct{}

	stopOnce sync.Once
}

// NewDirector validates the stage and creates a director. A stage missing any
// core element aborts initialization entirely.
func NewDirector(cfg Config) (*Director, error) {
	st := cfg.Stage
	if !st.HasArticle || !st.HasAnchor || !st.HasChips || !st.HasPanelShell || !st.HasPanel || !st.HasStream {
		return nil, ErrMissingStageElement
	}
	if st.AnchorText == "" {
		return nil, fmt.Errorf("demo: anchor text is required")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = RealClock{}
	}
	sched := cfg.Scheduler
	if sched == nil {
		sched = RealScheduler{}
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 256
	}

	return &Director{
		clock: clock,
		sched: sched,
		state: State{
			Mode:       ModeIdle,
			AnchorText: st.AnchorText,
			Layout:     st.Layout,
			CursorType: "normal",
		},
		inputs: make(chan Input, queueSize),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		subs:   make(map[chan Frame]struct{}),
	}, nil
}

// Start begins the director loop in a new goroutine.
func (d *Director) Start() {
	go d.loop()
}

// Stop requests stopping the loop and waits for it to exit. Safe to call
// multiple times.
func (d *Director) Stop() {
	d.stopOnce.Do(func() { close(d.stopCh) })
	<-d.doneCh
}

// Post enqueues an input for the director loop. It returns false if the
// director is stopped or the queue is full.
func (d *Director) Post(in Input) bool {
	if in == nil {
		return false
	}
	select {
	case <-d.stopCh:
		return false
	default:
	}
	select {
	case d.inputs <- in:
		return true
	default:
		return false
	}
}

// HeaderClicked posts a header click stamped with the director's clock, so
// double-click detection stays deterministic under a fake clock.
func (d *Director) HeaderClicked() bool {
	return d.Post(CmdHeaderClick{At: d.clock.Now()})
}

// Snapshot returns a copy of the current state. Intended for tests and
// observability.
func (d *Director) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Subscribe registers a frame channel. Slow subscribers miss frames rather
// than stalling the loop.
func (d *Director) Subscribe() (<-chan Frame, func()) {
	ch := make(chan Frame, 64)
	d.subMu.Lock()
	d.subs[ch] = struct{}{}
	d.subMu.Unlock()
	cancel := func() {
		d.subMu.Lock()
		delete(d.subs, ch)
		d.subMu.Unlock()
	}
	return ch, cancel
}

func (d *Director) loop() {
	defer close(d.doneCh)

	for {
		select {
		case <-d.stopCh:
			return
		case in := <-d.inputs:
			if in == nil {
				continue
			}
			d.mu.Lock()
			prev := d.state
			next, effects := Reduce(prev, in)
			d.state = next
			d.mu.Unlock()

			if logger.Enabled(logger.LevelTrace) && prev.Mode != next.Mode {
				logger.Tracef("demo: mode %s -> %s", prev.Mode, next.Mode)
			}

			d.handleEffects(effects)
			d.broadcast(Snapshot(next))
		}
	}
}

// handleEffects interprets scheduling effects. Scheduled inputs that fire
// after Stop are dropped by Post.
func (d *Director) handleEffects(effects []Effect) {
	for _, eff := range effects {
		switch e := eff.(type) {
		case effSchedule:
			in := e.Input
			if e.After <= 0 {
				// Immediate re-entry still goes through the queue to keep
				// strict program order.
				d.Post(in)
				continue
			}
			d.sched.After(e.After, func() { d.Post(in) })
		}
	}
}

func (d *Director) broadcast(f Frame) {
	d.subMu.Lock()
	defer d.subMu.Unlock()
	for ch := range d.subs {
		select {
		case ch <- f:
		default:
		}
	}
}
