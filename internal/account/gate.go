// Package account implements the account page bootstrap: a readiness-future
// handshake between the session service and the page components, plus the
// auto-checkout URL contract.
package account

import "sync"

// Gate is a one-shot readiness future. Components resolve their gate when
// they are ready to be called; waiters block on Done instead of polling.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

// NewGate returns an unresolved gate.
func NewGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Resolve marks the gate ready. Subsequent calls are no-ops.
func (g *Gate) Resolve() {
	g.once.Do(func() { close(g.ch) })
}

// Done returns a channel closed when the gate resolves.
func (g *Gate) Done() <-chan struct{} {
	return g.ch
}

// Resolved reports whether the gate has been resolved.
func (g *Gate) Resolved() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}
