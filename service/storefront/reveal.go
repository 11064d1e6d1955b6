package storefront

import (
	"sync"
)

// RevealState is the reveal controller's state for a given result length.
type RevealState int

const (
	// Watching: the sentinel is being observed, more items can be revealed.
	Watching RevealState = iota
	// Exhausted: the window covers the whole result; no further increments.
	Exhausted
)

// Reveal grows the visible window in fixed steps. The window never exceeds
// the current result length; when the result grows past the window (a
// filter change enlarged the set) the controller is watching again without
// any explicit re-arm.
type Reveal struct {
	mu      sync.Mutex
	initial int
	step    int
	window  int
}

func NewReveal(initial, step int) *Reveal {
	if initial < 1 {
		initial = 1
	}
	if step < 1 {
		step = 1
	}
	return &Reveal{initial: initial, step: step, window: initial}
}

// Window returns the visible-window size clamped to the result length.
func (r *Reveal) Window(total int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.window > total {
		return total
	}
	return r.window
}

// State reports Watching or Exhausted for the given result length.
func (r *Reveal) State(total int) RevealState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.window >= total {
		return Exhausted
	}
	return Watching
}

// Advance grows the window by one step, capped at total. Returns true if
// the window actually grew (false once exhausted, even if the sentinel is
// still visible).
func (r *Reveal) Advance(total int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.window >= total {
		return false
	}
	r.window += r.step
	if r.window > total {
		r.window = total
	}
	return true
}

// Reset snaps the window back to the initial size. Called whenever any
// pipeline input changes.
func (r *Reveal) Reset() {
	r.mu.Lock()
	r.window = r.initial
	r.mu.Unlock()
}
