package storefront

import (
	"testing"
)

func TestReveal_GrowsInFixedSteps(t *testing.T) {
	r := NewReveal(8, 8)
	total := 30

	if got := r.Window(total); got != 8 {
		t.Fatalf("initial window = %d, want 8", got)
	}
	if !r.Advance(total) {
		t.Fatal("Advance should grow the window")
	}
	if got := r.Window(total); got != 16 {
		t.Errorf("window = %d, want 16", got)
	}
	r.Advance(total)
	r.Advance(total)
	if got := r.Window(total); got != 30 {
		t.Errorf("window = %d, want capped at 30", got)
	}
}

func TestReveal_WindowNeverExceedsTotal(t *testing.T) {
	r := NewReveal(8, 8)
	if got := r.Window(3); got != 3 {
		t.Errorf("window = %d, want clamped to 3", got)
	}
	if r.State(3) != Exhausted {
		t.Error("state should be exhausted when window covers the result")
	}
}

func TestReveal_NoIncrementsOnceExhausted(t *testing.T) {
	r := NewReveal(8, 8)
	total := 10
	r.Advance(total) // window = 10 (capped)
	if r.State(total) != Exhausted {
		t.Fatal("state should be exhausted")
	}
	if r.Advance(total) {
		t.Error("Advance should refuse once exhausted, even if the sentinel stays visible")
	}
	if got := r.Window(total); got != 10 {
		t.Errorf("window = %d, want 10", got)
	}
}

func TestReveal_RearmsWhenResultGrows(t *testing.T) {
	r := NewReveal(8, 8)
	r.Advance(10) // exhausted at 10
	if r.State(10) != Exhausted {
		t.Fatal("exhausted expected")
	}
	// A filter change enlarged the result set past the window.
	if r.State(40) != Watching {
		t.Error("state should return to watching when the result grows past the window")
	}
	if !r.Advance(40) {
		t.Error("Advance should work again after the result grew")
	}
}

func TestReveal_ResetSnapsBackToInitial(t *testing.T) {
	r := NewReveal(8, 8)
	r.Advance(100)
	r.Advance(100)
	r.Reset()
	if got := r.Window(100); got != 8 {
		t.Errorf("window = %d after Reset, want 8", got)
	}
}

func TestFullyVisible(t *testing.T) {
	viewport := Rect{Top: 0, Left: 0, Bottom: 800, Right: 600}

	inside := Rect{Top: 700, Left: 0, Bottom: 750, Right: 600}
	if !FullyVisible(inside, viewport) {
		t.Error("sentinel inside the viewport should be fully visible")
	}
	below := Rect{Top: 790, Left: 0, Bottom: 840, Right: 600}
	if FullyVisible(below, viewport) {
		t.Error("partially clipped sentinel is not fully visible")
	}
}

func TestSentinelObserver_EdgeTriggers(t *testing.T) {
	viewport := Rect{Top: 0, Left: 0, Bottom: 800, Right: 600}
	inside := Rect{Top: 700, Left: 0, Bottom: 750, Right: 600}
	outside := Rect{Top: 900, Left: 0, Bottom: 950, Right: 600}

	o := NewSentinelObserver()
	if !o.Report(inside, viewport) {
		t.Fatal("first visible report should fire")
	}
	if o.Report(inside, viewport) {
		t.Error("repeated visible report should not fire without a rearm")
	}
	if o.Report(outside, viewport) {
		t.Error("invisible report should never fire")
	}
	if !o.Report(inside, viewport) {
		t.Error("re-entering visibility should fire again")
	}

	o.Rearm()
	if !o.Report(inside, viewport) {
		t.Error("after Rearm a visible sentinel fires immediately")
	}
}
