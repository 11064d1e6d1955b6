package storefront

import (
	"sync"
)

// Rect is an element's bounding box in viewport coordinates (pixels, origin
// top-left). The presentation layer reports these; no rendering framework
// is assumed here.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
}

// FullyVisible reports whether the sentinel lies entirely inside the
// viewport box.
func FullyVisible(sentinel, viewport Rect) bool {
	return sentinel.Top >= viewport.Top &&
		sentinel.Left >= viewport.Left &&
		sentinel.Bottom <= viewport.Bottom &&
		sentinel.Right <= viewport.Right
}

// SentinelObserver edge-triggers on the sentinel becoming fully visible.
// Report feeds it one observation; it returns true only on the transition
// into visibility. Rearm re-establishes the observation (the window grew,
// the old subscription is torn down), so a still-visible sentinel fires
// again on the next report.
type SentinelObserver struct {
	mu      sync.Mutex
	visible bool
}

func NewSentinelObserver() *SentinelObserver {
	return &SentinelObserver{}
}

// Report records an observation and returns true on the rising edge.
func (o *SentinelObserver) Report(sentinel, viewport Rect) bool {
	now := FullyVisible(sentinel, viewport)
	o.mu.Lock()
	defer o.mu.Unlock()
	fired := now && !o.visible
	o.visible = now
	return fired
}

// Rearm clears the tracked visibility so the current state is re-observed.
func (o *SentinelObserver) Rearm() {
	o.mu.Lock()
	o.visible = false
	o.mu.Unlock()
}
