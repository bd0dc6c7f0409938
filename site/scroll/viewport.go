package scroll

import (
	"math"
	"time"
)

// DefaultDuration is the length of a smooth scroll animation.
const DefaultDuration = 450 * time.Millisecond

// Viewport is the scrollable surface: a window of fixed height over a stack
// of count sections. It stands in for the platform's own scrolling and
// reports every offset change to the observer during Advance.
//
// ScrollTo never reports synchronously, so callers see the new offset only
// on a later frame, the same way a page sees scroll events after requesting
// a smooth scroll.
type Viewport struct {
	Duration time.Duration

	// SnapIdle, when non-zero, snaps a user-scrolled offset to the nearest
	// section boundary after the viewport has been idle that long.
	SnapIdle time.Duration

	height float64
	count  int
	offset float64

	observe func(offset float64)

	anim     bool
	from, to float64
	elapsed  time.Duration

	dirty bool
	idle  time.Duration
	snap  bool
}

// NewViewport returns a viewport of the given height over count sections.
func NewViewport(height float64, count int) *Viewport {
	return &Viewport{
		Duration: DefaultDuration,
		height:   height,
		count:    count,
	}
}

// SetObserver installs the scroll observer.
func (v *Viewport) SetObserver(fn func(offset float64)) { v.observe = fn }

// Offset returns the current scroll offset.
func (v *Viewport) Offset() float64 { return v.offset }

// Height returns the viewport height.
func (v *Viewport) Height() float64 { return v.height }

// MaxOffset is the largest reachable offset: the top of the last section.
func (v *Viewport) MaxOffset() float64 {
	if v.count <= 1 || v.height <= 0 {
		return 0
	}
	return float64(v.count-1) * v.height
}

// Animating reports whether a smooth scroll is in flight.
func (v *Viewport) Animating() bool { return v.anim }

// Resize changes the viewport height, keeping the same relative position.
func (v *Viewport) Resize(height float64) {
	if height <= 0 || height == v.height {
		return
	}
	if v.height > 0 {
		ratio := height / v.height
		v.offset *= ratio
		v.from *= ratio
		v.to *= ratio
	}
	v.height = height
	v.offset = v.clamp(v.offset)
	v.dirty = true
}

// ScrollTo starts a smooth scroll to target, or redirects one in flight.
func (v *Viewport) ScrollTo(target float64) {
	target = v.clamp(target)
	v.snap = false
	v.idle = 0
	if v.Duration <= 0 {
		v.anim = false
		if target != v.offset {
			v.offset = target
			v.dirty = true
		}
		return
	}
	if !v.anim && target == v.offset {
		return
	}
	v.anim = true
	v.from = v.offset
	v.to = target
	v.elapsed = 0
}

// ScrollBy moves the viewport immediately, as a wheel or drag would. It
// cancels any smooth scroll in flight.
func (v *Viewport) ScrollBy(delta float64) {
	v.anim = false
	next := v.clamp(v.offset + delta)
	v.idle = 0
	v.snap = v.SnapIdle > 0
	if next == v.offset {
		return
	}
	v.offset = next
	v.dirty = true
}

// Advance steps the animation by dt and reports the offset to the observer
// if it changed since the last report.
func (v *Viewport) Advance(dt time.Duration) {
	if v.anim {
		v.elapsed += dt
		t := 1.0
		if v.Duration > 0 {
			t = float64(v.elapsed) / float64(v.Duration)
		}
		if t >= 1 {
			v.offset = v.to
			v.anim = false
		} else {
			v.offset = v.from + (v.to-v.from)*easeInOut(t)
		}
		v.dirty = true
	} else if v.snap {
		v.idle += dt
		if v.idle >= v.SnapIdle {
			v.snap = false
			if v.height > 0 {
				v.ScrollTo(math.Round(v.offset/v.height) * v.height)
			}
		}
	}

	if !v.dirty {
		return
	}
	v.dirty = false
	if v.observe != nil {
		v.observe(v.offset)
	}
}

func (v *Viewport) clamp(off float64) float64 {
	if math.IsNaN(off) || off < 0 {
		return 0
	}
	if hi := v.MaxOffset(); off > hi {
		return hi
	}
	return off
}

func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}
