package scroll

import (
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

func advanceUntilIdle(v *Viewport, limit int) int {
	for i := 0; i < limit; i++ {
		v.Advance(frame)
		if !v.Animating() {
			return i + 1
		}
	}
	return limit
}

func TestViewportSmoothScrollReachesTarget(t *testing.T) {
	v := NewViewport(800, 5)
	var observed []float64
	v.SetObserver(func(off float64) { observed = append(observed, off) })

	v.ScrollTo(2400)
	if len(observed) != 0 {
		t.Fatalf("ScrollTo reported synchronously: %v", observed)
	}
	if !v.Animating() {
		t.Fatal("expected animation in flight")
	}

	advanceUntilIdle(v, 100)
	if v.Offset() != 2400 {
		t.Fatalf("offset = %v, want 2400", v.Offset())
	}
	if len(observed) < 2 {
		t.Fatalf("expected intermediate scroll events, got %v", observed)
	}
	for i := 1; i < len(observed); i++ {
		if observed[i] < observed[i-1] {
			t.Fatalf("offsets not monotonic: %v", observed)
		}
	}
	if last := observed[len(observed)-1]; last != 2400 {
		t.Fatalf("last observed = %v, want 2400", last)
	}
}

func TestViewportRedirect(t *testing.T) {
	v := NewViewport(800, 5)
	v.ScrollTo(3200)
	for i := 0; i < 5; i++ {
		v.Advance(frame)
	}
	mid := v.Offset()
	if mid <= 0 || mid >= 3200 {
		t.Fatalf("mid-flight offset = %v", mid)
	}

	v.ScrollTo(800)
	advanceUntilIdle(v, 100)
	if v.Offset() != 800 {
		t.Fatalf("offset after redirect = %v, want 800", v.Offset())
	}
}

func TestViewportClamps(t *testing.T) {
	v := NewViewport(800, 5)
	v.Duration = 0

	v.ScrollTo(99999)
	v.Advance(frame)
	if v.Offset() != 3200 {
		t.Fatalf("offset = %v, want 3200", v.Offset())
	}
	v.ScrollBy(-99999)
	if v.Offset() != 0 {
		t.Fatalf("offset = %v, want 0", v.Offset())
	}
}

func TestViewportUserScrollCancelsAnimation(t *testing.T) {
	v := NewViewport(800, 5)
	v.ScrollTo(3200)
	v.Advance(frame)
	v.ScrollBy(10)
	if v.Animating() {
		t.Fatal("user scroll did not cancel animation")
	}
	before := v.Offset()
	for i := 0; i < 50; i++ {
		v.Advance(frame)
	}
	if v.Offset() != before {
		t.Fatalf("offset moved after cancel: %v -> %v", before, v.Offset())
	}
}

func TestViewportNoSnapByDefault(t *testing.T) {
	v := NewViewport(800, 5)
	v.ScrollBy(1000)
	for i := 0; i < 200; i++ {
		v.Advance(frame)
	}
	if v.Offset() != 1000 {
		t.Fatalf("offset = %v, want 1000", v.Offset())
	}
}

func TestViewportSnapAfterIdle(t *testing.T) {
	v := NewViewport(800, 5)
	v.SnapIdle = 100 * time.Millisecond
	v.ScrollBy(1300)
	for i := 0; i < 200; i++ {
		v.Advance(frame)
	}
	if v.Offset() != 1600 {
		t.Fatalf("offset = %v, want snap to 1600", v.Offset())
	}
}

func TestViewportDrivesSynchronizer(t *testing.T) {
	v := NewViewport(800, 5)
	s := New(5, 800, v)
	v.SetObserver(s.Observe)

	s.JumpTo(3)
	if got := s.State().ActiveIndex; got != 0 {
		t.Fatalf("ActiveIndex = %d before any frame, want 0", got)
	}
	advanceUntilIdle(v, 100)
	if got := s.State().ActiveIndex; got != 3 {
		t.Fatalf("ActiveIndex = %d after the scroll settled, want 3", got)
	}
	if !s.State().ScrolledPastThreshold {
		t.Fatal("expected scrolled past threshold")
	}

	s.Navigate(Next)
	s.Navigate(Next)
	advanceUntilIdle(v, 100)
	if got := s.State().ActiveIndex; got != 4 {
		t.Fatalf("ActiveIndex = %d, want 4", got)
	}
}

func TestViewportResizeKeepsRelativePosition(t *testing.T) {
	v := NewViewport(800, 5)
	v.Duration = 0
	v.ScrollTo(1600)
	v.Advance(frame)
	var got float64
	v.SetObserver(func(off float64) { got = off })
	v.Resize(400)
	v.Advance(frame)
	if got != 800 {
		t.Fatalf("offset after resize = %v, want 800", got)
	}
}
