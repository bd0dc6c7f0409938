package shell

import "time"

const (
	// FadeDuration is how long a panel takes to fade fully in or out.
	FadeDuration = 500 * time.Millisecond
	// SlideDuration is how long the menu and header take to change fully.
	SlideDuration = 300 * time.Millisecond
)

// Tween holds the displayed presentation values that chase a Frame's
// targets: panel opacity, menu slide and header opacity. It only affects
// what is drawn, never navigation.
type Tween struct {
	fade  []float32
	slide float32
	nav   float32
	clock time.Duration
}

// Advance moves the displayed values dt closer to f.
func (t *Tween) Advance(f Frame, dt time.Duration) {
	if len(t.fade) != len(f.Panels) {
		t.fade = make([]float32, len(f.Panels))
	}
	if dt < 0 {
		dt = 0
	}
	t.clock += dt

	fadeStep := float32(dt) / float32(FadeDuration)
	for i, p := range f.Panels {
		t.fade[i] = approach(t.fade[i], p.Opacity, fadeStep)
	}
	slideStep := float32(dt) / float32(SlideDuration)
	t.slide = approach(t.slide, boolf(f.Menu.Open), slideStep)
	t.nav = approach(t.nav, boolf(f.Nav.Opaque), slideStep)
}

// Opacity returns the displayed opacity of panel i.
func (t *Tween) Opacity(i int) float32 {
	if i < 0 || i >= len(t.fade) {
		return 0
	}
	return t.fade[i]
}

// MenuSlide returns how far the menu is open, 0..1.
func (t *Tween) MenuSlide() float32 { return t.slide }

// NavOpacity returns the header background opacity, 0..1.
func (t *Tween) NavOpacity() float32 { return t.nav }

// Clock returns the total time advanced, for looping animations.
func (t *Tween) Clock() time.Duration { return t.clock }

func approach(cur, target, step float32) float32 {
	if step <= 0 {
		return cur
	}
	if cur < target {
		cur += step
		if cur > target {
			cur = target
		}
	} else if cur > target {
		cur -= step
		if cur < target {
			cur = target
		}
	}
	return cur
}

func boolf(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
