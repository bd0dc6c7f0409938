package scene

import (
	"testing"

	"t219/site/content"
	"t219/site/quarkgl"
)

func TestSpinnerIndependentSteps(t *testing.T) {
	s := NewSpinner()
	s.Step(200)
	want := float32(200 * SpinPerFrame)
	if d := s.Angle - want; d > 1e-4 || d < -1e-4 {
		t.Fatalf("Angle = %v, want %v", s.Angle, want)
	}
	s.Step(0)
	s.Step(-3)
	if d := s.Angle - want; d > 1e-4 || d < -1e-4 {
		t.Fatalf("non-positive steps moved the angle to %v", s.Angle)
	}
}

func TestBackgroundTintsWithAccent(t *testing.T) {
	b := New(Config{Tubular: 48, Radial: 8})
	tg := quarkgl.NewRGB565Target(80, 60)

	red := content.Color{R: 0xFF}
	b.Render(tg, red, 0)

	var sawRed bool
	for y := 0; y < tg.H && !sawRed; y++ {
		for x := 0; x < tg.W; x++ {
			p := tg.Pixel(x, y)
			r, g, bl := p>>11, (p>>5)&0x3F, p&0x1F
			if r > 0 && g == 0 && bl == 0 {
				sawRed = true
				break
			}
		}
	}
	if !sawRed {
		t.Fatal("expected pure red shading for a red accent")
	}
}

func TestDragOrbitsClampedPitch(t *testing.T) {
	b := New(Config{Tubular: 12, Radial: 4})
	b.Drag(100, 0)
	yaw, pitch := b.Orbit()
	if yaw == 0 || pitch != 0 {
		t.Fatalf("horizontal drag: yaw=%v pitch=%v", yaw, pitch)
	}
	b.Drag(0, -100000)
	if _, pitch := b.Orbit(); pitch > 1.4+1e-6 {
		t.Fatalf("pitch %v exceeds limit", pitch)
	}
}

func TestTitleAnchorAboveCentre(t *testing.T) {
	b := New(Config{Tubular: 12, Radial: 4})
	tg := quarkgl.NewRGB565Target(200, 150)
	x, y, ok := b.TitleAnchor(tg)
	if !ok {
		t.Fatal("anchor not visible")
	}
	if y >= tg.H/2 {
		t.Fatalf("anchor row %d not above centre %d", y, tg.H/2)
	}
	if x < tg.W/2-2 || x > tg.W/2+2 {
		t.Fatalf("anchor column %d not centred", x)
	}
}

func TestToggleWireframe(t *testing.T) {
	b := New(Config{Tubular: 12, Radial: 4})
	if b.Wireframe() {
		t.Fatal("default should be solid")
	}
	b.ToggleWireframe()
	if !b.Wireframe() {
		t.Fatal("toggle did not switch to wireframe")
	}
}
