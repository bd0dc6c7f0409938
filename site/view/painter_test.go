package view

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"t219/hal"
	"t219/site/content"
	"t219/site/scene"
	"t219/site/scroll"
	"t219/site/shell"
)

type memFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newMemFB(w, h int) *memFB { return &memFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) ClearRGB(r, g, b uint8)  {}
func (f *memFB) Present() error          { f.presents++; return nil }

func newTestPainter(t *testing.T, w, h int) (*Painter, *memFB) {
	t.Helper()
	fb := newMemFB(w, h)
	bg := scene.New(scene.Config{Tubular: 48, Radial: 8})
	return New(fb, bg), fb
}

func TestAdvanceFadesTowardsTargets(t *testing.T) {
	p, _ := newTestPainter(t, 320, 240)
	cat := content.Default()
	f := shell.Render(cat, scroll.State{}, 0, 320, 240, -1)

	p.Advance(f, shell.FadeDuration/2)
	if got := p.Tween().Opacity(0); got < 0.49 || got > 0.51 {
		t.Fatalf("opacity after half the fade = %v, want 0.5", got)
	}
	if got := p.Tween().Opacity(1); got != 0 {
		t.Fatalf("inactive panel opacity = %v, want 0", got)
	}

	p.Advance(f, shell.FadeDuration)
	if got := p.Tween().Opacity(0); got != 1 {
		t.Fatalf("opacity after the full fade = %v, want 1", got)
	}

	f = shell.Render(cat, scroll.State{ActiveIndex: 1, ScrolledPastThreshold: true}, 240, 320, 240, -1)
	p.Advance(f, shell.FadeDuration/5)
	if got0, got1 := p.Tween().Opacity(0), p.Tween().Opacity(1); got0 >= 1 || got1 <= 0 {
		t.Fatalf("cross-fade stalled: old %v new %v", got0, got1)
	}
	p.Advance(f, 2*shell.FadeDuration)
	if p.Tween().Opacity(0) != 0 || p.Tween().Opacity(1) != 1 {
		t.Fatalf("cross-fade ended at %v / %v", p.Tween().Opacity(0), p.Tween().Opacity(1))
	}
	if p.Tween().Opacity(-1) != 0 || p.Tween().Opacity(99) != 0 {
		t.Fatal("out of range opacity not zero")
	}
}

func TestAdvanceSlidesMenu(t *testing.T) {
	p, _ := newTestPainter(t, 320, 240)
	cat := content.Default()
	open := shell.Render(cat, scroll.State{MenuOpen: true}, 0, 320, 240, 0)

	p.Advance(open, shell.SlideDuration/3)
	if s := p.Tween().MenuSlide(); s <= 0 || s >= 1 {
		t.Fatalf("slide mid-way = %v", s)
	}
	p.Advance(open, shell.SlideDuration)
	if p.Tween().MenuSlide() != 1 {
		t.Fatalf("slide = %v, want 1", p.Tween().MenuSlide())
	}

	closed := shell.Render(cat, scroll.State{}, 0, 320, 240, -1)
	p.Advance(closed, shell.SlideDuration)
	if p.Tween().MenuSlide() != 0 {
		t.Fatalf("slide = %v after closing, want 0", p.Tween().MenuSlide())
	}
}

func TestPaintDrawsKnotAndChrome(t *testing.T) {
	const w, h = 320, 240
	p, fb := newTestPainter(t, w, h)
	cat := content.Default()
	st := scroll.State{ActiveIndex: 2, ScrolledPastThreshold: true}
	f := shell.Render(cat, st, 2*h, w, h, -1)
	l := shell.NewLayout(w, h, cat.Len())

	p.Advance(f, time.Second)
	if err := p.Paint(f, l, 0.3); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if fb.presents != 1 {
		t.Fatalf("presents = %d, want 1", fb.presents)
	}

	d := newFBDisplay(fb)
	lit := 0
	for y := h / 4; y < 3*h/4; y++ {
		for x := w / 4; x < 3*w/4; x++ {
			if c := d.get(x, y); c.R|c.G|c.B != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("centre of the active panel is black")
	}

	dot := l.Dots[2]
	want := cat.At(2).Accent
	got := d.get(dot.X+dot.W/2, dot.Y+dot.H/2)
	if rgb565From888(got.R, got.G, got.B) != rgb565From888(want.R, want.G, want.B) {
		t.Fatalf("active dot = %+v, want accent %s", got, want.Hex())
	}

	nav := d.get(l.MenuButton.X-4, 1)
	if nav.R < 200 || nav.G < 200 || nav.B < 200 {
		t.Fatalf("opaque header pixel = %+v, want near white", nav)
	}
}

func TestPaintHiddenPanelsStayBlack(t *testing.T) {
	const w, h = 200, 160
	p, fb := newTestPainter(t, w, h)
	cat := content.Default()
	f := shell.Render(cat, scroll.State{}, 0, w, h, -1)
	l := shell.NewLayout(w, h, cat.Len())

	// No Advance: every panel is still at opacity zero.
	if err := p.Paint(f, l, 0); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	d := newFBDisplay(fb)
	if c := d.get(w/2, h/2); c.R|c.G|c.B != 0 {
		t.Fatalf("centre pixel %+v lit before the fade-in", c)
	}
}

func TestWrapSpans(t *testing.T) {
	fs := fontsFor(480)
	sec := content.Default().At(1)
	const maxW = 180

	lines := wrapSpans(sec.Spans(), fs, maxW)
	if len(lines) < 2 {
		t.Fatalf("got %d lines, want the body wrapped", len(lines))
	}

	var words []string
	for _, ln := range lines {
		if ln.w > maxW && len(ln.runs) > 1 {
			t.Fatalf("line %+v wider than %d", ln, maxW)
		}
		for _, r := range ln.runs {
			if r.text != " " {
				words = append(words, r.text)
			}
		}
	}
	if got, want := strings.Join(words, " "), strings.Join(strings.Fields(sec.PlainBody()), " "); got != want {
		t.Fatalf("wrapped text = %q, want %q", got, want)
	}
}

func TestWrapSpansUsesStrongFont(t *testing.T) {
	fs := fontsFor(480)
	spans := []content.Span{
		{Text: "450+", Style: content.StyleStrong},
		{Text: " team members"},
	}
	lines := wrapSpans(spans, fs, 1000)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].runs[0].font != fs.strong {
		t.Fatal("strong span not set in the bold font")
	}
	if lines[0].runs[2].font != fs.body {
		t.Fatal("plain span not set in the body font")
	}
}

func TestDisplayBlend(t *testing.T) {
	fb := newMemFB(4, 4)
	d := newFBDisplay(fb)

	d.set(1, 1, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x80})
	c := d.get(1, 1)
	if c.R < 0x70 || c.R > 0x90 {
		t.Fatalf("half white over black = %+v", c)
	}

	d.set(2, 2, color.RGBA{R: 0xFF, A: 0})
	if c := d.get(2, 2); c.R != 0 {
		t.Fatalf("transparent write changed the pixel: %+v", c)
	}

	if err := d.FillRectangle(-2, -2, 100, 100, color.RGBA{G: 0xFF, A: 0xFF}); err != nil {
		t.Fatal(err)
	}
	if c := d.get(3, 3); c.G != 0xFF {
		t.Fatalf("clipped fill missed the corner: %+v", c)
	}
	if x, y := d.Size(); x != 4 || y != 4 {
		t.Fatalf("Size = %d×%d", x, y)
	}
}
