// Package view paints shell frames into an RGB565 framebuffer.
package view

import (
	"image/color"
	"math"
	"time"

	"t219/hal"
	"t219/site/content"
	"t219/site/quarkgl"
	"t219/site/scene"
	"t219/site/shell"
)

var (
	colorBG      = color.RGBA{A: 0xFF}
	colorFG      = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorNavBG   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xE6}
	colorNavText = color.RGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}
	colorNavIcon = color.RGBA{R: 0x25, G: 0x63, B: 0xEB, A: 0xFF}
	colorMenuBG  = color.RGBA{A: 0xF2}
	colorArrowBG = color.RGBA{A: 0x80}
)

// Painter owns the displayed (tweened) presentation state and draws
// frames. It is not safe for concurrent use.
type Painter struct {
	fb hal.Framebuffer
	d  *fbDisplay
	bg *scene.Background

	knot  *quarkgl.RGB565Target
	fonts fontSet

	tw shell.Tween

	wrapW   int
	wrapped map[int][]textLine
}

// New returns a painter for fb drawing the knot from bg.
func New(fb hal.Framebuffer, bg *scene.Background) *Painter {
	w, h := fb.Width(), fb.Height()
	return &Painter{
		fb:      fb,
		d:       newFBDisplay(fb),
		bg:      bg,
		knot:    quarkgl.NewRGB565Target(w, h),
		fonts:   fontsFor(h),
		wrapped: make(map[int][]textLine),
	}
}

// Tween exposes the displayed presentation values.
func (p *Painter) Tween() *shell.Tween { return &p.tw }

// Advance moves the displayed state dt closer to f.
func (p *Painter) Advance(f shell.Frame, dt time.Duration) { p.tw.Advance(f, dt) }

// Paint draws f using layout l with the knot rotated by angle and presents
// the framebuffer.
func (p *Painter) Paint(f shell.Frame, l shell.Layout, angle float32) error {
	w, h := p.fb.Width(), p.fb.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	if p.knot.W != w || p.knot.H != h {
		p.knot = quarkgl.NewRGB565Target(w, h)
		p.fonts = fontsFor(h)
		p.wrapW = 0
	}
	p.d.fill(0, 0, w, h, colorBG)

	visible := f.Visible()
	rendered := false
	for _, pn := range visible {
		o := p.tw.Opacity(pn.Index)
		if o <= 0 {
			continue
		}
		if !rendered {
			p.bg.Render(p.knot, f.Active.Accent, angle)
			rendered = true
		}
		p.compositeKnot(pn.Y, o)
		p.drawPanel(f, l, pn, o)
	}

	p.drawDots(f, l)
	p.drawArrows(l)
	p.drawMenu(f, l)
	p.drawNav(f, l)

	return p.fb.Present()
}

// compositeKnot copies the offscreen knot into the panel whose top edge is
// at top, darkened by opacity o.
func (p *Painter) compositeKnot(top int, o float32) {
	w, h := p.knot.W, p.knot.H
	y0 := clampInt(top, 0, h)
	y1 := clampInt(top+h, 0, h)
	for y := y0; y < y1; y++ {
		sy := y - top
		for x := 0; x < w; x++ {
			px := p.knot.Pixel(x, sy)
			if px == 0 {
				continue
			}
			r, g, b := rgb888From565(px)
			p.d.set(x, y, color.RGBA{
				R: uint8(float32(r) * o),
				G: uint8(float32(g) * o),
				B: uint8(float32(b) * o),
				A: 0xFF,
			})
		}
	}
}

func (p *Painter) drawPanel(f shell.Frame, l shell.Layout, pn shell.Panel, o float32) {
	w, h := l.W, l.H
	accent := rgba(f.Active.Accent)

	if ax, ay, ok := p.bg.TitleAnchor(p.knot); ok {
		drawCentered(p.d, p.fonts.label, f.Active.Title, ax, pn.Y+ay, faded(accent, o))
	}

	lines := p.wrap(pn.Index, pn.Section, w)
	titleH := lineHeight(p.fonts.title)
	bodyH := lineHeight(p.fonts.body)
	block := titleH + bodyH/2 + len(lines)*bodyH
	y := pn.Y + (h-block)/2 + titleH

	drawCentered(p.d, p.fonts.title, pn.Section.Title, w/2, y, faded(rgba(pn.Section.Accent), o))
	y += bodyH / 2
	for _, ln := range lines {
		y += bodyH
		drawLine(p.d, ln, (w-ln.w)/2, y, faded(colorFG, o))
	}

	if pn.ShowChevron {
		r := l.ChevronAt(pn.Y)
		secs := p.tw.Clock().Seconds()
		bounce := int(-0.25 * float64(r.H) * math.Abs(math.Cos(math.Pi*secs)))
		cx := r.X + r.W/2
		top := r.Y + bounce + r.H/4
		c := faded(colorFG, o)
		p.d.thickLine(r.X+2, top, cx, top+r.H/2, 2, c)
		p.d.thickLine(cx, top+r.H/2, r.X+r.W-2, top, 2, c)
	}
}

func (p *Painter) wrap(i int, sec content.Section, w int) []textLine {
	maxW := w - 48
	if maxW > 640 {
		maxW = 640
	}
	if maxW < 32 {
		maxW = 32
	}
	if p.wrapW != maxW {
		p.wrapW = maxW
		p.wrapped = make(map[int][]textLine)
	}
	lines, ok := p.wrapped[i]
	if !ok {
		lines = wrapSpans(sec.Spans(), p.fonts, maxW)
		p.wrapped[i] = lines
	}
	return lines
}

func (p *Painter) drawDots(f shell.Frame, l shell.Layout) {
	for i, d := range f.Dots {
		if i >= len(l.Dots) {
			break
		}
		r := l.Dots[i]
		c := rgba(d.Color)
		c.A = d.Alpha
		p.d.disc(r.X+r.W/2, r.Y+r.H/2, r.W/2, c)
	}
}

func (p *Painter) drawArrows(l shell.Layout) {
	for i, r := range []shell.Rect{l.Prev, l.Next} {
		cx, cy := r.X+r.W/2, r.Y+r.H/2
		p.d.disc(cx, cy, r.W/2+4, colorArrowBG)
		dx := r.W / 8
		if i == 1 {
			dx = -dx
		}
		p.d.thickLine(cx+dx, cy-r.H/4, cx-dx, cy, 2, colorFG)
		p.d.thickLine(cx-dx, cy, cx+dx, cy+r.H/4, 2, colorFG)
	}
}

func (p *Painter) drawMenu(f shell.Frame, l shell.Layout) {
	slide := p.tw.MenuSlide()
	if slide <= 0 {
		return
	}
	shift := int((1 - slide) * float32(l.Menu.W))
	x := l.Menu.X + shift
	p.d.fill(x, 0, l.Menu.W, l.H, colorMenuBG)

	for i, it := range f.Menu.Items {
		if i >= len(l.MenuItems) {
			break
		}
		r := l.MenuItems[i]
		r.X += shift
		font := p.fonts.body
		if it.Bold {
			font = p.fonts.strong
		}
		c := rgba(it.Accent)
		base := r.Y + r.H - (r.H-lineHeight(font))/2 - 4
		writeText(p.d, font, r.X+8, base, it.Title, c)
		if it.Focus {
			p.d.fill(r.X, r.Y+4, 3, r.H-8, c)
		}
	}
}

func (p *Painter) drawNav(f shell.Frame, l shell.Layout) {
	nb := l.NavBar
	text := colorFG
	icon := colorFG
	if a := p.tw.NavOpacity(); a > 0 {
		p.d.fill(nb.X, nb.Y, nb.W, nb.H, faded(colorNavBG, a))
	}
	if f.Nav.Opaque {
		text = colorNavText
		icon = colorNavIcon
	}

	// Train: body, window strip and two wheels.
	s := nb.H * 3 / 5
	ix, iy := 8, (nb.H-s)/2
	p.d.fill(ix, iy, s, s*3/4, icon)
	p.d.fill(ix+2, iy+2, s-4, s/4, faded(colorBG, 0.6))
	p.d.disc(ix+s/4, iy+s*3/4+1, s/8+1, icon)
	p.d.disc(ix+s*3/4, iy+s*3/4+1, s/8+1, icon)

	base := nb.Y + (nb.H+lineHeight(p.fonts.small))/2 - 3
	writeText(p.d, p.fonts.small, ix+s+6, base, shell.Brand, text)

	mb := l.MenuButton
	cx, cy := mb.X+mb.W/2, mb.Y+mb.H/2
	k := mb.W / 4
	if f.Menu.Open {
		p.d.thickLine(cx-k, cy-k, cx+k, cy+k, 2, text)
		p.d.thickLine(cx-k, cy+k, cx+k, cy-k, 2, text)
		return
	}
	for _, dy := range []int{-k, 0, k} {
		p.d.fill(cx-k, cy+dy-1, 2*k, 2, text)
	}
}

func rgba(c content.Color) color.RGBA { return c.RGBA8() }
