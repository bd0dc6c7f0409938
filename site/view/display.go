package view

import (
	"image/color"

	"t219/hal"

	"tinygo.org/x/drivers"
)

// fbDisplay adapts a RGB565 framebuffer to drivers.Displayer so tinyfont can
// draw into it. Colors with A < 0xFF are blended over the existing pixel.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) offset(x, y int) (int, bool) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return 0, false
	}
	if x < 0 || y < 0 || x >= d.fb.Width() || y >= d.fb.Height() {
		return 0, false
	}
	off := y*d.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(d.fb.Buffer()) {
		return 0, false
	}
	return off, true
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.set(int(x), int(y), c)
}

func (d *fbDisplay) set(x, y int, c color.RGBA) {
	off, ok := d.offset(x, y)
	if !ok || c.A == 0 {
		return
	}
	buf := d.fb.Buffer()
	if c.A != 0xFF {
		dst := uint16(buf[off]) | uint16(buf[off+1])<<8
		c = blend(c, dst)
	}
	p := rgb565From888(c.R, c.G, c.B)
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

func (d *fbDisplay) get(x, y int) color.RGBA {
	off, ok := d.offset(x, y)
	if !ok {
		return color.RGBA{}
	}
	buf := d.fb.Buffer()
	r, g, b := rgb888From565(uint16(buf[off]) | uint16(buf[off+1])<<8)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.fill(int(x), int(y), int(width), int(height), c)
	return nil
}

func (d *fbDisplay) fill(x, y, width, height int, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 || c.A == 0 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	w := d.fb.Width()
	h := d.fb.Height()
	x0 := clampInt(x, 0, w)
	y0 := clampInt(y, 0, h)
	x1 := clampInt(x+width, 0, w)
	y1 := clampInt(y+height, 0, h)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	if c.A != 0xFF {
		for py := y0; py < y1; py++ {
			for px := x0; px < x1; px++ {
				d.set(px, py, c)
			}
		}
		return
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// line draws a 1px Bresenham line.
func (d *fbDisplay) line(x0, y0, x1, y1 int, c color.RGBA) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		d.set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// thickLine draws a line w pixels wide by offsetting it perpendicular to
// its major axis.
func (d *fbDisplay) thickLine(x0, y0, x1, y1, w int, c color.RGBA) {
	steep := absInt(y1-y0) > absInt(x1-x0)
	for i := -(w / 2); i < w-w/2; i++ {
		if steep {
			d.line(x0+i, y0, x1+i, y1, c)
		} else {
			d.line(x0, y0+i, x1, y1+i, c)
		}
	}
}

// disc fills a circle centred on (cx, cy).
func (d *fbDisplay) disc(cx, cy, r int, c color.RGBA) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				d.set(cx+x, cy+y, c)
			}
		}
	}
}

func blend(src color.RGBA, dst565 uint16) color.RGBA {
	dr, dg, db := rgb888From565(dst565)
	a := uint32(src.A)
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(0xFF-a)) / 0xFF)
	}
	return color.RGBA{R: mix(src.R, dr), G: mix(src.G, dg), B: mix(src.B, db), A: 0xFF}
}

// faded scales c's alpha by opacity o.
func faded(c color.RGBA, o float32) color.RGBA {
	if o >= 1 {
		return c
	}
	if o <= 0 {
		c.A = 0
		return c
	}
	c.A = uint8(float32(c.A) * o)
	return c
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8(((p >> 11) & 0x1F) * 255 / 31)
	g = uint8(((p >> 5) & 0x3F) * 255 / 63)
	b = uint8((p & 0x1F) * 255 / 31)
	return r, g, b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
