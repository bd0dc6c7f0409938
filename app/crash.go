package app

import (
	"errors"
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"t219/hal"
	"t219/internal/buildinfo"
)

// ErrCrashed wraps a panic recovered from the step loop.
var ErrCrashed = errors.New("t219 crashed")

var (
	crashBG = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	crashFG = color.RGBA{A: 0xFF}
)

// crash logs the panic value and stack, paints them on the display and
// marks the presentation dead.
func (p *presentation) crash(v any) error {
	p.crashed = true

	lines := []string{
		"T219 crashed (" + buildinfo.Short() + ")",
		fmt.Sprintf("panic: %v", v),
	}
	if st := debug.Stack(); len(st) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(st), "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if p.log != nil {
		for _, line := range lines {
			p.log.WriteLineString(line)
		}
	}
	if p.fb != nil && p.fb.Buffer() != nil {
		drawCrash(p.fb, lines)
	}

	if p.cfg.ExitOnPanic {
		return fmt.Errorf("%w: %v", ErrCrashed, v)
	}
	return nil
}

func drawCrash(fb hal.Framebuffer, lines []string) {
	fb.ClearRGB(crashBG.R, crashBG.G, crashBG.B)

	font := &proggy.TinySZ8pt7b
	lineH := int16(font.GetYAdvance())
	_, adv := tinyfont.LineWidth(font, "0")
	charW := int16(adv)
	if charW <= 0 || lineH <= 0 {
		_ = fb.Present()
		return
	}

	d := rawDisplay{fb: fb}
	cols := int16(fb.Width()) / charW
	if cols <= 0 {
		cols = 1
	}
	maxH := int16(fb.Height())

	y := lineH
	for _, line := range lines {
		for len(line) > 0 {
			if y > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, font, 2, y, chunk, crashFG)
			y += lineH
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

// takeRunes splits s after n runes.
func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i := 0
	for count := int16(0); i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}

// rawDisplay is the smallest drivers.Displayer over an RGB565 framebuffer.
// It backs the splash and crash screens, which must not depend on the
// painter.
type rawDisplay struct {
	fb hal.Framebuffer
}

func (d rawDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d rawDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= d.fb.Width() || iy >= d.fb.Height() {
		return
	}
	buf := d.fb.Buffer()
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	pixel := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d rawDisplay) Display() error { return nil }
