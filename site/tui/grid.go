package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"t219/site/content"
	"t219/site/shell"
)

type cell struct {
	r    rune
	fg   string
	bg   string
	bold bool
	hit  shell.Control
}

// grid is a screen of styled cells. Every drawn control also records its
// hit target so mouse clicks map back to shell controls.
type grid struct {
	w, h  int
	cells []cell
}

func (g *grid) reset(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g.w, g.h = w, h
	if cap(g.cells) < w*h {
		g.cells = make([]cell, w*h)
	} else {
		g.cells = g.cells[:w*h]
	}
	for i := range g.cells {
		g.cells[i] = cell{r: ' '}
	}
}

func (g *grid) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return nil
	}
	return &g.cells[y*g.w+x]
}

func (g *grid) put(x, y int, r rune, fg string, bold bool) {
	if c := g.at(x, y); c != nil {
		c.r, c.fg, c.bold = r, fg, bold
	}
}

// text writes s starting at x and returns the column after it.
func (g *grid) text(x, y int, s string, fg string, bold bool) int {
	for _, r := range s {
		g.put(x, y, r, fg, bold)
		x++
	}
	return x
}

func (g *grid) centered(y int, s string, fg string, bold bool) {
	g.text((g.w-len([]rune(s)))/2, y, s, fg, bold)
}

func (g *grid) clear(x0, y, w int, bg string) {
	for x := x0; x < x0+w; x++ {
		if c := g.at(x, y); c != nil {
			*c = cell{r: ' ', bg: bg}
		}
	}
}

func (g *grid) mark(x0, y, w int, ctl shell.Control) {
	for x := x0; x < x0+w; x++ {
		if c := g.at(x, y); c != nil {
			c.hit = ctl
		}
	}
}

func (g *grid) hitAt(x, y int) shell.Control {
	if c := g.at(x, y); c != nil {
		return c.hit
	}
	return shell.Control{}
}

// row renders line y, grouping cells that share a style.
func (g *grid) row(y int) string {
	var b strings.Builder
	start := 0
	for x := 1; x <= g.w; x++ {
		if x < g.w && sameStyle(g.cells[y*g.w+x], g.cells[y*g.w+start]) {
			continue
		}
		run := g.cells[y*g.w+start : y*g.w+x]
		var s strings.Builder
		for _, c := range run {
			s.WriteRune(c.r)
		}
		b.WriteString(styleOf(run[0]).Render(s.String()))
		start = x
	}
	return b.String()
}

func (g *grid) String() string {
	lines := make([]string, g.h)
	for y := range lines {
		lines[y] = g.row(y)
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}

func styleOf(c cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.fg != "" {
		s = s.Foreground(lipgloss.Color(c.fg))
	}
	if c.bg != "" {
		s = s.Background(lipgloss.Color(c.bg))
	}
	if c.bold {
		s = s.Bold(true)
	}
	return s
}

// dim darkens c towards black by opacity o and returns it as hex.
func dim(c content.Color, o float32) string {
	if o >= 1 {
		return c.Hex()
	}
	if o < 0 {
		o = 0
	}
	return content.Color{
		R: uint8(float32(c.R) * o),
		G: uint8(float32(c.G) * o),
		B: uint8(float32(c.B) * o),
	}.Hex()
}
