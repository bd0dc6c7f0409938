package view

import (
	"image/color"
	"strings"

	"t219/site/content"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"
)

type fontSet struct {
	title  tinyfont.Fonter
	label  tinyfont.Fonter
	body   tinyfont.Fonter
	strong tinyfont.Fonter
	em     tinyfont.Fonter
	small  tinyfont.Fonter
}

// fontsFor picks a font set for a viewport height. Displays shorter than
// 400px (the PicoCalc panel) get the smaller sizes.
func fontsFor(h int) fontSet {
	if h < 400 {
		return fontSet{
			title:  &freesans.Bold12pt7b,
			label:  &freesans.Bold9pt7b,
			body:   &proggy.TinySZ8pt7b,
			strong: &proggy.TinySZ8pt7b,
			em:     &proggy.TinySZ8pt7b,
			small:  &proggy.TinySZ8pt7b,
		}
	}
	return fontSet{
		title:  &freesans.Bold24pt7b,
		label:  &freesans.Bold18pt7b,
		body:   &freesans.Regular12pt7b,
		strong: &freesans.Bold12pt7b,
		em:     &freesans.Oblique12pt7b,
		small:  &freesans.Bold9pt7b,
	}
}

func (fs fontSet) forStyle(st content.Style) tinyfont.Fonter {
	switch {
	case st&content.StyleStrong != 0:
		return fs.strong
	case st&content.StyleEmphasis != 0:
		return fs.em
	default:
		return fs.body
	}
}

func textWidth(f tinyfont.Fonter, s string) int {
	_, w := tinyfont.LineWidth(f, s)
	return int(w)
}

func lineHeight(f tinyfont.Fonter) int {
	return int(f.GetYAdvance())
}

type run struct {
	text string
	font tinyfont.Fonter
	w    int
}

type textLine struct {
	runs []run
	w    int
}

// wrapSpans breaks styled spans into lines no wider than maxW. Words
// longer than maxW get a line of their own.
func wrapSpans(spans []content.Span, fs fontSet, maxW int) []textLine {
	space := textWidth(fs.body, " ")
	var (
		lines []textLine
		cur   textLine
	)
	flush := func() {
		if len(cur.runs) > 0 {
			lines = append(lines, cur)
		}
		cur = textLine{}
	}
	for _, sp := range spans {
		f := fs.forStyle(sp.Style)
		for _, word := range strings.Fields(sp.Text) {
			w := textWidth(f, word)
			gap := 0
			if len(cur.runs) > 0 {
				gap = space
			}
			if len(cur.runs) > 0 && cur.w+gap+w > maxW {
				flush()
				gap = 0
			}
			if gap > 0 {
				cur.runs = append(cur.runs, run{text: " ", font: fs.body, w: space})
			}
			cur.runs = append(cur.runs, run{text: word, font: f, w: w})
			cur.w += gap + w
		}
	}
	flush()
	return lines
}

// drawLine writes one wrapped line with its left edge at x and baseline y.
func drawLine(d *fbDisplay, ln textLine, x, y int, c color.RGBA) {
	for _, r := range ln.runs {
		if r.text != " " {
			tinyfont.WriteLine(d, r.font, int16(x), int16(y), r.text, c)
		}
		x += r.w
	}
}

// drawCentered writes s centred on cx with baseline y.
func drawCentered(d *fbDisplay, f tinyfont.Fonter, s string, cx, y int, c color.RGBA) {
	tinyfont.WriteLine(d, f, int16(cx-textWidth(f, s)/2), int16(y), s, c)
}

func writeText(d *fbDisplay, f tinyfont.Fonter, x, y int, s string, c color.RGBA) {
	tinyfont.WriteLine(d, f, int16(x), int16(y), s, c)
}
