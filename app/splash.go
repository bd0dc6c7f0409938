package app

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"

	"t219/hal"
	"t219/internal/buildinfo"
	"t219/site/shell"
)

// splash shows the brand and a status line while the scene is built,
// which takes a visible moment on microcontrollers.
func splash(fb hal.Framebuffer, msg string) {
	fb.ClearRGB(0, 0, 0)

	d := rawDisplay{fb: fb}
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	dim := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}

	title := &freesans.Bold12pt7b
	small := &proggy.TinySZ8pt7b
	w, h := int16(fb.Width()), int16(fb.Height())

	_, tw := tinyfont.LineWidth(title, shell.Brand)
	tinyfont.WriteLine(d, title, (w-int16(tw))/2, h/2, shell.Brand, fg)

	status := msg + " - " + buildinfo.Short()
	_, sw := tinyfont.LineWidth(small, status)
	tinyfont.WriteLine(d, small, (w-int16(sw))/2, h/2+int16(small.GetYAdvance())*2, status, dim)
	_ = fb.Present()
}
