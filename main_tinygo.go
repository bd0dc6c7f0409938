//go:build tinygo

package main

import (
	"t219/app"
	"t219/hal"
	"t219/site/scene"
)

func main() {
	// A lighter knot keeps the RP2350 near 30 fps.
	app.Run(hal.New(), app.Config{Scene: scene.Config{Tubular: 48, Radial: 8}})
}
