//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func (p *hostPointer) poll() {
	x, y := ebiten.CursorPosition()
	if !p.placed || x != p.x || y != p.y {
		p.x, p.y, p.placed = x, y, true
		p.emit(PointerEvent{Kind: PointerMove, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.emit(PointerEvent{Kind: PointerPress, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.emit(PointerEvent{Kind: PointerRelease, X: x, Y: y})
	}
	// Ebiten reports wheel-up as positive.
	if _, dy := ebiten.Wheel(); dy != 0 {
		p.emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, DY: -dy * WheelPixels})
	}
}
