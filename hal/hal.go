package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
)

// KeyEvent is a keyboard event. Printable input arrives with Code
// KeyUnknown and a non-zero Rune.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerKind says what a PointerEvent reports.
type PointerKind uint8

const (
	PointerMove PointerKind = iota + 1
	PointerPress
	PointerRelease
	PointerWheel
)

// PointerEvent is a mouse or touch event in framebuffer pixels. Wheel
// events carry the scroll distance in DY, positive towards the end of the
// page.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
	DY   float64
}

// Pointer provides pointer events. Platforms without one return a nil
// channel.
type Pointer interface {
	Events() <-chan PointerEvent
}

// NoPointer is the Pointer of platforms without one.
type NoPointer struct{}

func (NoPointer) Events() <-chan PointerEvent { return nil }

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined (1ms on every current platform);
// callers convert tick deltas into elapsed time.
type Time interface {
	Ticks() <-chan uint64
}

// TickDuration is the length of one Time tick.
const TickDuration = time.Millisecond

// HAL provides the only contact point between the presentation and the
// outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
