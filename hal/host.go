//go:build !tinygo

package hal

import (
	"go.uber.org/zap"
)

// DefaultWidth and DefaultHeight size the host framebuffer when Options
// leaves them zero. They match the PicoCalc panel.
const (
	DefaultWidth  = 320
	DefaultHeight = 320
)

// WheelPixels is the scroll distance of one wheel notch.
const WheelPixels = 40

// Options configures the host HAL.
type Options struct {
	Width  int
	Height int

	// Logger receives log lines. Nil uses zap's production logger.
	Logger *zap.Logger
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
	t      *hostTime
}

// New returns a host HAL implementation with default options.
func New() HAL { return newHost(Options{}) }

func newHost(opts Options) *hostHAL {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	zl := opts.Logger
	if zl == nil {
		var err error
		if zl, err = zap.NewProduction(); err != nil {
			zl = zap.NewNop()
		}
	}
	return &hostHAL{
		logger: &hostLogger{z: zl},
		fb:     newHostFramebuffer(opts.Width, opts.Height),
		kbd:    newHostKeyboard(),
		ptr:    newHostPointer(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

// hostLogger forwards HAL log lines to zap.
type hostLogger struct {
	z *zap.Logger
}

func (l *hostLogger) WriteLineString(s string) { l.z.Info(s) }

func (l *hostLogger) WriteLineBytes(b []byte) { l.z.Info(string(b)) }

// hostPointer queues pointer events; the window backend fills it.
type hostPointer struct {
	ch chan PointerEvent

	x, y   int
	placed bool
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}
