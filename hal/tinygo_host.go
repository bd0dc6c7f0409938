//go:build tinygo && !baremetal

package hal

import "time"

// tinyGoHostHAL serves `tinygo run` on linux or wasm, where there is no
// panel or keyboard. Frames render into memory and only logs are visible.
type tinyGoHostHAL struct {
	logger printLogger
	fb     *memFramebuffer
	t      *tickSource
}

// New returns a TinyGo-on-host HAL implementation.
func New() HAL {
	return &tinyGoHostHAL{
		fb: newMemFramebuffer(320, 320),
		t:  newTickSource(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) Display() Display { return h }
func (h *tinyGoHostHAL) Input() Input     { return h }
func (h *tinyGoHostHAL) Time() Time       { return h.t }

func (h *tinyGoHostHAL) Framebuffer() Framebuffer { return h.fb }
func (h *tinyGoHostHAL) Keyboard() Keyboard       { return h }
func (h *tinyGoHostHAL) Pointer() Pointer         { return NoPointer{} }

func (h *tinyGoHostHAL) Events() <-chan KeyEvent { return nil }

type printLogger struct{}

func (printLogger) WriteLineString(s string) { println(s) }
func (printLogger) WriteLineBytes(b []byte)  { println(string(b)) }

type tickSource struct {
	ch  chan uint64
	seq uint64
}

func newTickSource() *tickSource {
	t := &tickSource{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(TickDuration)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tickSource) Ticks() <-chan uint64 { return t.ch }

type memFramebuffer struct {
	w, h int
	buf  []byte
}

func newMemFramebuffer(w, h int) *memFramebuffer {
	return &memFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFramebuffer) Width() int          { return f.w }
func (f *memFramebuffer) Height() int         { return f.h }
func (f *memFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int    { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte      { return f.buf }
func (f *memFramebuffer) Present() error      { return nil }

func (f *memFramebuffer) ClearRGB(r, g, b uint8) {
	p := rgb565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i], f.buf[i+1] = byte(p), byte(p>>8)
	}
}
