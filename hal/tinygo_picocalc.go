//go:build tinygo && baremetal && picocalc

package hal

import "time"

// New returns the HAL of a Pico or Pico 2 on the PicoCalc carrier. A
// keyboard that does not answer on I2C leaves the HAL keyboardless.
func New() HAL {
	b := newBoard()

	lcd, err := initILI9488()
	if err != nil {
		b.log.WriteLineString("hal: lcd: " + err.Error())
		lcd = nil
	}
	b.fb = newPicoCalcFramebuffer(lcd)

	if kb, err := newPicoCalcKeyboard(); err == nil {
		b.kbd = kb
	} else {
		b.log.WriteLineString("hal: keyboard: " + err.Error())
	}
	return b
}

// The PicoCalc panel is 320x320 RGB565.
const (
	picoCalcW      = 320
	picoCalcH      = 320
	picoCalcStride = picoCalcW * 2
)

// picoCalcFramebuffer pushes only the band of rows that changed since the
// previous Present, tracked by a per-row checksum.
type picoCalcFramebuffer struct {
	buf  [picoCalcStride * picoCalcH]byte
	rows [picoCalcH]uint32
	lcd  *ili9488
}

func newPicoCalcFramebuffer(lcd *ili9488) *picoCalcFramebuffer {
	return &picoCalcFramebuffer{lcd: lcd}
}

func (f *picoCalcFramebuffer) Width() int          { return picoCalcW }
func (f *picoCalcFramebuffer) Height() int         { return picoCalcH }
func (f *picoCalcFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *picoCalcFramebuffer) StrideBytes() int    { return picoCalcStride }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf[:] }

func (f *picoCalcFramebuffer) ClearRGB(r, g, b uint8) {
	px := rgb565(r, g, b)
	f.buf[0], f.buf[1] = byte(px), byte(px>>8)
	for n := 2; n < len(f.buf); n *= 2 {
		copy(f.buf[n:], f.buf[:n])
	}
}

func (f *picoCalcFramebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	y0, y1 := -1, 0
	for y := range picoCalcH {
		sum := rowSum(f.buf[y*picoCalcStride : (y+1)*picoCalcStride])
		if sum == f.rows[y] {
			continue
		}
		f.rows[y] = sum
		if y0 < 0 {
			y0 = y
		}
		y1 = y + 1
	}
	if y0 < 0 {
		return nil
	}
	return f.lcd.blitRows(f.buf[:], picoCalcW, y0, y1)
}

// rowSum is FNV-1a over one row.
func rowSum(b []byte) uint32 {
	h := uint32(2166136261)
	for _, c := range b {
		h ^= uint32(c)
		h *= 16777619
	}
	return h
}

type picoCalcKeyboard struct {
	ch chan KeyEvent
}

func (k *picoCalcKeyboard) Events() <-chan KeyEvent { return k.ch }

func newPicoCalcKeyboard() (*picoCalcKeyboard, error) {
	dev := &picoCalcKeyboard{ch: make(chan KeyEvent, 64)}
	kbd, err := initI2CKeyboard()
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			if ev, ok := kbd.readEvent(); ok {
				select {
				case dev.ch <- ev:
				default:
				}
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()

	return dev, nil
}
