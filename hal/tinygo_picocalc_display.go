//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

type ili9488 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	txBuf []byte
}

// ILI9488 wiring on the PicoCalc carrier.
var (
	lcdSCK = machine.GP10
	lcdSDO = machine.GP11
	lcdSDI = machine.GP12
	lcdCS  = machine.GP13
	lcdDC  = machine.GP14
	lcdRST = machine.GP15
)

const lcdSPIHz = 40_000_000

func initILI9488() (*ili9488, error) {
	bus := machine.SPI1
	if bus == nil {
		return nil, errors.New("SPI1 unavailable")
	}
	if err := bus.Configure(machine.SPIConfig{SCK: lcdSCK, SDO: lcdSDO, SDI: lcdSDI, Frequency: lcdSPIHz}); err != nil {
		return nil, err
	}

	lcd := &ili9488{spi: *bus, cs: lcdCS, dc: lcdDC, rst: lcdRST, txBuf: make([]byte, 4096)}
	for _, p := range []machine.Pin{lcd.cs, lcd.dc, lcd.rst} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}
	lcd.reset()
	lcd.init()
	return lcd, nil
}

func (d *ili9488) reset() {
	d.rst.Low()
	time.Sleep(64 * time.Millisecond)
	d.rst.High()
	time.Sleep(140 * time.Millisecond)
}

// ili9488Init brings the panel up in 16bpp, mirrored for the PicoCalc
// wiring with BGR order.
var ili9488Init = []struct {
	cmd   byte
	data  []byte
	delay time.Duration
}{
	{cmd: 0xC0, data: []byte{0x17, 0x15}},             // PWCTRL1
	{cmd: 0xC1, data: []byte{0x41}},                   // PWCTRL2
	{cmd: 0xC5, data: []byte{0x00, 0x12, 0x80, 0x40}}, // VMCTRL
	{cmd: 0x3A, data: []byte{0x55}},                   // COLMOD 16bpp
	{cmd: 0xB1, data: []byte{0xA0, 0x11}},             // FRMCTRL1
	{cmd: 0xB6, data: []byte{0x02, 0x22, 0x27}},       // DISCTRL, 320 lines
	{cmd: 0x21},                                       // INVON
	{cmd: 0x36, data: []byte{0x40 | 0x04 | 0x08}},     // MADCTL MX|MH|BGR
	{cmd: 0x11, delay: 120 * time.Millisecond},        // SLPOUT
	{cmd: 0x29},                                       // DISPON
}

func (d *ili9488) init() {
	for _, c := range ili9488Init {
		d.cmd(c.cmd, c.data...)
		if c.delay > 0 {
			time.Sleep(c.delay)
		}
	}
}

func (d *ili9488) cmd(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

// setWindow selects the inclusive pixel rectangle for the next RAMWR.
func (d *ili9488) setWindow(x0, y0, x1, y1 uint16) {
	span := func(a, b uint16) []byte { return []byte{byte(a >> 8), byte(a), byte(b >> 8), byte(b)} }
	d.cmd(0x2A, span(x0, x1)...) // CASET
	d.cmd(0x2B, span(y0, y1)...) // PASET
	d.cmd(0x2C)                  // RAMWR
}

// blitRows sends rows [y0, y1) of a little-endian RGB565 buffer. The
// panel expects big-endian pixels.
func (d *ili9488) blitRows(buf []byte, w, y0, y1 int) error {
	if w <= 0 || y0 < 0 || y1 <= y0 || len(buf) < w*y1*2 {
		return errors.New("invalid framebuffer")
	}

	d.setWindow(0, uint16(y0), uint16(w-1), uint16(y1-1))

	d.cs.Low()
	d.dc.High()

	chunk := d.txBuf[:len(d.txBuf)&^1]
	if len(chunk) < 2 {
		return errors.New("tx buffer too small")
	}

	end := w * y1 * 2
	for off := w * y0 * 2; off < end; {
		n := min(len(chunk), end-off)
		src := buf[off : off+n]
		for i := 0; i < n; i += 2 {
			chunk[i] = src[i+1]
			chunk[i+1] = src[i]
		}
		d.spi.Tx(chunk[:n], nil)
		off += n
	}

	d.cs.High()
	return nil
}
