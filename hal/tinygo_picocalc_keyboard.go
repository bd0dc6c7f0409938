//go:build tinygo && baremetal && picocalc

package hal

import (
	"fmt"
	"machine"
	"time"
)

const (
	picoCalcKbdAddr uint16 = 0x1F
	picoCalcKbdCmd         = 0x09
)

const (
	picoCalcKeyAlt  byte = 0xA1
	picoCalcKeyCtrl byte = 0xA5
	picoCalcKeyUp   byte = 0xB5
	picoCalcKeyDown byte = 0xB6
)

// picoCalcKeys maps the keyboard MCU's special codes. With Alt held the
// vertical arrows page instead.
var picoCalcKeys = map[byte]KeyCode{
	0x08:            KeyBackspace,
	0xB1:            KeyEscape,
	0xD1:            KeyTab, // Ins
	0xD2:            KeyHome,
	0xD4:            KeyDelete,
	0xD5:            KeyEnd,
	0xB4:            KeyLeft,
	0xB7:            KeyRight,
	picoCalcKeyUp:   KeyUp,
	picoCalcKeyDown: KeyDown,
	0x81:            KeyF1,
	0x82:            KeyF2,
	0x83:            KeyF3,
}

type i2cKeyboard struct {
	i2c   *machine.I2C
	write [1]byte
	read  [2]byte

	altDown bool
}

func initI2CKeyboard() (*i2cKeyboard, error) {
	write := [1]byte{picoCalcKbdCmd}

	// I2C1 is the PicoCalc wiring; some targets expose only I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			if err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			}); err != nil {
				continue
			}

			k := &i2cKeyboard{i2c: bus, write: write}

			// The keyboard MCU can be slow to answer right after power-on.
			for i := 0; i < 50; i++ {
				if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err == nil {
					return k, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	return nil, fmt.Errorf("keyboard: I2C unavailable")
}

func (k *i2cKeyboard) readEvent() (KeyEvent, bool) {
	if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err != nil {
		return KeyEvent{}, false
	}
	state, code := k.read[0], k.read[1]
	switch state {
	case 0x01:
		return k.translate(code, true)
	case 0x02:
		if code == picoCalcKeyAlt {
			k.altDown = true
		}
		return KeyEvent{}, false
	case 0x03:
		return k.translate(code, false)
	}
	return KeyEvent{}, false
}

func (k *i2cKeyboard) translate(code byte, press bool) (KeyEvent, bool) {
	switch code {
	case picoCalcKeyAlt:
		k.altDown = press
		return KeyEvent{}, false
	case picoCalcKeyCtrl, 0:
		return KeyEvent{}, false
	}

	if kc, ok := picoCalcKeys[code]; ok {
		if k.altDown && kc == KeyUp {
			kc = KeyPageUp
		} else if k.altDown && kc == KeyDown {
			kc = KeyPageDown
		}
		return KeyEvent{Code: kc, Press: press}, true
	}
	if !press {
		return KeyEvent{}, false
	}
	if code == '\r' || code == '\n' {
		return KeyEvent{Code: KeyEnter, Press: true}, true
	}
	return KeyEvent{Press: true, Rune: rune(code)}, true
}
