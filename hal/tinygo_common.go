//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

// board is the HAL shared by the RP2040/RP2350 targets. A nil fb or kbd
// means the device is absent.
type board struct {
	log *uartLogger
	fb  Framebuffer
	kbd Keyboard
	t   *tinyGoTime
}

// newBoard brings up UART0 on GP0/GP1 at 115200 8N1 and the tick source.
func newBoard() *board {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{BaudRate: 115200, TX: machine.GP0, RX: machine.GP1})
	return &board{log: &uartLogger{uart: uart}, t: startTinyGoTime()}
}

func (b *board) Logger() Logger   { return b.log }
func (b *board) Display() Display { return b }
func (b *board) Input() Input     { return b }
func (b *board) Time() Time       { return b.t }

func (b *board) Framebuffer() Framebuffer { return b.fb }
func (b *board) Keyboard() Keyboard       { return b.kbd }
func (b *board) Pointer() Pointer         { return NoPointer{} }

type tinyGoTime struct {
	ch chan uint64
}

// startTinyGoTime publishes one tick per TickDuration. Ticks are dropped
// while the consumer lags; sequence numbers keep counting so the gap is
// still visible.
func startTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		var seq uint64
		for {
			time.Sleep(TickDuration)
			seq++
			select {
			case t.ch <- seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

var crlf = []byte("\r\n")

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := range len(s) {
		l.uart.WriteByte(s[i])
	}
	l.uart.Write(crlf)
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.Write(crlf)
}
