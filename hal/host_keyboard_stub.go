//go:build !tinygo && !cgo

package hal

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// poll is a no-op without the window backend; headless scripts still
// inject events through emit.
func (k *hostKeyboard) poll() {}

func (p *hostPointer) poll() {}
