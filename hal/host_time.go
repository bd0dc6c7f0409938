//go:build !tinygo

package hal

import "time"

// hostTime turns host frames into HAL ticks. The window and headless
// runners drive it; nothing ticks on its own.
type hostTime struct {
	ch  chan uint64
	seq uint64

	now  func() time.Time
	last time.Time
	rem  time.Duration // wall time not yet published
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step publishes whole ticks of wall time since the previous call, keeping
// the fraction for later. The first call has no reference point and
// publishes first instead.
func (t *hostTime) step(first uint64) {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.stepN(first)
		return
	}
	t.rem += now.Sub(t.last)
	t.last = now
	n := t.rem / TickDuration
	t.rem -= n * TickDuration
	t.stepN(uint64(n))
}

// stepN publishes n ticks. A full channel drops ticks but not sequence
// numbers.
func (t *hostTime) stepN(n uint64) {
	for range n {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
