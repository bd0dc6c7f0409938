//go:build !tinygo

package hal

import (
	"testing"
	"time"
)

func drainTicks(ch <-chan uint64) (n int, last uint64) {
	for {
		select {
		case seq := <-ch:
			n++
			last = seq
		default:
			return n, last
		}
	}
}

func TestHostTimeCarriesFraction(t *testing.T) {
	now := time.Unix(0, 0)
	ht := newHostTime()
	ht.now = func() time.Time { return now }

	ht.step(1)
	if n, _ := drainTicks(ht.Ticks()); n != 1 {
		t.Fatalf("first step published %d ticks, want 1", n)
	}

	now = now.Add(2500 * time.Microsecond)
	ht.step(1)
	if n, _ := drainTicks(ht.Ticks()); n != 2 {
		t.Fatalf("2.5ms published %d ticks, want 2", n)
	}

	now = now.Add(500 * time.Microsecond)
	ht.step(1)
	n, last := drainTicks(ht.Ticks())
	if n != 1 || last != 4 {
		t.Fatalf("carried half tick: n=%d last=%d, want 1 and 4", n, last)
	}
}

func TestHostTimeDropKeepsSequence(t *testing.T) {
	ht := newHostTime()
	ht.stepN(uint64(cap(ht.ch) + 10))
	n, last := drainTicks(ht.Ticks())
	if n != cap(ht.ch) {
		t.Fatalf("buffered %d ticks, want %d", n, cap(ht.ch))
	}
	if last != uint64(cap(ht.ch)) {
		t.Fatalf("last buffered seq %d", last)
	}
	ht.stepN(1)
	if _, last = drainTicks(ht.Ticks()); last != uint64(cap(ht.ch)+11) {
		t.Fatalf("next seq %d, want %d", last, cap(ht.ch)+11)
	}
}
