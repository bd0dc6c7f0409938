//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunHeadlessVirtual(t *testing.T) {
	script, err := ParseScript([]string{"2 key down", "3 wheel 40"})
	if err != nil {
		t.Fatal(err)
	}

	var steps int
	var keys []KeyEvent
	var wheel float64
	var ticks uint64
	newApp := func(h HAL) (func() error, error) {
		kbd := h.Input().Keyboard().Events()
		ptr := h.Input().Pointer().Events()
		tk := h.Time().Ticks()
		return func() error {
			steps++
			for {
				select {
				case ev := <-kbd:
					keys = append(keys, ev)
				case ev := <-ptr:
					wheel += ev.DY
				case <-tk:
					ticks++
				default:
					return nil
				}
			}
		}, nil
	}

	err = RunHeadless(context.Background(), newApp, HeadlessConfig{
		Options: Options{Logger: zap.NewNop()},
		Hz:      50,
		Ticks:   5,
		Virtual: true,
		Script:  script,
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 5 {
		t.Fatalf("steps = %d, want 5", steps)
	}
	if ticks != 5*20 {
		t.Fatalf("ticks = %d, want 100", ticks)
	}
	if len(keys) != 2 || keys[0].Code != KeyDown || !keys[0].Press {
		t.Fatalf("keys = %+v", keys)
	}
	if wheel != 40 {
		t.Fatalf("wheel = %v, want 40", wheel)
	}
}

func TestRunHeadlessStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	newApp := func(HAL) (func() error, error) {
		return func() error { return boom }, nil
	}
	err := RunHeadless(context.Background(), newApp, HeadlessConfig{
		Options: Options{Logger: zap.NewNop()},
		Virtual: true,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunHeadless(ctx, func(HAL) (func() error, error) { return nil, nil }, HeadlessConfig{
		Options: Options{Logger: zap.NewNop()},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunHeadlessSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	newApp := func(h HAL) (func() error, error) {
		fb := h.Display().Framebuffer()
		return func() error {
			fb.ClearRGB(0xFF, 0, 0)
			return fb.Present()
		}, nil
	}
	err := RunHeadless(context.Background(), newApp, HeadlessConfig{
		Options:  Options{Width: 16, Height: 8, Logger: zap.NewNop()},
		Ticks:    1,
		Virtual:  true,
		Snapshot: path,
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Fatalf("bounds = %v", b)
	}
	r, g, _, _ := img.At(3, 3).RGBA()
	if r>>8 != 0xFF || g != 0 {
		t.Fatalf("pixel = %v", img.At(3, 3))
	}
}

func TestFramebufferPresentPublishes(t *testing.T) {
	fb := newHostFramebuffer(2, 1)
	fb.ClearRGB(0, 0xFF, 0)
	if img := fb.snapshotRGBA(nil); img.Pix[1] != 0 {
		t.Fatalf("unpresented frame leaked: %v", img.Pix[:4])
	}
	if err := fb.Present(); err != nil {
		t.Fatal(err)
	}
	if fb.presented() != 1 {
		t.Fatalf("presented = %d", fb.presented())
	}
	if img := fb.snapshotRGBA(nil); img.Pix[1] != 0xFF {
		t.Fatalf("green = %#x", img.Pix[1])
	}
}
