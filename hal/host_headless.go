//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"sort"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Options

	Hz         int
	Ticks      uint64
	StepBudget int

	// Virtual runs steps back to back, advancing time by exactly one
	// frame per step instead of following the wall clock.
	Virtual bool

	Script []ScriptEvent

	// Snapshot, when set, receives a PNG of the last presented frame.
	Snapshot string
}

// RunHeadless runs the presentation without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Options)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	script := append([]ScriptEvent(nil), cfg.Script...)
	sort.SliceStable(script, func(i, j int) bool { return script[i].Step < script[j].Step })

	var tick uint64
	frame := func() (bool, error) {
		for len(script) > 0 && script[0].Step <= tick {
			inject(h, script[0])
			script = script[1:]
		}
		if cfg.Virtual {
			h.t.stepN(uint64(d / TickDuration))
		} else {
			h.t.step(1)
		}
		for i := 0; i < cfg.StepBudget && step != nil; i++ {
			if err := step(); err != nil {
				return true, err
			}
		}
		tick++
		return cfg.Ticks > 0 && tick >= cfg.Ticks, nil
	}

	err = runFrames(ctx, d, cfg.Virtual, frame)
	if cfg.Snapshot != "" {
		if serr := writeSnapshot(h.fb, cfg.Snapshot); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func runFrames(ctx context.Context, d time.Duration, virtual bool, frame func() (bool, error)) error {
	if virtual {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			if done, err := frame(); done || err != nil {
				return err
			}
		}
	}

	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if done, err := frame(); done || err != nil {
				return err
			}
		}
	}
}

func inject(h *hostHAL, ev ScriptEvent) {
	if ev.Key != nil {
		h.kbd.emit(*ev.Key)
	}
	if ev.Pointer != nil {
		h.ptr.emit(*ev.Pointer)
	}
}

func writeSnapshot(fb *hostFramebuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, fb.snapshotRGBA(nil)); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: %w", err)
	}
	return f.Close()
}
