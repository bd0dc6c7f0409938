package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"t219/app"
	"t219/hal"
)

type headlessFlags struct {
	hz       int
	ticks    uint64
	script   string
	fast     bool
	snapshot string
}

func newHeadlessCommand(opts *options) *cobra.Command {
	f := &headlessFlags{}
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run without a window, optionally replaying an input script",
		Long: `headless steps the presentation on a timer with no window. A script
injects input at given steps, one event per line:

  30 key down
  60 rune 3
  90 wheel 120
  120 click 160 300
  150 drag 100 100 140 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			hz := e.cfg.Hz
			if cmd.Flags().Changed("hz") {
				hz = f.hz
			}
			script, err := readScript(f.script)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			acfg := e.appConfig()
			acfg.ExitOnPanic = true
			e.log.Info("starting headless",
				zap.Int("hz", hz),
				zap.Uint64("ticks", f.ticks),
				zap.Int("script_events", len(script)),
				zap.Bool("fast", f.fast),
			)
			err = hal.RunHeadless(ctx, func(h hal.HAL) (func() error, error) {
				return app.New(h, acfg)
			}, hal.HeadlessConfig{
				Options:  e.halOptions(),
				Hz:       hz,
				Ticks:    f.ticks,
				Virtual:  f.fast,
				Script:   script,
				Snapshot: f.snapshot,
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&f.hz, "hz", 60, "step rate (overrides config hz)")
	cmd.Flags().Uint64Var(&f.ticks, "ticks", 0, "stop after N steps (0 = run until interrupted)")
	cmd.Flags().StringVar(&f.script, "script", "", "input script file")
	cmd.Flags().BoolVar(&f.fast, "fast", false, "run steps back to back on virtual time")
	cmd.Flags().StringVar(&f.snapshot, "snapshot", "", "write the last frame to this PNG file")
	return cmd
}

func readScript(path string) ([]hal.ScriptEvent, error) {
	if path == "" {
		return nil, nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	defer fh.Close()

	var lines []string
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return hal.ParseScript(lines)
}
