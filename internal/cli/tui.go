package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"t219/site/tui"
)

func newTUICommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the presentation in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			// Log lines would corrupt the screen; only a file sink is kept.
			log := e.log
			if e.cfg.Log.File == "" {
				log = zap.NewNop()
			}
			defer log.Sync()

			log.Info("starting tui", zap.Int("sections", e.cat.Len()))
			return tui.Run(tui.Options{
				Catalog:  e.cat,
				Scene:    e.sceneConfig(),
				Duration: e.cfg.Scroll.Duration(),
				SnapIdle: e.cfg.Scroll.SnapIdle(),
				Logger:   log,
			})
		},
	}
}
