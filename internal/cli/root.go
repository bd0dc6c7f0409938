// Package cli is the host command line: the window, headless and terminal
// front-ends plus a few inspection commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"t219/app"
	"t219/hal"
	"t219/internal/buildinfo"
	"t219/internal/config"
	"t219/site/content"
	"t219/site/scene"
)

type options struct {
	cfgFile string
	verbose bool
}

// NewRootCommand builds the t219 command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "t219",
		Short: "T219 metro project presentation",
		Long: `t219 presents the T219 metro project as five full-screen sections over a
spinning torus knot. Without a subcommand it opens a desktop window.`,
		Version:       buildinfo.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default ./"+config.DefaultPath+" when present)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newHeadlessCommand(opts),
		newTUICommand(opts),
		newSectionsCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is what every front-end needs: settings, a logger and the catalog.
type env struct {
	cfg *config.Config
	log *zap.Logger
	cat *content.Catalog
}

func (o *options) load() (*env, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}
	log, err := cfg.Log.Build(o.verbose)
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &env{cfg: cfg, log: log, cat: cat}, nil
}

func loadCatalog(cfg *config.Config, log *zap.Logger) (*content.Catalog, error) {
	if cfg.Content == "" {
		log.Debug("catalog", zap.String("source", "builtin"))
		return content.Default(), nil
	}
	cat, err := content.Load(cfg.Content)
	if err != nil {
		return nil, err
	}
	log.Info("catalog", zap.String("source", cfg.Content), zap.Int("sections", cat.Len()))
	return cat, nil
}

func (e *env) sceneConfig() scene.Config {
	return scene.Config{
		Tubular:   e.cfg.Render.Segments,
		Workers:   e.cfg.Render.Workers,
		Wireframe: e.cfg.Render.Wireframe,
	}
}

func (e *env) appConfig() app.Config {
	return app.Config{
		Catalog:  e.cat,
		Scene:    e.sceneConfig(),
		Duration: e.cfg.Scroll.Duration(),
		SnapIdle: e.cfg.Scroll.SnapIdle(),
	}
}

func (e *env) halOptions() hal.Options {
	return hal.Options{
		Width:  e.cfg.Window.Width,
		Height: e.cfg.Window.Height,
		Logger: e.log,
	}
}

func runWindow(opts *options) error {
	e, err := opts.load()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	e.log.Info("starting window",
		zap.Int("width", e.cfg.Window.Width),
		zap.Int("height", e.cfg.Window.Height),
		zap.String("build", buildinfo.Short()),
	)
	acfg := e.appConfig()
	return hal.RunWindow(func(h hal.HAL) (func() error, error) {
		return app.New(h, acfg)
	}, hal.WindowConfig{
		Options: e.halOptions(),
		Title:   e.cfg.Window.Title,
		Scale:   e.cfg.Window.Scale,
		TPS:     e.cfg.Hz,
	})
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

func newConfigCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			b, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
