/*
pageflip drives the page flip engine headless: it renders scripted
gestures to PNG frames, traces flip states, plots the easing curves and
watches a config file while the engine runs.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spaghettifunk/pageflip/engine"
	"github.com/spaghettifunk/pageflip/engine/config"
	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/renderer/software"
	"github.com/spaghettifunk/pageflip/testbed"
)

var (
	configFile string
	logLevel   string
	script     string
	maxFrames  uint64
	outDir     string
	every      int
	pageMode   string
	width      int
	height     int
	samples    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "pageflip",
		Short:         "page curl simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (toml or yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "surface width override")
	rootCmd.PersistentFlags().IntVar(&height, "height", 0, "surface height override")
	rootCmd.PersistentFlags().StringVar(&pageMode, "page-mode", "", "single or auto")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a gesture script to PNG frames",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&script, "script", "forward,forward,backward,restore", "comma separated gestures")
	renderCmd.Flags().Uint64Var(&maxFrames, "frames", 2000, "stop after this many frames")
	renderCmd.Flags().StringVar(&outDir, "out", "frames", "output directory")
	renderCmd.Flags().IntVar(&every, "every", 1, "write every n-th frame")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "play a gesture script and print the finished flips",
		RunE:  runTrace,
	}
	traceCmd.Flags().StringVar(&script, "script", "forward,forward,backward,restore", "comma separated gestures")
	traceCmd.Flags().Uint64Var(&maxFrames, "frames", 2000, "stop after this many frames")

	curveCmd := &cobra.Command{
		Use:   "curve [interpolator]",
		Short: "plot the animation easing curves",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCurve,
	}
	curveCmd.Flags().IntVar(&samples, "samples", 60, "points per curve")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run the engine and re-apply the config file when it changes",
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&script, "script", "", "comma separated gestures to play once")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(renderCmd, traceCmd, curveCmd, watchCmd, initCmd)
	if err := rootCmd.Execute(); err != nil {
		core.LogError(err.Error())
		os.Exit(1)
	}
}

// loadConfig reads --config over the defaults and applies the flag
// overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if width > 0 {
		cfg.Window.Width = width
	}
	if height > 0 {
		cfg.Window.Height = height
	}
	if pageMode != "" {
		cfg.Flip.PageMode = strings.ToLower(pageMode)
	}
	if err := cfg.ApplyLogging(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newBook builds a book on an engine over backend. A non-empty gestures
// list is played once, then the engine quits when quit is set.
func newBook(name, gestures string, quit bool, backend *software.Backend, edit func(*engine.ApplicationConfig)) (*testbed.Book, *engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	app, err := engine.NewApplicationConfig(name, cfg)
	if err != nil {
		return nil, nil, err
	}
	if edit != nil {
		edit(app)
	}

	book := testbed.NewBook(app)
	if gestures != "" {
		s, err := testbed.ParseScript(gestures, cfg.Window.Width, cfg.Window.Height, cfg.Flip.Duration)
		if err != nil {
			return nil, nil, err
		}
		book.Play(s, quit)
	}

	e, err := engine.New(book.Game, backend)
	if err != nil {
		return nil, nil, err
	}
	if err := e.Initialize(); err != nil {
		return nil, nil, err
	}
	return book, e, nil
}

// signalContext is cancelled on SIGINT, SIGTERM or SIGQUIT.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if configFile == "" {
		return fmt.Errorf("watch needs --config")
	}
	abs, err := filepath.Abs(configFile)
	if err != nil {
		return err
	}

	book, e, err := newBook("pageflip-watch", script, false, software.New(), func(app *engine.ApplicationConfig) {
		app.AssetsDir = filepath.Dir(abs)
		app.WatchAssets = true
		app.ConfigAsset = filepath.Base(abs)
	})
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	core.LogInfo("watching %s, interrupt to stop", abs)
	runErr := e.Run(ctx)
	core.LogInfo("stopped at page %d after %d frames", book.PageNo(), e.FrameNumber())
	if err := e.Shutdown(); err != nil {
		return err
	}
	return runErr
}
