package engine

import (
	"fmt"

	"github.com/spaghettifunk/pageflip/engine/config"
	"github.com/spaghettifunk/pageflip/engine/core"
)

type ApplicationConfig struct {
	// Surface starting width.
	StartWidth uint32
	// Surface starting height.
	StartHeight uint32
	// The application name handed to the renderer backend.
	Name     string
	LogLevel core.LogLevel
	// Target frames per second; also the step of a fixed step clock.
	FPS int
	// Drive the animation clock by exactly one frame per step instead of
	// the wall clock. Headless renders use it to get the same frames on
	// every run.
	FixedStep bool
	// Stop after this many frames, 0 runs until quit.
	MaxFrames uint64
	// Asset directory, empty for none.
	AssetsDir   string
	WatchAssets bool
	// Config asset, relative to AssetsDir, re-applied when it changes.
	ConfigAsset string
	Config      *config.Config
}

// NewApplicationConfig builds the application settings from cfg, which
// defaults to config.DefaultConfig.
func NewApplicationConfig(name string, cfg *config.Config) (*ApplicationConfig, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	level, err := core.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &ApplicationConfig{
		StartWidth:  uint32(cfg.Window.Width),
		StartHeight: uint32(cfg.Window.Height),
		Name:        name,
		LogLevel:    level,
		FPS:         cfg.Window.FPS,
		AssetsDir:   cfg.Assets.Dir,
		WatchAssets: cfg.Assets.Watch,
		Config:      cfg,
	}, nil
}

// frameMillis is the length of one frame at the target rate.
func (c *ApplicationConfig) frameMillis() int64 {
	if c.FPS <= 0 {
		return 1000 / config.DefaultFPS
	}
	return int64(1000 / c.FPS)
}
