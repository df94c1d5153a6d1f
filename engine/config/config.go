package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/easing"
	"github.com/spaghettifunk/pageflip/engine/flip"
	"github.com/spaghettifunk/pageflip/engine/vertex"
)

const (
	DefaultWidth    = 600
	DefaultHeight   = 800
	DefaultDuration = 1000
	DefaultPages    = 8
	DefaultFPS      = 60
)

var ErrUnknownFormat = errors.New("unknown config format")

type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Flip   FlipConfig   `toml:"flip" yaml:"flip"`
	Book   BookConfig   `toml:"book" yaml:"book"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Assets AssetsConfig `toml:"assets" yaml:"assets"`
}

type WindowConfig struct {
	Width       int     `toml:"width" yaml:"width"`
	Height      int     `toml:"height" yaml:"height"`
	MarginLeft  float32 `toml:"margin_left" yaml:"margin_left"`
	MarginRight float32 `toml:"margin_right" yaml:"margin_right"`
	FPS         int     `toml:"fps" yaml:"fps"`
}

type ShadowConfig struct {
	MinWidth   float32 `toml:"min_width" yaml:"min_width"`
	MaxWidth   float32 `toml:"max_width" yaml:"max_width"`
	WidthRatio float32 `toml:"width_ratio" yaml:"width_ratio"`
	StartColor float32 `toml:"start_color" yaml:"start_color"`
	StartAlpha float32 `toml:"start_alpha" yaml:"start_alpha"`
	EndColor   float32 `toml:"end_color" yaml:"end_color"`
	EndAlpha   float32 `toml:"end_alpha" yaml:"end_alpha"`
}

type FlipConfig struct {
	PixelsOfMesh          int          `toml:"pixels_of_mesh" yaml:"pixels_of_mesh"`
	SemiPerimeterRatio    float32      `toml:"semi_perimeter_ratio" yaml:"semi_perimeter_ratio"`
	ClickToFlip           bool         `toml:"click_to_flip" yaml:"click_to_flip"`
	ClickToFlipWidthRatio float32      `toml:"click_to_flip_width_ratio" yaml:"click_to_flip_width_ratio"`
	PageMode              string       `toml:"page_mode" yaml:"page_mode"`
	MaskAlpha             float32      `toml:"mask_alpha" yaml:"mask_alpha"`
	Interpolator          string       `toml:"interpolator" yaml:"interpolator"`
	EdgeShadow            ShadowConfig `toml:"edge_shadow" yaml:"edge_shadow"`
	BaseShadow            ShadowConfig `toml:"base_shadow" yaml:"base_shadow"`
	// animation length of a fling or click, in milliseconds
	Duration int `toml:"duration" yaml:"duration"`
}

type BookConfig struct {
	Pages     int `toml:"pages" yaml:"pages"`
	FirstPage int `toml:"first_page" yaml:"first_page"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

type AssetsConfig struct {
	Dir   string `toml:"dir" yaml:"dir"`
	Watch bool   `toml:"watch" yaml:"watch"`
}

func shadowOf(width vertex.ShadowWidth, color vertex.ShadowColor) ShadowConfig {
	return ShadowConfig{
		MinWidth:   width.Min,
		MaxWidth:   width.Max,
		WidthRatio: width.Ratio,
		StartColor: color.StartColor,
		StartAlpha: color.StartAlpha,
		EndColor:   color.EndColor,
		EndAlpha:   color.EndAlpha,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
		Flip: FlipConfig{
			PixelsOfMesh:          flip.MeshVertexPixels,
			SemiPerimeterRatio:    flip.DefaultSemiPerimeterRatio,
			ClickToFlip:           true,
			ClickToFlipWidthRatio: flip.DefaultWidthRatioOfClickToFlip,
			PageMode:              flip.SinglePageMode.String(),
			MaskAlpha:             vertex.DefaultMaskAlpha,
			Interpolator:          "viscous",
			EdgeShadow:            shadowOf(flip.DefaultEdgeShadowWidth, flip.DefaultEdgeShadowColor),
			BaseShadow:            shadowOf(flip.DefaultBaseShadowWidth, flip.DefaultBaseShadowColor),
			Duration:              DefaultDuration,
		},
		Book: BookConfig{
			Pages: DefaultPages,
		},
		Log: LogConfig{
			Level: core.LogLevelInfo.String(),
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
	}
}

type codec struct {
	unmarshal func([]byte, interface{}) error
	marshal   func(interface{}) ([]byte, error)
}

func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return codec{unmarshal: toml.Unmarshal, marshal: toml.Marshal}, nil
	case ".yaml", ".yml":
		return codec{unmarshal: yaml.Unmarshal, marshal: yaml.Marshal}, nil
	}
	return codec{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Load reads path over the defaults and validates the result. The codec
// follows the file extension.
func Load(path string) (*Config, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data, c)
}

// ParseAs decodes data with the codec of a file named like path.
func ParseAs(path string, data []byte) (*Config, error) {
	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}
	return parse(data, c)
}

func parse(data []byte, c codec) (*Config, error) {
	cfg := DefaultConfig()
	if err := c.unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	c, err := codecFor(path)
	if err != nil {
		return err
	}
	data, err := c.marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s ShadowConfig) validate(name string) []error {
	var errs []error
	if s.MinWidth < 0 || s.MaxWidth < s.MinWidth || s.WidthRatio <= 0 || s.WidthRatio > 1 {
		errs = append(errs, fmt.Errorf("%s width min %.1f max %.1f ratio %.2f is invalid", name, s.MinWidth, s.MaxWidth, s.WidthRatio))
	}
	for _, v := range []float32{s.StartColor, s.StartAlpha, s.EndColor, s.EndAlpha} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s color %.2f is outside [0, 1]", name, v))
			break
		}
	}
	return errs
}

// Validate reports every out of range value at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.MarginLeft < 0 || c.Window.MarginRight < 0 ||
		c.Window.MarginLeft+c.Window.MarginRight >= float32(c.Window.Width) {
		errs = append(errs, fmt.Errorf("margins %.1f/%.1f do not fit the window", c.Window.MarginLeft, c.Window.MarginRight))
	}
	if c.Window.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.Window.FPS))
	}

	f := c.Flip
	if f.PixelsOfMesh <= 0 {
		errs = append(errs, fmt.Errorf("pixels of mesh %d must be positive", f.PixelsOfMesh))
	}
	if f.SemiPerimeterRatio <= 0 || f.SemiPerimeterRatio > 1 {
		errs = append(errs, fmt.Errorf("semi-perimeter ratio %.3f is outside (0, 1]", f.SemiPerimeterRatio))
	}
	if f.ClickToFlipWidthRatio <= 0 || f.ClickToFlipWidthRatio > 0.5 {
		errs = append(errs, fmt.Errorf("click to flip width ratio %.3f is outside (0, 0.5]", f.ClickToFlipWidthRatio))
	}
	if _, err := ParsePageMode(f.PageMode); err != nil {
		errs = append(errs, err)
	}
	if f.MaskAlpha < 0 || f.MaskAlpha > 1 {
		errs = append(errs, fmt.Errorf("mask alpha %.3f is outside [0, 1]", f.MaskAlpha))
	}
	if _, err := easing.ByName(f.Interpolator); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, f.EdgeShadow.validate("edge shadow")...)
	errs = append(errs, f.BaseShadow.validate("base shadow")...)
	if f.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration %d must be positive", f.Duration))
	}

	if c.Book.Pages <= 0 {
		errs = append(errs, fmt.Errorf("book needs at least one page, got %d", c.Book.Pages))
	} else if c.Book.FirstPage < 0 || c.Book.FirstPage >= c.Book.Pages {
		errs = append(errs, fmt.Errorf("first page %d is outside [0, %d)", c.Book.FirstPage, c.Book.Pages))
	}
	if _, err := core.ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func ParsePageMode(s string) (flip.PageMode, error) {
	switch strings.ToLower(s) {
	case "", "single":
		return flip.SinglePageMode, nil
	case "auto":
		return flip.AutoPageMode, nil
	}
	return flip.SinglePageMode, fmt.Errorf("unknown page mode %q", s)
}
