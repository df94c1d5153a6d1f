package config

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/easing"
	"github.com/spaghettifunk/pageflip/engine/flip"
)

// Apply pushes the flip and window sections through the page flip
// setters. Every rejected value is reported; accepted ones stay applied.
func (c *Config) Apply(pf *flip.PageFlip) error {
	var errs []error
	check := func(what string, status core.Status) {
		if !status.OK() {
			errs = append(errs, fmt.Errorf("%s: %w", what, pf.LastError().Err()))
		}
	}

	f := c.Flip
	check("pixels of mesh", pf.SetPixelsOfMesh(f.PixelsOfMesh))
	check("semi-perimeter ratio", pf.SetSemiPerimeterRatio(f.SemiPerimeterRatio))
	check("mask alpha", pf.SetMaskAlphaOfFold(f.MaskAlpha))
	check("click to flip width ratio", pf.SetWidthRatioOfClickToFlip(f.ClickToFlipWidthRatio))
	pf.EnableClickToFlip(f.ClickToFlip)

	e, b := f.EdgeShadow, f.BaseShadow
	check("edge shadow width", pf.SetShadowWidthOfFoldEdges(e.MinWidth, e.MaxWidth, e.WidthRatio))
	check("edge shadow color", pf.SetShadowColorOfFoldEdges(e.StartColor, e.StartAlpha, e.EndColor, e.EndAlpha))
	check("base shadow width", pf.SetShadowWidthOfFoldBase(b.MinWidth, b.MaxWidth, b.WidthRatio))
	check("base shadow color", pf.SetShadowColorOfFoldBase(b.StartColor, b.StartAlpha, b.EndColor, b.EndAlpha))

	if mode, err := ParsePageMode(f.PageMode); err != nil {
		errs = append(errs, err)
	} else {
		pf.EnableAutoPage(mode == flip.AutoPageMode)
	}
	if interp, err := easing.ByName(f.Interpolator); err != nil {
		errs = append(errs, err)
	} else {
		pf.Scroller().SetInterpolator(interp)
	}

	check("margins", pf.SetMargins(c.Window.MarginLeft, c.Window.MarginRight))
	return errors.Join(errs...)
}

// ApplyLogging sets the global log level.
func (c *Config) ApplyLogging() error {
	level, err := core.ParseLogLevel(c.Log.Level)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)
	return nil
}

// Options returns the page flip options matching the flip section, for
// callers that build the page flip after loading the config.
func (c *Config) Options() []flip.Option {
	opts := []flip.Option{
		flip.WithPixelsOfMesh(c.Flip.PixelsOfMesh),
		flip.WithSemiPerimeterRatio(c.Flip.SemiPerimeterRatio),
		flip.WithClickToFlip(c.Flip.ClickToFlip),
		flip.WithMaskAlpha(c.Flip.MaskAlpha),
	}
	if mode, err := ParsePageMode(c.Flip.PageMode); err == nil {
		opts = append(opts, flip.WithAutoPage(mode == flip.AutoPageMode))
	}
	if interp, err := easing.ByName(c.Flip.Interpolator); err == nil {
		opts = append(opts, flip.WithInterpolator(interp))
	}
	return opts
}
