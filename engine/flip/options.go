package flip

import (
	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/easing"
	"github.com/spaghettifunk/pageflip/engine/vertex"
)

// Option configures a PageFlip at construction time.
type Option func(*PageFlip)

// WithTimeSource drives the animation from source instead of the wall
// clock. It replaces the scroller, so pass it before WithInterpolator.
func WithTimeSource(source core.TimeSource) Option {
	return func(p *PageFlip) {
		p.scroller = easing.NewScroller(source, nil)
	}
}

func WithInterpolator(interpolator easing.Interpolator) Option {
	return func(p *PageFlip) {
		p.scroller.SetInterpolator(interpolator)
	}
}

func WithPixelsOfMesh(pixels int) Option {
	return func(p *PageFlip) {
		p.SetPixelsOfMesh(pixels)
	}
}

func WithSemiPerimeterRatio(ratio float32) Option {
	return func(p *PageFlip) {
		p.SetSemiPerimeterRatio(ratio)
	}
}

func WithAutoPage(isAuto bool) Option {
	return func(p *PageFlip) {
		p.EnableAutoPage(isAuto)
	}
}

func WithClickToFlip(enable bool) Option {
	return func(p *PageFlip) {
		p.EnableClickToFlip(enable)
	}
}

func WithMaskAlpha(alpha float32) Option {
	return func(p *PageFlip) {
		p.SetMaskAlphaOfFold(alpha)
	}
}

func (p *PageFlip) reject(what string, format string, args ...interface{}) core.Status {
	core.LogWarn("rejected %s", what)
	return p.lastErr.Set(core.StatusInvalidParameter, format, args...)
}

// SetPixelsOfMesh sets how many pixels one mesh step covers. The mesh
// buffers are resized when a surface exists and no flip is running.
func (p *PageFlip) SetPixelsOfMesh(pixels int) core.Status {
	if pixels <= 0 {
		return p.reject("pixels of mesh", "pixels of mesh must be positive, got %d", pixels)
	}
	p.pixelsOfMesh = pixels
	if p.hasSurface() && !p.state.IsFlipping() {
		if err := p.computeMaxMeshCount(); err != nil {
			return p.lastErr.Set(core.StatusError, "%s", err)
		}
	}
	return core.StatusOK
}

// SetSemiPerimeterRatio sets the share of the pointer to origin distance
// that wraps around the curl cylinder.
func (p *PageFlip) SetSemiPerimeterRatio(ratio float32) core.Status {
	if ratio <= 0 || ratio > 1 {
		return p.reject("semi-perimeter ratio", "semi-perimeter ratio %.3f is outside (0, 1]", ratio)
	}
	p.semiPerimeterRatio = ratio
	return core.StatusOK
}

func (p *PageFlip) SemiPerimeterRatio() float32 {
	return p.semiPerimeterRatio
}

func (p *PageFlip) SetMaskAlphaOfFold(alpha float32) core.Status {
	if status := p.backOfFold.SetMaskAlpha(alpha); !status.OK() {
		return p.reject("mask alpha", "mask alpha %.3f is outside [0, 1]", alpha)
	}
	return core.StatusOK
}

func (p *PageFlip) SetMaskAlphaOfFoldInt(alpha int) core.Status {
	if status := p.backOfFold.SetMaskAlphaInt(alpha); !status.OK() {
		return p.reject("mask alpha", "mask alpha %d is outside [0, 255]", alpha)
	}
	return core.StatusOK
}

func (p *PageFlip) MaskAlphaOfFold() float32 {
	return p.backOfFold.MaskAlpha()
}

func (p *PageFlip) SetShadowColorOfFoldEdges(startColor, startAlpha, endColor, endAlpha float32) core.Status {
	if status := p.edgeShadow.Color.Set(startColor, startAlpha, endColor, endAlpha); !status.OK() {
		return p.reject("edge shadow color", "edge shadow color %.2f/%.2f -> %.2f/%.2f", startColor, startAlpha, endColor, endAlpha)
	}
	return core.StatusOK
}

func (p *PageFlip) SetShadowColorOfFoldBase(startColor, startAlpha, endColor, endAlpha float32) core.Status {
	if status := p.baseShadow.Color.Set(startColor, startAlpha, endColor, endAlpha); !status.OK() {
		return p.reject("base shadow color", "base shadow color %.2f/%.2f -> %.2f/%.2f", startColor, startAlpha, endColor, endAlpha)
	}
	return core.StatusOK
}

func (p *PageFlip) ShadowColorOfFoldEdges() vertex.ShadowColor {
	return p.edgeShadow.Color
}

func (p *PageFlip) ShadowColorOfFoldBase() vertex.ShadowColor {
	return p.baseShadow.Color
}

func (p *PageFlip) SetShadowWidthOfFoldEdges(min, max, ratio float32) core.Status {
	if status := p.edgeShadowWidth.Set(min, max, ratio); !status.OK() {
		return p.reject("edge shadow width", "edge shadow width min %.1f max %.1f ratio %.2f", min, max, ratio)
	}
	return core.StatusOK
}

func (p *PageFlip) SetShadowWidthOfFoldBase(min, max, ratio float32) core.Status {
	if status := p.baseShadowWidth.Set(min, max, ratio); !status.OK() {
		return p.reject("base shadow width", "base shadow width min %.1f max %.1f ratio %.2f", min, max, ratio)
	}
	return core.StatusOK
}

func (p *PageFlip) ShadowWidthOfFoldEdges() vertex.ShadowWidth {
	return p.edgeShadowWidth
}

func (p *PageFlip) ShadowWidthOfFoldBase() vertex.ShadowWidth {
	return p.baseShadowWidth
}

func (p *PageFlip) EnableClickToFlip(enable bool) {
	p.clickToFlip = enable
}

func (p *PageFlip) IsClickToFlipEnabled() bool {
	return p.clickToFlip
}

// SetWidthRatioOfClickToFlip sets the share of the page width, measured
// from the spine side, where a click flips backward.
func (p *PageFlip) SetWidthRatioOfClickToFlip(ratio float32) core.Status {
	if ratio <= 0 || ratio > 0.5 {
		return p.reject("click to flip width ratio", "click to flip width ratio %.3f is outside (0, 0.5]", ratio)
	}
	p.widthRatioOfClickToFlip = ratio
	return core.StatusOK
}

func (p *PageFlip) WidthRatioOfClickToFlip() float32 {
	return p.widthRatioOfClickToFlip
}
