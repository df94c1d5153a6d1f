package vertex

import (
	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/math"
)

// ShadowColor is the gradient baked into every start/end vertex pair of a
// shadow strip. Values are grey levels and alphas in [0, 1].
type ShadowColor struct {
	StartColor float32
	StartAlpha float32
	EndColor   float32
	EndAlpha   float32
}

// Set validates and stores the four stops, leaving the old values on failure.
func (c *ShadowColor) Set(startColor, startAlpha, endColor, endAlpha float32) core.Status {
	for _, v := range [...]float32{startColor, startAlpha, endColor, endAlpha} {
		if !math.InRange(v, 0, 1) {
			return core.StatusInvalidParameter
		}
	}
	c.StartColor = startColor
	c.StartAlpha = startAlpha
	c.EndColor = endColor
	c.EndAlpha = endAlpha
	return core.StatusOK
}

// ShadowWidth maps a curl radius to a shadow width clamped to [Min, Max].
type ShadowWidth struct {
	Min   float32
	Max   float32
	Ratio float32
}

func NewShadowWidth(min, max, ratio float32) ShadowWidth {
	var w ShadowWidth
	w.Set(min, max, ratio)
	return w
}

// Set validates and stores the width parameters, leaving the old values on failure.
func (w *ShadowWidth) Set(min, max, ratio float32) core.Status {
	if min < 0 || max < 0 || min > max || ratio <= 0 || ratio > 1 {
		return core.StatusInvalidParameter
	}
	w.Min = min
	w.Max = max
	w.Ratio = ratio
	return core.StatusOK
}

// Width returns clamp(r*ratio, min, max).
func (w ShadowWidth) Width(r float32) float32 {
	return math.Clamp(r*w.Ratio, w.Min, w.Max)
}
