package flip

import "github.com/spaghettifunk/pageflip/engine/math"

// Viewport maps surface pixels onto the centered coordinate system the
// page geometry works in: origin in the middle, Y growing upward.
type Viewport struct {
	SurfaceWidth  float32
	SurfaceHeight float32
	MarginLeft    float32
	MarginRight   float32

	Width      float32
	Height     float32
	HalfWidth  float32
	HalfHeight float32

	Left   float32
	Right  float32
	Top    float32
	Bottom float32
}

// Set recomputes every derived value, keeping the current margins.
func (v *Viewport) Set(surfaceWidth, surfaceHeight float32) {
	v.SetWithMargins(surfaceWidth, surfaceHeight, v.MarginLeft, v.MarginRight)
}

func (v *Viewport) SetMargins(left, right float32) {
	v.SetWithMargins(v.SurfaceWidth, v.SurfaceHeight, left, right)
}

func (v *Viewport) SetWithMargins(surfaceWidth, surfaceHeight, marginLeft, marginRight float32) {
	v.SurfaceWidth = surfaceWidth
	v.SurfaceHeight = surfaceHeight
	v.MarginLeft = marginLeft
	v.MarginRight = marginRight

	v.Width = surfaceWidth - marginLeft - marginRight
	v.Height = surfaceHeight
	v.HalfWidth = v.Width * 0.5
	v.HalfHeight = v.Height * 0.5
	v.Left = -v.HalfWidth + marginLeft
	v.Right = v.HalfWidth - marginRight
	v.Top = v.HalfHeight
	v.Bottom = -v.HalfHeight
}

// MaxOfWidthHeight returns the larger dimension, which bounds the mesh count.
func (v Viewport) MaxOfWidthHeight() float32 {
	if v.Width > v.Height {
		return v.Width
	}
	return v.Height
}

func (v Viewport) MinOfWidthHeight() float32 {
	if v.Width < v.Height {
		return v.Width
	}
	return v.Height
}

// ToGLX converts a surface x in pixels.
func (v Viewport) ToGLX(x float32) float32 {
	return x - v.HalfWidth
}

// ToGLY converts a surface y in pixels, flipping its direction.
func (v Viewport) ToGLY(y float32) float32 {
	return v.HalfHeight - y
}

// ToSurface converts back to surface pixels.
func (v Viewport) ToSurface(x, y float32) (float32, float32) {
	return x + v.HalfWidth, v.HalfHeight - y
}

// Rect is the visible area, which a renderer projects onto the whole
// surface.
func (v Viewport) Rect() math.Rect {
	return math.Rect{Left: v.Left, Right: v.Right, Top: v.Top, Bottom: v.Bottom}
}
