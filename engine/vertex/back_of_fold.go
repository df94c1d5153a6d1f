package vertex

import (
	"github.com/spaghettifunk/pageflip/engine/core"
)

const DefaultMaskAlpha float32 = 0.6

// BackOfFold holds the curled part of a page seen from behind. Each
// vertex is x, y, z plus the sine of its curl angle, which the renderer
// uses to look up the gradient light texture.
type BackOfFold struct {
	*Buffer
	maskAlpha float32
}

func NewBackOfFold() *BackOfFold {
	return &BackOfFold{
		Buffer:    &Buffer{},
		maskAlpha: DefaultMaskAlpha,
	}
}

// Set sizes the buffer for meshCount vertex pairs.
func (b *BackOfFold) Set(meshCount int) error {
	return b.Buffer.Set(meshCount<<1, 4, true)
}

// SetMaskAlphaInt takes an alpha in [0, 255].
func (b *BackOfFold) SetMaskAlphaInt(alpha int) core.Status {
	if alpha < 0 || alpha > 255 {
		return core.StatusInvalidParameter
	}
	b.maskAlpha = float32(alpha) / 255.0
	return core.StatusOK
}

// SetMaskAlpha takes an alpha in [0, 1].
func (b *BackOfFold) SetMaskAlpha(alpha float32) core.Status {
	if alpha < 0 || alpha > 1 {
		return core.StatusInvalidParameter
	}
	b.maskAlpha = alpha
	return core.StatusOK
}

func (b *BackOfFold) MaskAlpha() float32 {
	return b.maskAlpha
}

// Uniforms are the per draw values the back of fold shader needs.
type Uniforms struct {
	// TexXOffset is 1 when the back shows the next page's texture
	// mirrored from a second page.
	TexXOffset float32
	MaskColor  [4]float32
}

// Uniforms derives the draw values from the first texture's mask color.
// With a second page the mask is fully transparent.
func (b *BackOfFold) Uniforms(hasSecondPage bool, maskColor [3]float32) Uniforms {
	u := Uniforms{
		MaskColor: [4]float32{maskColor[0], maskColor[1], maskColor[2], b.maskAlpha},
	}
	if hasSecondPage {
		u.TexXOffset = 1
		u.MaskColor[3] = 0
	}
	return u
}
