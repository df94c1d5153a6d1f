package flip

import (
	"github.com/spaghettifunk/pageflip/engine/math"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
	"github.com/spaghettifunk/pageflip/engine/vertex"
)

// PageFrame is a flat page, drawn as a fan of its four corners.
type PageFrame struct {
	Rect    math.Rect
	Corners [4]math.Point
	Texture metadata.Texture
}

// ShadowFrame is a gradient strip of x, y, color, alpha vertices.
type ShadowFrame struct {
	Vertices []float32
	Count    int
	Z        float32
}

// FoldFrame is the geometry of a page being turned. Every strip is a
// triangle strip.
type FoldFrame struct {
	// x, y, z, sin of the curl angle
	BackPositions []float32
	BackTexCoords []float32
	BackCount     int
	BackTexture   metadata.Texture
	GradientLight metadata.Texture
	Uniforms      vertex.Uniforms

	// x, y, z; vertices before FrontSplit use FrontFirst, the rest
	// FrontSecond
	FrontPositions []float32
	FrontTexCoords []float32
	FrontCount     int
	FrontSplit     int
	FrontFirst     metadata.Texture
	FrontSecond    metadata.Texture

	EdgeShadow ShadowFrame
	BaseShadow ShadowFrame
}

// Frame is everything a renderer needs for one picture. The slices
// alias the internal buffers and stay valid until the next input event
// or animation tick.
type Frame struct {
	State State
	View  math.Rect
	// Folding is false for a still frame, which only has Pages.
	Folding bool
	// the flat pages in draw order; while folding only the second page
	Pages []PageFrame
	Fold  FoldFrame
}

func pageFrame(page *Page) PageFrame {
	return PageFrame{
		Rect:    page.Rect(),
		Corners: page.Corners(),
		Texture: page.Textures.Texture(FirstTexture),
	}
}

func shadowFrame(s *vertex.ShadowBuffer) ShadowFrame {
	return ShadowFrame{
		Vertices: s.Vertices(),
		Count:    s.Count(),
		Z:        s.Z(),
	}
}

// Frame describes the current picture. A fold is drawn while a flip is
// running and its geometry has been built; otherwise the pages are flat.
func (p *PageFlip) Frame() Frame {
	f := Frame{State: p.state, View: p.viewport.Rect()}
	first := p.first()
	if first == nil {
		return f
	}
	second := p.second()

	if !p.state.IsFlipping() || !p.hasFold {
		f.Pages = append(f.Pages, pageFrame(first))
		if second != nil {
			f.Pages = append(f.Pages, pageFrame(second))
		}
		return f
	}

	f.Folding = true
	if second != nil {
		f.Pages = append(f.Pages, pageFrame(second))
	}
	f.Fold = FoldFrame{
		BackPositions:  p.backOfFold.Positions(),
		BackTexCoords:  p.backOfFold.TexCoords(),
		BackCount:      p.backOfFold.Count(),
		BackTexture:    first.Textures.BackTextureOrFirst(),
		GradientLight:  p.gradientLight,
		Uniforms:       p.backOfFold.Uniforms(second != nil, first.Textures.MaskColorOfFirstTexture()),
		FrontPositions: p.front.Positions(),
		FrontTexCoords: p.front.TexCoords(),
		FrontCount:     p.front.Count(),
		FrontSplit:     first.FrontVertexCount(),
		FrontFirst:     first.Textures.Texture(FirstTexture),
		FrontSecond:    first.Textures.Texture(SecondTexture),
		EdgeShadow:     shadowFrame(p.edgeShadow),
		BaseShadow:     shadowFrame(p.baseShadow),
	}
	return f
}
