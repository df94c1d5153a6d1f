package flip

import (
	"github.com/spaghettifunk/pageflip/engine/math"
)

// computeVertexesWhenVertical builds the fold when the curl axis is
// parallel to the page's vertical edges. The back of the fold is a
// strip of vertex pairs along the half cylinder, followed by the pair
// at the touch point.
func (p *PageFlip) computeVertexesWhenVertical() {
	page := p.first()
	oY := page.origin.Y
	dY := page.diagonal.Y
	oTexX := page.origin.TexX
	oTexY := page.origin.TexY
	dTexY := page.diagonal.TexY

	x := p.middle.X
	stepX := (p.middle.X - p.xFold0.X) / float32(p.meshCount)

	p.backOfFold.Reset()
	for i := 0; i <= p.meshCount; i, x = i+1, x-stepX {
		rad := (x - p.xFold1.X) / p.radius
		sinR := math.KSin(rad)
		texX := page.TextureX(x)
		fx := p.xFold1.X + p.radius*sinR
		fz := p.radius * (1 - math.KCos(rad))

		p.backOfFold.Add4Tex(fx, dY, fz, sinR, texX, dTexY)
		p.backOfFold.Add4Tex(fx, oY, fz, sinR, texX, oTexY)
	}

	tpX := p.touch.X
	p.backOfFold.Add4Tex(tpX, dY, 1, 0, oTexX, dTexY)
	p.backOfFold.Add4Tex(tpX, oY, 1, 0, oTexX, oTexY)

	sw := -p.edgeShadowWidth.Width(p.radius)
	bw := p.baseShadowWidth.Width(p.radius)
	if page.origin.X < 0 {
		sw = -sw
		bw = -bw
	}

	bx0 := p.backOfFold.FloatAt(0)
	p.baseShadow.Reset()
	p.baseShadow.SetVertexes(0, bx0, oY, bx0+bw, oY).
		SetVertexes(8, bx0, dY, bx0+bw, dY).
		SetRange(0, 16)

	p.edgeShadow.Reset()
	p.edgeShadow.SetVertexes(0, tpX, oY, tpX+sw, oY).
		SetVertexes(8, tpX, dY, tpX+sw, dY).
		SetRange(0, 16)

	p.front.Reset()
	page.BuildVertexesWhenVertical(p.front, p.xFold1)
}
