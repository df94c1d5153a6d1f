package flip

import (
	"github.com/spaghettifunk/pageflip/engine/math"
)

// curl holds the per build constants of a slope fold. Points handed to
// it are relative to the origin; it rotates them by the curl angle so
// the cylinder axis becomes vertical, wraps them around the cylinder and
// rotates them back.
type curl struct {
	p         *PageFlip
	oX, oY    float32
	sinA      float32
	cosA      float32
	xfx       float32
	baseWCosA float32
	baseWSinA float32
}

// wrap returns the curled position of (x0, y0) and the sine of its angle
// on the cylinder.
func (c *curl) wrap(x0, y0 float32) (cx, cy, cz, sinR float32) {
	x := x0*c.cosA - y0*c.sinA
	y := x0*c.sinA + y0*c.cosA

	rad := (x - c.xfx) / c.p.radius
	sinR = math.KSin(rad)
	x = c.xfx + c.p.radius*sinR
	cz = c.p.radius * (1 - math.KCos(rad))

	cx = x*c.cosA + y*c.sinA + c.oX
	cy = y*c.cosA - x*c.sinA + c.oY
	return cx, cy, cz, sinR
}

func (c *curl) backVertex(x0, y0, texX, texY float32) {
	cx, cy, cz, sinR := c.wrap(x0, y0)
	c.p.backOfFold.Add4Tex(cx, cy, cz, sinR, texX, texY)
}

// backVertexShadow adds a back vertex and the edge shadow pair that
// follows it. The shadow point shares the vertex's curl.
func (c *curl) backVertexShadow(isX bool, x0, y0, sx0, sy0, texX, texY float32) {
	cx, cy, cz, sinR := c.wrap(x0, y0)
	c.p.backOfFold.Add4Tex(cx, cy, cz, sinR, texX, texY)

	sx := sx0*c.cosA - sy0*c.sinA
	sy := sx0*c.sinA + sy0*c.cosA
	sx = c.xfx + c.p.radius*math.KSin((sx-c.xfx)/c.p.radius)
	c.p.edgeShadow.AddVertexes(isX, cx, cy,
		sx*c.cosA+sy*c.sinA+c.oX,
		sy*c.cosA-sx*c.sinA+c.oY)
}

func (c *curl) frontVertex(x0, y0, texX, texY float32) {
	cx, cy, cz, _ := c.wrap(x0, y0)
	c.p.front.Add3Tex(cx, cy, cz, texX, texY)
}

func (c *curl) frontVertexShadow(isX bool, x0, y0, texX, texY float32) {
	cx, cy, cz, _ := c.wrap(x0, y0)
	c.p.front.Add3Tex(cx, cy, cz, texX, texY)
	c.p.baseShadow.AddVertexes(isX, cx, cy, cx+c.baseWCosA, cy-c.baseWSinA)
}

// baseShadowLastVertex closes the backward run of the base shadow when
// the fold leaves the page: the curled point is projected along the
// fold slope onto the diagonal edge.
func (c *curl) baseShadowLastVertex(x0, y0, dY float32) {
	cx1, cy1, _, _ := c.wrap(x0, y0)
	cx2 := cx1 + c.baseWCosA
	cy2 := cy1 - c.baseWSinA

	k := c.p.k
	bx1 := cx1 + k*(cy1-dY)
	bx2 := cx2 + k*(cy2-dY)
	c.p.baseShadow.AddVertexes(false, bx1, dY, bx2, dY)
}

// computeVertexesWhenSlope builds the fold for a curl axis at an angle.
// The back and front of the fold are walked in mesh steps along both
// page edges from the origin. When the Y fold points run past the page
// height, the remaining steps are projected onto the diagonal edge.
func (p *PageFlip) computeVertexesWhenSlope() {
	page := p.first()
	oX := page.origin.X
	oY := page.origin.Y
	dY := page.diagonal.Y
	oTexX := page.origin.TexX
	oTexY := page.origin.TexY
	dTexY := page.diagonal.TexY
	height := page.Height
	d2oY := dY - oY
	mesh := float32(p.meshCount)

	sinA := (p.touch.Y - oY) / p.lenT2O
	cosA := (oX - p.touch.X) / p.lenT2O
	edgeW := p.edgeShadowWidth.Width(p.radius)
	baseW := p.baseShadowWidth.Width(p.radius)
	c := curl{
		p:         p,
		oX:        oX,
		oY:        oY,
		sinA:      sinA,
		cosA:      cosA,
		xfx:       (p.xFold1.X - oX) * cosA,
		baseWCosA: baseW * cosA,
		baseWSinA: baseW * sinA,
	}

	edgeY := -edgeW
	if oY > 0 {
		edgeY = edgeW
	}
	edgeX := -edgeW
	if oX > 0 {
		edgeX = edgeW
	}
	stepSY := edgeY / mesh
	stepSX := edgeX / mesh

	p.edgeShadow.Reset()
	p.baseShadow.Reset()
	p.front.Reset()
	p.backOfFold.Reset()

	// the fold triangle starts at the touch point
	p.backOfFold.Add4Tex(p.touch.X, p.touch.Y, 1, 0, oTexX, oTexY)

	// back of the fold, from XFold0/YFold0 toward XFold/YFold
	stepX := (p.xFold0.X - p.xFold.X) / mesh
	stepY := (p.yFold0.Y - p.yFold.Y) / mesh
	x := p.xFold0.X - oX
	y := p.yFold0.Y - oY
	sx := edgeX
	sy := edgeY

	i := 0
	for ; i <= p.meshCount && math.KAbs(y) < height; i++ {
		c.backVertexShadow(true, x, 0, x, sy, page.TextureX(x+oX), oTexY)
		c.backVertexShadow(false, 0, y, sx, y, oTexX, page.TextureY(y+oY))
		x -= stepX
		y -= stepY
		sy -= stepSY
		sx -= stepSX
	}

	if i <= p.meshCount {
		if math.KAbs(y) != height {
			if math.KAbs(p.yFold0.Y-oY) > height {
				// the whole Y side is above the page: the fold crosses the
				// diagonal edge at a single point
				tx := oX + 2*p.k*(p.yFold.Y-dY)
				ty := dY + p.k*(tx-oX)
				p.backOfFold.Add4Tex(tx, ty, 1, 0, oTexX, dTexY)

				tsx := tx - sx
				tsy := dY + p.k*(tsx-oX)
				p.edgeShadow.AddVertexes(false, tx, ty, tsx, tsy)
			} else {
				x1 := p.k * d2oY
				c.backVertexShadow(true, x1, 0, x1, sy, page.TextureX(x1+oX), oTexY)
				c.backVertexShadow(false, 0, d2oY, sx, d2oY, oTexX, dTexY)
			}
		}

		for ; i <= p.meshCount; i++ {
			c.backVertexShadow(true, x, 0, x, sy, page.TextureX(x+oX), oTexY)

			x1 := p.k * (y + oY - dY)
			c.backVertex(x1, d2oY, page.TextureX(x1+oX), dTexY)
			x -= stepX
			y -= stepY
			sy -= stepSY
			sx -= stepSX
		}
	}

	// front of the fold, from XFold/YFold toward XFold1/YFold1
	stepX = (p.xFold.X - p.xFold1.X) / mesh
	stepY = (p.yFold.Y - p.yFold1.Y) / mesh
	x = p.xFold.X - oX - stepX
	y = p.yFold.Y - oY - stepY

	j := 0
	for ; j < p.meshCount && math.KAbs(y) < height; j++ {
		c.frontVertexShadow(true, x, 0, page.TextureX(x+oX), oTexY)
		c.frontVertexShadow(false, 0, y, oTexX, page.TextureY(y+oY))
		x -= stepX
		y -= stepY
	}

	if j < p.meshCount {
		if math.KAbs(y) != height && j > 0 {
			y1 := dY - oY
			x1 := p.k * y1
			c.frontVertexShadow(true, x1, 0, page.TextureX(x1+oX), oTexY)
			c.frontVertex(0, y1, oTexX, page.TextureY(y1+oY))
		}

		c.baseShadowLastVertex(0, y, dY)

		for ; j < p.meshCount; j++ {
			c.frontVertexShadow(true, x, 0, page.TextureX(x+oX), oTexY)

			x1 := p.k * (y + oY - dY)
			c.frontVertex(x1, d2oY, page.TextureX(x1+oX), dTexY)
			x -= stepX
			y -= stepY
		}
	}

	p.edgeShadow.SetVertexZ(p.front.FloatAt(2))
	p.baseShadow.SetVertexZ(-0.5)

	page.BuildVertexesWhenSlope(p.front, p.xFold1, p.yFold1, p.k)

	p.computeVertexesOfFoldTopEdgeShadow(p.touch.X, p.touch.Y, sinA, cosA, -edgeX, edgeY)
}

// computeVertexesOfFoldTopEdgeShadow fills the reserved slots of the
// edge shadow with a quarter circle at the origin, rotated by twice the
// curl angle and moved to the touch point.
func (p *PageFlip) computeVertexesOfFoldTopEdgeShadow(x0, y0, sinA, cosA, sx, sy float32) {
	sin2A := 2 * sinA * cosA
	cos2A := 1 - 2*sinA*sinA
	dr := math.K_PI / (foldTopEdgeShadowVexCount - 2)
	size := foldTopEdgeShadowVexCount / 2

	var r float32
	j := p.edgeShadow.MaxBackward()
	for i := 0; i < size; i++ {
		x := sx * math.KCos(r)
		y := sy * math.KSin(r)
		p.edgeShadow.SetVertexes(j, x0, y0,
			x*cos2A+y*sin2A+x0,
			y*cos2A-x*sin2A+y0)
		r += dr
		j += 8
	}
}
