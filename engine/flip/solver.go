package flip

import (
	"github.com/spaghettifunk/pageflip/engine/math"
)

// computeMaxMeshCount sizes every mesh buffer for the largest fold the
// surface allows, taking the longer of its two sides.
func (p *PageFlip) computeMaxMeshCount() error {
	maxMesh := math.RoundUpEven(int(p.viewport.MaxOfWidthHeight()) / p.pixelsOfMesh)
	p.maxMeshCount = maxMesh

	// the slope branch emits up to 2m+5 back vertices and 2m+10 front ones
	if err := p.backOfFold.Set(maxMesh + 3); err != nil {
		return err
	}
	if err := p.front.Set((maxMesh<<1)+10, 3, true); err != nil {
		return err
	}
	p.edgeShadow.Set(maxMesh + 2)
	p.baseShadow.Set(maxMesh + 2)
	return nil
}

// meshSubdivisions divides length by pixels, halving the divisor until
// the result reaches MeshCountThreshold, and rounds it up to even.
func meshSubdivisions(length, pixels int) int {
	mesh := 0
	for i := pixels; i >= 1 && mesh < MeshCountThreshold; i >>= 1 {
		mesh = length / i
	}
	return math.RoundUpEven(mesh)
}

// computeMeshCount splits the subdivisions of the curl between the
// front and the back of the fold.
func (p *PageFlip) computeMeshCount() {
	dx := math.KAbs(p.xFold0.X - p.xFold1.X)
	dy := math.KAbs(p.yFold0.Y - p.yFold1.Y)
	length := int(dx)
	if !p.vertical {
		length = int(min(dx, dy))
	}

	mesh := meshSubdivisions(length, p.pixelsOfMesh) >> 1
	p.meshCount = math.Clamp(mesh, 1, max(p.maxMeshCount, 1))
}

// tanOfCurlAngle maps the distance between the press and the origin
// edge onto the steepest allowed curl: 65° near the edge down to 5°.
func (p *PageFlip) tanOfCurlAngle(dy float32) float32 {
	ratio := dy / p.viewport.HalfHeight
	if ratio <= 1-maxCurlAngleRatio {
		return maxPageCurlTan
	}

	degree := maxPageCurlAngle - pageCurlAngleDiff*ratio
	if degree < minPageCurlAngle {
		return minPageCurlTan
	}
	return math.KTan(math.K_PI * degree / 180)
}

func (p *PageFlip) computeKeyVertexesWhenVertical() {
	page := p.first()
	oX := page.origin.X
	oY := page.origin.Y
	dY := page.diagonal.Y

	p.touch.Y = oY
	p.middle.Y = oY

	r0 := 1 - p.semiPerimeterRatio
	r1 := 1 + p.semiPerimeterRatio
	p.xFold = math.NewVec2(p.middle.X, oY)
	p.xFold0 = math.NewVec2(oX+(p.xFold.X-oX)*r0, oY)
	p.xFold1 = math.NewVec2(oX+r1*(p.xFold.X-oX), oY)

	p.yFold = math.NewVec2(p.middle.X, dY)
	p.yFold0 = math.NewVec2(p.xFold0.X, dY)
	p.yFold1 = math.NewVec2(p.xFold1.X, dY)

	p.lenT2O = math.KAbs(p.touch.X - oX)
	p.radius = p.lenT2O * p.semiPerimeterRatio / math.K_PI
	p.computeMeshCount()
}

func (p *PageFlip) computeKeyVertexesWhenSlope() {
	page := p.first()
	oX := page.origin.X
	oY := page.origin.Y
	dx := p.middle.X - oX
	dy := p.middle.Y - oY

	r0 := 1 - p.semiPerimeterRatio
	r1 := 1 + p.semiPerimeterRatio
	p.xFold = math.NewVec2(p.middle.X+dy*dy/dx, oY)
	p.xFold0 = math.NewVec2(oX+(p.xFold.X-oX)*r0, oY)
	p.xFold1 = math.NewVec2(oX+r1*(p.xFold.X-oX), oY)

	p.yFold = math.NewVec2(oX, p.middle.Y+dx*dx/dy)
	p.yFold0 = math.NewVec2(oX, oY+(p.yFold.Y-oY)*r0)
	p.yFold1 = math.NewVec2(oX, oY+r1*(p.yFold.Y-oY))

	p.lenT2O = math.KHypot(p.touch.X-oX, p.touch.Y-oY)
	p.radius = p.lenT2O * p.semiPerimeterRatio / math.K_PI
	p.k = (p.touch.Y - oY) / (p.touch.X - oX)
	p.computeMeshCount()
}

// computeVertexes rebuilds the fold from the current touch and middle
// points.
func (p *PageFlip) computeVertexes() {
	if p.vertical {
		p.computeKeyVertexesWhenVertical()
		p.computeVertexesWhenVertical()
	} else {
		p.computeKeyVertexesWhenSlope()
		p.computeVertexesWhenSlope()
	}
	p.hasFold = true
}
