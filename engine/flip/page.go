package flip

import (
	"github.com/spaghettifunk/pageflip/engine/math"
	"github.com/spaghettifunk/pageflip/engine/vertex"
)

// Page is one leaf: its rectangle, its four corners and the corners the
// current fold is anchored on.
type Page struct {
	Left   float32
	Right  float32
	Top    float32
	Bottom float32
	Width  float32
	Height float32

	// normally equal to the page size
	TexWidth  float32
	TexHeight float32

	origin   math.Point
	diagonal math.Point
	xFold    math.Point
	yFold    math.Point

	// stored as right-bottom, right-top, left-top, left-bottom
	corners          [4]math.Point
	originCorner     Corner
	foldCase         FoldCase
	frontVertexCount int

	Textures *Textures
}

func NewPage(left, right, top, bottom float32) *Page {
	p := &Page{
		Left:     left,
		Right:    right,
		Top:      top,
		Bottom:   bottom,
		Width:    right - left,
		Height:   top - bottom,
		Textures: NewTextures(),
	}
	p.TexWidth = p.Width
	p.TexHeight = p.Height
	p.buildCorners()
	return p
}

func (p *Page) corner(x, y float32) math.Point {
	return math.Point{X: x, Y: y, TexX: p.TextureX(x), TexY: p.TextureY(y)}
}

func (p *Page) buildCorners() {
	p.corners[CornerRightBottom] = p.corner(p.Right, p.Bottom)
	p.corners[CornerRightTop] = p.corner(p.Right, p.Top)
	p.corners[CornerLeftTop] = p.corner(p.Left, p.Top)
	p.corners[CornerLeftBottom] = p.corner(p.Left, p.Bottom)
}

// IsLeftPage reports a page that lies left of the spine.
func (p *Page) IsLeftPage() bool {
	return p.Right <= 0
}

func (p *Page) IsRightPage() bool {
	return p.Left >= 0
}

func (p *Page) Contains(x, y float32) bool {
	return p.Left < p.Right && p.Bottom < p.Top &&
		p.Left <= x && x < p.Right &&
		p.Bottom <= y && y < p.Top
}

// IsXInRange reports whether x is within ratio·width of the origin edge.
func (p *Page) IsXInRange(x, ratio float32) bool {
	w := p.Width * ratio
	if p.origin.X < 0 {
		return x < p.origin.X+w
	}
	return x > p.origin.X-w
}

// IsXOutsidePage reports whether x is beyond the diagonal edge.
func (p *Page) IsXOutsidePage(x float32) bool {
	if p.origin.X < 0 {
		return x > p.diagonal.X
	}
	return x < p.diagonal.X
}

func (p *Page) TextureX(x float32) float32 {
	return (x - p.Left) / p.TexWidth
}

func (p *Page) TextureY(y float32) float32 {
	return (p.Top - y) / p.TexHeight
}

func (p *Page) Origin() math.Point {
	return p.origin
}

func (p *Page) Diagonal() math.Point {
	return p.diagonal
}

func (p *Page) OriginCorner() Corner {
	return p.originCorner
}

// FoldCase is the case used by the last mesh build.
func (p *Page) FoldCase() FoldCase {
	return p.foldCase
}

// FrontVertexCount is the number of front vertices drawn with the first
// texture; the rest of the front strip uses the second one.
func (p *Page) FrontVertexCount() int {
	return p.frontVertexCount
}

// Corners returns the flat page as a fan.
func (p *Page) Corners() [4]math.Point {
	return p.corners
}

func (p *Page) Rect() math.Rect {
	return math.Rect{Left: p.Left, Right: p.Right, Top: p.Top, Bottom: p.Bottom}
}

func (p *Page) computeOriginCorner() {
	if p.origin.X < p.Right && p.origin.Y < 0 {
		p.originCorner = CornerLeftBottom
		return
	}
	p.originCorner = CornerRightBottom
	if p.origin.Y > 0 {
		p.originCorner++
	}
	if p.origin.X < p.Right {
		p.originCorner++
	}
}

// SetOriginDiagonalPoints anchors the fold. The origin sits on the
// outer edge, or on the left edge for the left page of a spread, and on
// the bottom when the gesture goes upward.
func (p *Page) SetOriginDiagonalPoints(hasSecondPage, isTopArea bool) {
	if hasSecondPage && p.Left < 0 {
		p.origin.X = p.Left
		p.diagonal.X = p.Right
	} else {
		p.origin.X = p.Right
		p.diagonal.X = p.Left
	}

	if isTopArea {
		p.origin.Y = p.Bottom
		p.diagonal.Y = p.Top
	} else {
		p.origin.Y = p.Top
		p.diagonal.Y = p.Bottom
	}

	p.computeOriginCorner()
	p.origin.TexX = p.TextureX(p.origin.X)
	p.origin.TexY = p.TextureY(p.origin.Y)
	p.diagonal.TexX = p.TextureX(p.diagonal.X)
	p.diagonal.TexY = p.TextureY(p.diagonal.Y)
}

// InvertYOfOrigin swaps the y of origin and diagonal.
func (p *Page) InvertYOfOrigin() {
	p.origin.Y, p.diagonal.Y = p.diagonal.Y, p.origin.Y
	p.origin.TexY, p.diagonal.TexY = p.diagonal.TexY, p.origin.TexY
	p.computeOriginCorner()
}

// BuildVertexesWhenVertical appends the flat part of a page folded along
// a vertical line through xFold1.
func (p *Page) BuildVertexesWhenVertical(front *vertex.Buffer, xFold1 math.Vec2) {
	fold := FoldOutside
	if !p.IsXOutsidePage(xFold1.X) {
		fold = FoldYClipped
		texX := p.TextureX(xFold1.X)
		p.xFold = math.Point{X: xFold1.X, Y: p.origin.Y, TexX: texX, TexY: p.origin.TexY}
		p.yFold = math.Point{X: xFold1.X, Y: p.diagonal.Y, TexX: texX, TexY: p.diagonal.TexY}
	}
	p.emit(front, fold)
}

// BuildVertexesWhenSlope appends the flat part of a page folded along
// the line through xFold1 and yFold1 with slope k.
func (p *Page) BuildVertexesWhenSlope(front *vertex.Buffer, xFold1, yFold1 math.Vec2, k float32) {
	halfH := p.Height * 0.5
	fold := FoldWithin

	p.xFold = math.Point{X: xFold1.X, Y: p.origin.Y, TexX: p.TextureX(xFold1.X), TexY: p.origin.TexY}
	if p.IsXOutsidePage(xFold1.X) {
		fold = FoldXClipped
		p.xFold.X = p.diagonal.X
		p.xFold.Y = p.origin.Y + (p.xFold.X-p.diagonal.X)/k
		p.xFold.TexX = p.diagonal.TexX
		p.xFold.TexY = p.TextureY(p.xFold.Y)
	}

	p.yFold = math.Point{X: p.origin.X, Y: yFold1.Y, TexX: p.origin.TexX, TexY: p.TextureY(yFold1.Y)}
	if math.KAbs(yFold1.Y) > halfH {
		fold++
		p.yFold.X = p.origin.X + k*(yFold1.Y-p.diagonal.Y)
		if p.IsXOutsidePage(p.yFold.X) {
			fold++
		} else {
			p.yFold.Y = p.diagonal.Y
			p.yFold.TexX = p.TextureX(p.yFold.X)
			p.yFold.TexY = p.diagonal.TexY
		}
	}
	p.emit(front, fold)
}

func (p *Page) emit(front *vertex.Buffer, fold FoldCase) {
	p.foldCase = fold
	order := OrderOf(fold)

	if order.HasFoldPoints() {
		front.AddPointZ(p.xFold, 0).AddPointZ(p.yFold, 0)
	}
	for _, role := range order.FrontRoles() {
		front.AddPointZ(p.corners[CornerOf(p.originCorner, role)], 0)
	}
	p.frontVertexCount = front.Count()

	if order.HasFoldPoints() {
		front.AddPointZ(p.xFold, -1).AddPointZ(p.yFold, -1)
	}
	for _, role := range order.BackRoles() {
		front.AddPointZ(p.corners[CornerOf(p.originCorner, role)], -1)
	}
}
