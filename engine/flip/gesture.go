package flip

import (
	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/math"
)

func (p *PageFlip) setState(s State) {
	if p.state != s {
		core.LogDebug("flip state %s -> %s", p.state, s)
	}
	p.state = s
}

// OnFingerDown starts a gesture at surface pixel (x, y). It returns false
// when the point is on neither page. A press on the second page makes it
// the first one.
func (p *PageFlip) OnFingerDown(x, y float32) bool {
	if p.first() == nil {
		p.lastErr.Set(core.StatusUninit, "finger down before the surface was set")
		return false
	}
	x = p.viewport.ToGLX(x)
	y = p.viewport.ToGLY(y)

	contained := p.first().Contains(x, y)
	if !contained && p.second() != nil && p.second().Contains(x, y) {
		contained = true
		p.swapPages()
	}

	if contained {
		p.maxT2OTan = 0
		p.maxT2DTan = 0
		p.lastTouch = math.NewVec2(x, y)
		p.startTouch = p.lastTouch
		p.touch = p.lastTouch
		p.hasFold = false
		p.setState(StateBegin)
	}
	return contained
}

// OnFingerMove follows the pointer. Once it has moved far enough the
// gesture becomes a forward or backward flip and every further move
// rebuilds the fold. It returns true when the fold changed and a frame
// should be drawn.
func (p *PageFlip) OnFingerMove(x, y float32, canForward, canBackward bool) bool {
	page := p.first()
	if page == nil {
		return false
	}
	x = p.viewport.ToGLX(x)
	y = p.viewport.ToGLY(y)

	dy := y - p.startTouch.Y
	dx := x - p.startTouch.X

	if p.state == StateBegin && math.KAbs(dx) > p.viewport.HalfWidth*beginMoveRatio {
		page.SetOriginDiagonalPoints(p.second() != nil, dy > 0)

		// steepest curl toward the origin edge and toward the diagonal edge
		y2o := math.KAbs(p.startTouch.Y - page.origin.Y)
		y2d := math.KAbs(p.startTouch.Y - page.diagonal.Y)
		p.maxT2OTan = p.tanOfCurlAngle(y2o)
		p.maxT2DTan = p.tanOfCurlAngle(y2d)

		if (page.origin.Y < 0 && page.Right > 0) || (page.origin.Y > 0 && page.Right <= 0) {
			p.maxT2OTan = -p.maxT2OTan
		} else {
			p.maxT2DTan = -p.maxT2DTan
		}

		if p.second() == nil && dx > 0 && canBackward {
			p.startTouch.X = page.origin.X
			dx = x - p.startTouch.X
			p.setState(StateBackward)
			page.Textures.SetSecondTextureWithFirst()
		} else if canForward && ((dx < 0 && page.origin.X > 0) || (dx > 0 && page.origin.X < 0)) {
			p.setState(StateForward)
		}
	}

	if !p.state.IsFlipping() {
		return false
	}
	// no horizontal travel leaves the fold slope undefined
	if dx == 0 {
		return false
	}

	p.vertical = math.KAbs(dy) <= 1

	// keep the fold corner ahead of the finger
	if p.state == StateForward {
		dx *= forwardMoveScale
	} else {
		dx *= backwardMoveScale
	}

	// the pointer crossed to the other half: curl from the other corner
	if (dy < 0 && page.origin.Y < 0) || (dy > 0 && page.origin.Y > 0) {
		p.maxT2OTan, p.maxT2DTan = p.maxT2DTan, p.maxT2OTan
		page.InvertYOfOrigin()
	}

	maxY := dx * p.maxT2OTan
	if math.KAbs(dy) > math.KAbs(maxY) {
		dy = maxY
	}

	// keep XFold1 inside the page width
	t2oK := dy / dx
	xTouchX := dx + dy*t2oK
	xRatio := (1 + p.semiPerimeterRatio) * 0.5
	if math.KAbs(xRatio*xTouchX)+2 >= page.Width {
		dy2 := ((page.diagonal.X-page.origin.X)/xRatio - dx) * dx
		// happens when the pointer crosses into the other page of a spread
		if dy2 < 0 {
			return false
		}

		t := math.KSqrt(dy2)
		if page.origin.Y > 0 {
			dy = float32(int(math.KCeil(-t)))
		} else {
			dy = float32(int(math.KFloor(t)))
		}
	}

	p.lastTouch = math.NewVec2(x, y)
	p.touch = math.NewVec2(dx+page.origin.X, dy+page.origin.Y)
	p.middle = math.NewVec2((p.touch.X+page.origin.X)*0.5, (p.touch.Y+page.origin.Y)*0.5)

	p.computeVertexes()
	return true
}

// OnFingerUp ends a gesture and starts the animation that finishes it:
// forward to the other side, back to the origin, or a click flip. It
// returns true when an animation was started.
func (p *PageFlip) OnFingerUp(x, y float32, duration int, canForward, canBackward bool) bool {
	page := p.first()
	if page == nil {
		return false
	}
	x = p.viewport.ToGLX(x)
	y = p.viewport.ToGLY(y)

	start := p.touch
	var end math.Vec2

	switch p.state {
	case StateForward:
		if page.IsXInRange(x, widthRatioOfRestoreFlip) {
			end.X = page.origin.X
			p.setState(StateRestore)
		} else if p.second() != nil && page.origin.X < 0 {
			end.X = page.diagonal.X + page.Width
		} else {
			end.X = page.diagonal.X - page.Width
		}
		end.Y = page.origin.Y

	case StateBackward:
		if !page.IsXInRange(x, backwardCommitRatio) {
			p.setState(StateForward)
			end = math.NewVec2(page.diagonal.X-page.Width, page.origin.Y)
		} else {
			// the animation follows this line back to the origin
			p.maxT2OTan = (p.touch.Y - page.origin.Y) / (p.touch.X - page.origin.X)
			p.k = p.maxT2OTan
			end = math.NewVec2(float32(int(page.origin.X)), float32(int(page.origin.Y)))
		}

	case StateBegin:
		p.vertical = false
		p.setState(StateEndIdle)
		page.SetOriginDiagonalPoints(p.second() != nil, -y > 0)

		if p.clickToFlip && math.KAbs(x-p.startTouch.X) < clickDistance {
			start, end = p.computeScrollPointsForClickingFlip(x, canForward, canBackward, start)
		}
	}

	if p.state.IsFlipping() {
		p.scroller.Start(start.X, start.Y, end.X-start.X, end.Y-start.Y, duration)
		return true
	}
	return false
}

// computeScrollPointsForClickingFlip turns a click into a scripted flip.
// Clicking near the spine side of a single page flips backward, clicking
// near the outer edge flips forward.
func (p *PageFlip) computeScrollPointsForClickingFlip(x float32, canForward, canBackward bool, start math.Vec2) (math.Vec2, math.Vec2) {
	page := p.first()
	origin := page.origin
	diagonal := page.diagonal
	hasSecondPage := p.second() != nil
	var end math.Vec2

	tanForward := forwardClickTan
	tanBackward := backwardClickTan
	if (origin.Y < 0 && origin.X > 0) || (origin.Y > 0 && origin.X < 0) {
		tanForward = -tanForward
		tanBackward = -tanBackward
	}

	if !hasSecondPage && x < diagonal.X+page.Width*p.widthRatioOfClickToFlip && canBackward {
		p.setState(StateBackward)
		p.k = tanBackward
		page.Textures.SetSecondTextureWithFirst()
		start = math.NewVec2(diagonal.X, origin.Y+(start.X-origin.X)*p.k)
		end = math.NewVec2(origin.X-5, origin.Y)
	} else if canForward && page.IsXInRange(x, DefaultWidthRatioOfClickToFlip) {
		p.setState(StateForward)
		p.k = tanForward

		if origin.X < 0 {
			start.X = float32(int(origin.X + page.Width*0.25))
		} else {
			start.X = float32(int(origin.X - page.Width*0.25))
		}
		start.Y = origin.Y + (start.X-origin.X)*p.k

		if hasSecondPage && origin.X < 0 {
			end.X = diagonal.X + page.Width
		} else {
			end.X = diagonal.X - page.Width
		}
		end.Y = origin.Y
	}
	return start, end
}
