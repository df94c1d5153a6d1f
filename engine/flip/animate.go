package flip

import (
	"github.com/spaghettifunk/pageflip/engine/math"
)

// Animating advances the running animation by one tick and rebuilds the
// fold. It returns false once the animation is over, after moving the
// state to its END_* counterpart.
func (p *PageFlip) Animating() bool {
	page := p.first()
	if page == nil {
		return false
	}
	origin := page.origin
	diagonal := page.diagonal

	animating := !p.scroller.IsFinished()
	if animating {
		p.scroller.ComputeOffset()
		p.touch = math.NewVec2(p.scroller.CurrX(), p.scroller.CurrY())

		if p.state == StateBackward || p.state == StateRestore {
			p.touch.Y = (p.touch.X-origin.X)*p.k + origin.Y
			animating = math.KAbs(p.touch.X-origin.X) > animationStopDistance
		} else {
			p.vertical = math.KAbs(p.touch.Y-origin.Y) < 1
		}

		p.middle = math.NewVec2((p.touch.X+origin.X)*0.5, (p.touch.Y+origin.Y)*0.5)
		if p.vertical {
			p.computeKeyVertexesWhenVertical()
		} else {
			p.computeKeyVertexesWhenSlope()
		}

		if p.second() != nil {
			// keep XFold1 on the page so the fold keeps going forward on
			// the spread
			if page.IsXOutsidePage(p.xFold1.X) {
				p.xFold1.X = diagonal.X
				cosA := (p.touch.X - origin.X) / p.lenT2O
				ratio := 1 - page.Width*math.KAbs(cosA)/p.lenT2O
				p.radius = p.lenT2O * (1 - 2*ratio) / math.K_PI
				p.xFold0.X = p.lenT2O*ratio/cosA + origin.X

				if p.vertical {
					p.yFold0.X = p.xFold0.X
					p.yFold1.X = p.xFold1.X
				} else {
					p.yFold1.Y = origin.Y + (p.xFold1.X-origin.X)/p.k
					p.yFold0.Y = origin.Y + (p.xFold0.X-origin.X)/p.k
				}

				length := math.KAbs(p.middle.X - p.xFold0.X)
				if float32(p.meshCount) > length {
					p.meshCount = int(length)
				}
				animating = p.meshCount > 0 && math.KAbs(p.xFold0.X-diagonal.X) >= 2
			}
		} else if p.state == StateForward {
			// stop once the curl has left the surface
			r := p.lenT2O * p.semiPerimeterRatio / math.K_PI
			x := (p.yFold1.Y-diagonal.Y)*p.k + r
			animating = x > diagonal.X-origin.X
		}
	}

	if !animating {
		p.Abort()
	} else {
		if p.vertical {
			p.computeVertexesWhenVertical()
		} else {
			p.computeVertexesWhenSlope()
		}
		p.hasFold = true
	}
	return animating
}

// Abort stops the animation where it is.
func (p *PageFlip) Abort() {
	p.scroller.Abort()
	p.setState(p.state.ended())
}

// CanAnimate reports whether a release at surface pixel (x, y) should
// keep a forward flip animating, which is the case once the pointer has
// left the first page.
func (p *PageFlip) CanAnimate(x, y float32) bool {
	page := p.first()
	if page == nil {
		return false
	}
	return p.state == StateForward &&
		!page.Contains(p.viewport.ToGLX(x), p.viewport.ToGLY(y))
}

func (p *PageFlip) IsAnimating() bool {
	return !p.scroller.IsFinished()
}
