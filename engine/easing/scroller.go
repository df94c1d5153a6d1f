package easing

import (
	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/math"
)

// DefaultDuration is the scroll duration in milliseconds when none is given.
const DefaultDuration = 250

// Scroller drives a 2-D value from a start point to a final point over a
// fixed duration following an interpolation curve.
type Scroller struct {
	source       core.TimeSource
	interpolator Interpolator

	startX, startY float32
	finalX, finalY float32
	deltaX, deltaY float32
	currX, currY   float32

	duration           int
	durationReciprocal float32
	startTime          int64
	finished           bool
}

// NewScroller creates a finished scroller. A nil interpolator selects ViscousFluid.
func NewScroller(source core.TimeSource, interpolator Interpolator) *Scroller {
	if source == nil {
		source = core.SystemTime()
	}
	if interpolator == nil {
		interpolator = ViscousFluid{}
	}
	return &Scroller{
		source:       source,
		interpolator: interpolator,
		finished:     true,
	}
}

func (s *Scroller) SetInterpolator(interpolator Interpolator) {
	if interpolator == nil {
		interpolator = ViscousFluid{}
	}
	s.interpolator = interpolator
}

// Start begins a scroll from (startX, startY) by (dx, dy). A non positive
// duration falls back to DefaultDuration.
func (s *Scroller) Start(startX, startY, dx, dy float32, duration int) {
	if duration <= 0 {
		duration = DefaultDuration
	}
	s.finished = false
	s.duration = duration
	s.startTime = s.source.NowMillis()
	s.durationReciprocal = 1.0 / float32(duration)

	s.startX = startX
	s.startY = startY
	s.finalX = startX + dx
	s.finalY = startY + dy
	s.deltaX = dx
	s.deltaY = dy
	s.currX = startX
	s.currY = startY
}

// ComputeOffset samples the current position. It returns false once the
// scroller had already finished before this call.
func (s *Scroller) ComputeOffset() bool {
	if s.finished {
		return false
	}

	passed := s.source.NowMillis() - s.startTime
	if passed < int64(s.duration) {
		x := s.interpolator.Interpolate(float32(passed) * s.durationReciprocal)
		s.currX = s.startX + math.KRound(x*s.deltaX)
		s.currY = s.startY + math.KRound(x*s.deltaY)
	} else {
		s.currX = s.finalX
		s.currY = s.finalY
		s.finished = true
	}
	return true
}

// Abort jumps to the final position and finishes.
func (s *Scroller) Abort() {
	s.currX = s.finalX
	s.currY = s.finalY
	s.finished = true
}

func (s *Scroller) IsFinished() bool {
	return s.finished
}

func (s *Scroller) Duration() int {
	return s.duration
}

func (s *Scroller) CurrX() float32 {
	return s.currX
}

func (s *Scroller) CurrY() float32 {
	return s.currY
}

func (s *Scroller) StartX() float32 {
	return s.startX
}

func (s *Scroller) StartY() float32 {
	return s.startY
}

func (s *Scroller) FinalX() float32 {
	return s.finalX
}

func (s *Scroller) FinalY() float32 {
	return s.finalY
}
