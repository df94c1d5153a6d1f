package easing

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/pageflip/engine/math"
)

// Interpolator maps elapsed/duration in [0, 1] onto animation progress in [0, 1].
type Interpolator interface {
	Interpolate(input float32) float32
}

type Linear struct{}

func (Linear) Interpolate(input float32) float32 {
	return input
}

// Accelerate starts slow and speeds up; Factor 1 is a parabola.
type Accelerate struct {
	Factor float32
}

func (a Accelerate) Interpolate(input float32) float32 {
	if a.Factor == 0 || a.Factor == 1 {
		return input * input
	}
	return pow(input, 2*a.Factor)
}

// Decelerate starts fast and slows down; Factor 1 is an inverted parabola.
type Decelerate struct {
	Factor float32
}

func (d Decelerate) Interpolate(input float32) float32 {
	if d.Factor == 0 || d.Factor == 1 {
		return 1 - (1-input)*(1-input)
	}
	return 1 - pow(1-input, 2*d.Factor)
}

const (
	viscousFluidScale = 8.0
	// 1/e
	viscousFluidStart = 0.36787944117
)

var (
	viscousFluidNormalize = 1.0 / viscousFluid(1.0)
	viscousFluidOffset    = 1.0 - viscousFluidNormalize*viscousFluid(1.0)
)

// ViscousFluid models a body decelerating in a viscous fluid: a quick
// exponential approach followed by a long tail.
type ViscousFluid struct{}

func (ViscousFluid) Interpolate(input float32) float32 {
	interpolated := viscousFluidNormalize * viscousFluid(input)
	if interpolated > 0 {
		return interpolated + viscousFluidOffset
	}
	return interpolated
}

func viscousFluid(x float32) float32 {
	x *= viscousFluidScale
	if x < 1.0 {
		return x - (1.0 - math.KExp(-x))
	}
	x = 1.0 - math.KExp(1.0-x)
	return viscousFluidStart + x*(1.0-viscousFluidStart)
}

func pow(x, y float32) float32 {
	if x <= 0 {
		return 0
	}
	return math.KPow(x, y)
}

// ByName returns the interpolator registered under name.
func ByName(name string) (Interpolator, error) {
	switch strings.ToLower(name) {
	case "", "viscous", "viscous-fluid":
		return ViscousFluid{}, nil
	case "linear":
		return Linear{}, nil
	case "accelerate":
		return Accelerate{Factor: 1}, nil
	case "decelerate":
		return Decelerate{Factor: 1}, nil
	}
	return nil, fmt.Errorf("unknown interpolator %q", name)
}

// Names lists the names ByName accepts.
func Names() []string {
	return []string{"viscous", "linear", "accelerate", "decelerate"}
}

// Sample evaluates interpolator at n evenly spaced points of [0, 1].
func Sample(interpolator Interpolator, n int) []float64 {
	if n < 2 {
		n = 2
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(interpolator.Interpolate(float32(i) / float32(n-1)))
	}
	return out
}
