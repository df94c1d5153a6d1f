package vertex

import (
	"testing"

	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferStrideValidation(t *testing.T) {
	_, err := NewBuffer(4, 1, false)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestBufferWriteAndReset(t *testing.T) {
	b, err := NewBuffer(3, 4, true)
	require.NoError(t, err)

	b.Add4Tex(1, 2, 3, 0.5, 0.1, 0.2).Add4Tex(4, 5, 6, -0.5, 0.3, 0.4)
	assert.Equal(t, 2, b.Count())
	assert.Equal(t, []float32{1, 2, 3, 0.5, 4, 5, 6, -0.5}, b.Positions())
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, b.TexCoords())
	assert.Equal(t, float32(4), b.FloatAt(4))
	assert.Zero(t, b.FloatAt(8), "outside the written range")
	assert.Zero(t, b.FloatAt(-1))

	v := b.Vertex(1)
	assert.Equal(t, math.Point{X: 4, Y: 5, Z: 6, TexX: 0.3, TexY: 0.4}, v)

	b.Reset()
	assert.Zero(t, b.Count())
	assert.Empty(t, b.Positions())
	assert.Equal(t, 3, b.Capacity())
}

func TestBufferAddPoint(t *testing.T) {
	b, err := NewBuffer(2, 3, true)
	require.NoError(t, err)
	b.AddPoint(math.Point{X: 1, Y: 2, Z: 0, TexX: 1, TexY: 0})
	b.AddPointZ(math.Point{X: 1, Y: 2, TexX: 1, TexY: 0}, -1)
	assert.Equal(t, []float32{1, 2, 0, 1, 2, -1}, b.Positions())
	assert.Equal(t, []float32{1, 0, 1, 0}, b.TexCoords())
}

func TestBufferOverflowPanics(t *testing.T) {
	b, err := NewBuffer(1, 3, false)
	require.NoError(t, err)
	b.Add3(0, 0, 0)
	assert.Panics(t, func() { b.Add3(1, 1, 1) })
}

func TestShadowWidth(t *testing.T) {
	w := NewShadowWidth(5, 30, 0.25)
	assert.InDelta(t, 6.366, w.Width(25.46), 0.01)
	assert.Equal(t, float32(5), w.Width(1))
	assert.Equal(t, float32(30), w.Width(1000))
	// idempotent
	assert.Equal(t, w.Width(40), w.Width(40))

	assert.Equal(t, core.StatusInvalidParameter, w.Set(5, 30, 1.5))
	assert.Equal(t, core.StatusInvalidParameter, w.Set(10, 5, 0.5))
	assert.Equal(t, core.StatusInvalidParameter, w.Set(-1, 5, 0.5))
	assert.Equal(t, core.StatusInvalidParameter, w.Set(1, 5, 0))
	assert.Equal(t, NewShadowWidth(5, 30, 0.25), w, "rejected values leave the old ones")

	assert.Equal(t, core.StatusOK, w.Set(2, 40, 1))
	assert.Equal(t, ShadowWidth{Min: 2, Max: 40, Ratio: 1}, w)
}

func TestShadowWidthMonotonic(t *testing.T) {
	w := NewShadowWidth(2, 40, 0.4)
	prev := w.Width(0)
	for r := float32(0); r < 200; r += 0.5 {
		cur := w.Width(r)
		assert.GreaterOrEqual(t, cur, prev)
		assert.True(t, cur >= 2 && cur <= 40)
		prev = cur
	}
}

func TestShadowColor(t *testing.T) {
	var c ShadowColor
	require.Equal(t, core.StatusOK, c.Set(0.1, 0.25, 0.3, 0))
	assert.Equal(t, ShadowColor{0.1, 0.25, 0.3, 0}, c)
	assert.Equal(t, core.StatusInvalidParameter, c.Set(0.1, 1.2, 0.3, 0))
	assert.Equal(t, core.StatusInvalidParameter, c.Set(-0.1, 0.2, 0.3, 0))
	assert.Equal(t, ShadowColor{0.1, 0.25, 0.3, 0}, c)
}

func TestShadowBufferDualGrowth(t *testing.T) {
	s := NewShadowBuffer(2, ShadowColor{0.1, 0.5, 0.3, 0})
	s.Set(2)
	assert.Equal(t, 16, s.MaxBackward())
	assert.Equal(t, 40, s.Capacity())
	b, f := s.Cursors()
	assert.Equal(t, 16, b)
	assert.Equal(t, 24, f)

	s.AddForward(1, 2, 3, 4)
	s.AddBackward(5, 6, 7, 8)
	s.AddVertexes(false, 9, 10, 11, 12)

	b, f = s.Cursors()
	assert.Equal(t, 0, b)
	assert.Equal(t, 32, f)
	assert.Equal(t, 8, s.Count())

	v := s.Vertices()
	// newest backward pair first, start vertex before end vertex
	assert.Equal(t, []float32{9, 10, 0.1, 0.5, 11, 12, 0.3, 0}, v[:8])
	assert.Equal(t, []float32{5, 6, 0.1, 0.5, 7, 8, 0.3, 0}, v[8:16])
	assert.Equal(t, []float32{1, 2, 0.1, 0.5, 3, 4, 0.3, 0}, v[24:32])

	assert.Panics(t, func() { s.AddBackward(0, 0, 0, 0) }, "backward region is full")
	s.AddForward(0, 0, 0, 0)
	assert.Panics(t, func() { s.AddForward(0, 0, 0, 0) }, "forward region is full")

	s.Reset()
	assert.Equal(t, 2, s.Count(), "only the reserved slots remain")
}

func TestShadowBufferSetRange(t *testing.T) {
	s := NewShadowBuffer(0, ShadowColor{0.05, 0.4, 0.3, 0})
	s.Set(4)
	s.SetVertexes(0, 0, 1, 5, 1)
	s.SetVertexes(8, 0, -1, 5, -1)
	s.SetRange(0, 16)
	assert.Equal(t, 4, s.Count())
	assert.Equal(t, float32(5), s.Vertices()[12])

	assert.Panics(t, func() { s.SetRange(16, 8) })
	assert.Panics(t, func() { s.SetRange(0, 12) }, "must hold whole pairs")
	assert.Panics(t, func() { s.SetVertexes(s.Capacity()-4, 0, 0, 0, 0) })

	s.SetVertexZ(-0.5)
	assert.Equal(t, float32(-0.5), s.Z())
	s.Reset()
	assert.Zero(t, s.Z())
}

func TestBackOfFold(t *testing.T) {
	b := NewBackOfFold()
	require.NoError(t, b.Set(4))
	assert.Equal(t, 8, b.Capacity())
	assert.Equal(t, 4, b.Stride())
	assert.Equal(t, DefaultMaskAlpha, b.MaskAlpha())

	assert.Equal(t, core.StatusInvalidParameter, b.SetMaskAlphaInt(300))
	assert.Equal(t, core.StatusInvalidParameter, b.SetMaskAlpha(1.5))
	assert.Equal(t, DefaultMaskAlpha, b.MaskAlpha())

	assert.Equal(t, core.StatusOK, b.SetMaskAlphaInt(255))
	assert.Equal(t, float32(1), b.MaskAlpha())
	assert.Equal(t, core.StatusOK, b.SetMaskAlpha(0.25))
	assert.Equal(t, float32(0.25), b.MaskAlpha())

	u := b.Uniforms(false, [3]float32{0.2, 0.3, 0.4})
	assert.Equal(t, Uniforms{TexXOffset: 0, MaskColor: [4]float32{0.2, 0.3, 0.4, 0.25}}, u)
	u = b.Uniforms(true, [3]float32{0.2, 0.3, 0.4})
	assert.Equal(t, float32(1), u.TexXOffset)
	assert.Zero(t, u.MaskColor[3])
}
