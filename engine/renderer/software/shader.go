package software

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
)

// blank pages are drawn white
var paperColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// vertex is a projected vertex. a and b carry the per kind attributes:
// the curl sine for the back of a fold, color and alpha for shadows.
type vertex struct {
	x, y, z float64
	u, v    float64
	a, b    float64
}

type triangle struct {
	v      [3]vertex
	depth  float64
	det    float64
	mesh   int
	shader shader
}

func newTriangle(mesh int, sh shader, v0, v1, v2 vertex) triangle {
	return triangle{
		v:      [3]vertex{v0, v1, v2},
		depth:  (v0.z + v1.z + v2.z) / 3,
		det:    (v1.y-v2.y)*(v0.x-v2.x) + (v2.x-v1.x)*(v0.y-v2.y),
		mesh:   mesh,
		shader: sh,
	}
}

// barycentric returns the weights of v0 and v1 at (px, py).
func (t *triangle) barycentric(px, py float64) (float64, float64) {
	v0, v1, v2 := t.v[0], t.v[1], t.v[2]
	l0 := ((v1.y-v2.y)*(px-v2.x) + (v2.x-v1.x)*(py-v2.y)) / t.det
	l1 := ((v2.y-v0.y)*(px-v2.x) + (v0.x-v2.x)*(py-v2.y)) / t.det
	return l0, l1
}

// inside returns the smallest barycentric weight, negative outside.
func (t *triangle) inside(px, py float64) float64 {
	l0, l1 := t.barycentric(px, py)
	return math.Min(l0, math.Min(l1, 1-l0-l1))
}

// interpolate returns the blend of the three vertices at (px, py).
// Points just outside the triangle, which anti-aliasing still touches,
// are clamped onto it.
func (t *triangle) interpolate(px, py float64) vertex {
	v0, v1, v2 := t.v[0], t.v[1], t.v[2]
	l0, l1 := t.barycentric(px, py)
	l0 = clamp01(l0)
	l1 = clamp01(l1)
	if l0+l1 > 1 {
		s := l0 + l1
		l0 /= s
		l1 /= s
	}
	l2 := 1 - l0 - l1

	blend := func(a, b, c float64) float64 {
		return a*l0 + b*l1 + c*l2
	}
	return vertex{
		x: px,
		y: py,
		z: blend(v0.z, v1.z, v2.z),
		u: blend(v0.u, v1.u, v2.u),
		v: blend(v0.v, v1.v, v2.v),
		a: blend(v0.a, v1.a, v2.a),
		b: blend(v0.b, v1.b, v2.b),
	}
}

// shader colors a point from its interpolated attributes.
type shader interface {
	shade(v vertex) color.Color
}

func newShader(mesh *metadata.MeshData) (shader, error) {
	switch mesh.Kind {
	case metadata.MeshKindPage:
		return pageShader{tex: imageOf(mesh.Texture)}, nil
	case metadata.MeshKindBackOfFold:
		return foldShader{
			tex:        imageOf(mesh.Texture),
			light:      imageOf(mesh.GradientLight),
			texXOffset: float64(mesh.TexXOffset),
			mask:       mesh.MaskColor,
		}, nil
	case metadata.MeshKindShadow:
		return shadowShader{}, nil
	}
	return nil, fmt.Errorf("%w: unknown mesh kind %d", core.ErrInvalidParameter, mesh.Kind)
}

func imageOf(t *metadata.Texture) *image.NRGBA {
	if t == nil {
		return nil
	}
	img, _ := t.InternalData.(*image.NRGBA)
	return img
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// sample does a nearest lookup with clamped coordinates.
func sample(img *image.NRGBA, u, v float64) color.NRGBA {
	if img == nil {
		return paperColor
	}
	b := img.Bounds()
	x := b.Min.X + int(clamp01(u)*float64(b.Dx()))
	y := b.Min.Y + int(clamp01(v)*float64(b.Dy()))
	if x >= b.Max.X {
		x = b.Max.X - 1
	}
	if y >= b.Max.Y {
		y = b.Max.Y - 1
	}
	return img.NRGBAAt(x, y)
}

func toByte(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

// pageShader draws an opaque textured page.
type pageShader struct {
	tex *image.NRGBA
}

func (s pageShader) shade(v vertex) color.Color {
	c := sample(s.tex, v.u, v.v)
	c.A = 0xff
	return c
}

// foldShader mirrors the page texture, blends it with the mask color and
// darkens it with the gradient light looked up by the curl sine.
type foldShader struct {
	tex        *image.NRGBA
	light      *image.NRGBA
	texXOffset float64
	mask       [4]float32
}

func (s foldShader) shade(v vertex) color.Color {
	c := sample(s.tex, math.Abs(v.u-s.texXOffset), v.v)
	shadowX := math.Max(0.01, math.Min(1, math.Abs(v.a)))

	var lr, lg, lb, la float64
	if s.light != nil {
		l := sample(s.light, shadowX, 0)
		la = float64(l.A) / 255
		lr = float64(l.R) / 255 * la
		lg = float64(l.G) / 255 * la
		lb = float64(l.B) / 255 * la
	}

	ma := float64(s.mask[3])
	mix := func(c uint8, m float32) float64 {
		return float64(c)/255*(1-ma) + float64(m)*ma
	}
	return color.NRGBA{
		R: toByte(mix(c.R, s.mask[0])*(1-la) + lr),
		G: toByte(mix(c.G, s.mask[1])*(1-la) + lg),
		B: toByte(mix(c.B, s.mask[2])*(1-la) + lb),
		A: 0xff,
	}
}

// shadowShader draws a gray level with its alpha.
type shadowShader struct{}

func (shadowShader) shade(v vertex) color.Color {
	g := toByte(v.a)
	return color.NRGBA{R: g, G: g, B: g, A: toByte(v.b)}
}

// meshPattern is a gg.Pattern over a run of triangles. Each pixel is
// shaded by the triangle covering its center, or the nearest one for
// edge pixels. Spans are scanned left to right, so the last hit is
// tried first.
type meshPattern struct {
	run  []triangle
	last int
}

func newMeshPattern(run []triangle) *meshPattern {
	return &meshPattern{run: run}
}

func (p *meshPattern) ColorAt(x, y int) color.Color {
	px, py := float64(x)+0.5, float64(y)+0.5
	t := p.locate(px, py)
	return t.shader.shade(t.interpolate(px, py))
}

func (p *meshPattern) locate(px, py float64) *triangle {
	if p.run[p.last].inside(px, py) >= 0 {
		return &p.run[p.last]
	}
	best, bestW := p.last, math.Inf(-1)
	for i := range p.run {
		w := p.run[i].inside(px, py)
		if w >= 0 {
			best = i
			break
		}
		if w > bestW {
			best, bestW = i, w
		}
	}
	p.last = best
	return &p.run[best]
}
