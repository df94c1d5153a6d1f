package software

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/math"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
)

// triangles thinner than this many square pixels are skipped
const minTriangleArea = 1e-6

// FrameSink receives every finished frame.
type FrameSink func(frame uint64, img image.Image) error

// Stats describes the last finished frame.
type Stats struct {
	Frames    uint64
	Meshes    int
	Triangles int
	// meshes per metadata.MeshKind
	Kinds [3]int
}

// Backend rasterizes mesh batches into an image. It has no depth buffer:
// EndFrame paints the collected triangles back to front, keeping the
// submission order between triangles at the same depth. Neighboring
// triangles of one mesh are filled as a single path so their shared
// edges leave no anti-aliasing seams.
type Backend struct {
	appName    string
	width      int
	height     int
	view       math.Rect
	background color.Color

	dc        *gg.Context
	triangles []triangle
	textures  int
	sink      FrameSink

	frame   Stats
	last    Stats
	inFrame bool
}

type Option func(*Backend)

// WithBackground sets the color the surface is cleared with.
func WithBackground(c color.Color) Option {
	return func(b *Backend) {
		b.background = c
	}
}

// WithFrameSink registers a callback run at the end of every frame.
func WithFrameSink(sink FrameSink) Option {
	return func(b *Backend) {
		b.sink = sink
	}
}

func New(opts ...Option) *Backend {
	b := &Backend{background: color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	b.appName = appName
	if err := b.Resized(appWidth, appHeight); err != nil {
		return err
	}
	core.LogInfo("software renderer initialized for %s (%dx%d)", appName, appWidth, appHeight)
	return nil
}

func (b *Backend) Shutdown() error {
	if b.textures > 0 {
		core.LogWarn("software renderer shut down with %d live textures", b.textures)
	}
	b.dc = nil
	b.triangles = nil
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: surface %dx%d", core.ErrInvalidParameter, width, height)
	}
	b.width = int(width)
	b.height = int(height)
	b.dc = gg.NewContext(b.width, b.height)
	halfW := float32(width) * 0.5
	halfH := float32(height) * 0.5
	b.view = math.Rect{Left: -halfW, Right: halfW, Top: halfH, Bottom: -halfH}
	return nil
}

func (b *Backend) SetProjection(view math.Rect) {
	if view.Right <= view.Left || view.Top <= view.Bottom {
		return
	}
	b.view = view
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	if b.dc == nil {
		return fmt.Errorf("%w: software renderer has no surface", core.ErrUninitialized)
	}
	b.dc.SetColor(b.background)
	b.dc.Clear()
	b.triangles = b.triangles[:0]
	b.frame = Stats{Frames: b.last.Frames}
	b.inFrame = true
	return nil
}

func (b *Backend) EndFrame(deltaTime float64) error {
	if !b.inFrame {
		return fmt.Errorf("%w: EndFrame without BeginFrame", core.ErrRenderer)
	}
	b.inFrame = false

	slices.SortStableFunc(b.triangles, func(x, y triangle) int {
		switch {
		case x.depth < y.depth:
			return -1
		case x.depth > y.depth:
			return 1
		}
		return 0
	})
	for start := 0; start < len(b.triangles); {
		end := start + 1
		for end < len(b.triangles) && b.triangles[end].mesh == b.triangles[start].mesh {
			end++
		}
		b.fill(b.triangles[start:end])
		start = end
	}

	b.frame.Frames++
	b.frame.Triangles = len(b.triangles)
	b.last = b.frame
	if b.sink != nil {
		return b.sink(b.last.Frames, b.dc.Image())
	}
	return nil
}

func (b *Backend) TextureCreate(pixels *metadata.PixelBuffer, texture *metadata.Texture) error {
	if err := pixels.Validate(); err != nil {
		return err
	}
	texture.InternalData = pixels.ToImage()
	b.textures++
	return nil
}

func (b *Backend) TextureDestroy(texture *metadata.Texture) {
	if texture.InternalData == nil {
		return
	}
	texture.InternalData = nil
	b.textures--
}

// DrawMesh splits mesh into triangles for the current frame.
func (b *Backend) DrawMesh(mesh *metadata.MeshData) error {
	if !b.inFrame {
		return fmt.Errorf("%w: draw outside a frame", core.ErrRenderer)
	}
	if mesh.Count < 3 {
		return nil
	}
	if mesh.First < 0 || len(mesh.Positions) < (mesh.First+mesh.Count)*mesh.PositionSize {
		return fmt.Errorf("%w: %s draws %d vertices from %d with only %d floats",
			core.ErrInvalidParameter, mesh.Name, mesh.Count, mesh.First, len(mesh.Positions))
	}

	sh, err := newShader(mesh)
	if err != nil {
		return err
	}
	verts := make([]vertex, mesh.Count)
	for i := range verts {
		verts[i] = b.vertexOf(mesh, mesh.First+i)
	}

	switch mesh.Topology {
	case metadata.TopologyTriangleStrip:
		for i := 0; i+2 < len(verts); i++ {
			b.addTriangle(sh, verts[i], verts[i+1], verts[i+2])
		}
	case metadata.TopologyTriangleFan:
		for i := 1; i+1 < len(verts); i++ {
			b.addTriangle(sh, verts[0], verts[i], verts[i+1])
		}
	default:
		return fmt.Errorf("%w: unknown topology %d", core.ErrInvalidParameter, mesh.Topology)
	}

	b.frame.Meshes++
	if int(mesh.Kind) < len(b.frame.Kinds) {
		b.frame.Kinds[mesh.Kind]++
	}
	return nil
}

// vertexOf projects vertex i onto the surface and gathers its attributes.
func (b *Backend) vertexOf(mesh *metadata.MeshData, i int) vertex {
	f := mesh.Vertex(i)
	x, y := b.project(f[0], f[1])
	v := vertex{x: x, y: y}
	u, t := mesh.TexCoord(i)
	v.u, v.v = float64(u), float64(t)

	switch mesh.Kind {
	case metadata.MeshKindShadow:
		v.z = float64(mesh.Z)
		v.a = float64(f[2])
		v.b = float64(f[3])
	case metadata.MeshKindBackOfFold:
		v.z = float64(f[2])
		v.a = float64(f[3])
	default:
		if len(f) > 2 {
			v.z = float64(f[2])
		}
	}
	return v
}

func (b *Backend) project(x, y float32) (float64, float64) {
	sx := (x - b.view.Left) / (b.view.Right - b.view.Left) * float32(b.width)
	sy := (b.view.Top - y) / (b.view.Top - b.view.Bottom) * float32(b.height)
	return float64(sx), float64(sy)
}

// addTriangle keeps every triangle counter-clockwise so the nonzero
// winding rule sums neighbors instead of cancelling them.
func (b *Backend) addTriangle(sh shader, v0, v1, v2 vertex) {
	area := (v1.x-v0.x)*(v2.y-v0.y) - (v2.x-v0.x)*(v1.y-v0.y)
	if area < minTriangleArea && area > -minTriangleArea {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
	}
	b.triangles = append(b.triangles, newTriangle(b.frame.Meshes, sh, v0, v1, v2))
}

// fill paints a run of triangles from one mesh.
func (b *Backend) fill(run []triangle) {
	for i := range run {
		t := &run[i]
		b.dc.NewSubPath()
		b.dc.MoveTo(t.v[0].x, t.v[0].y)
		b.dc.LineTo(t.v[1].x, t.v[1].y)
		b.dc.LineTo(t.v[2].x, t.v[2].y)
		b.dc.ClosePath()
	}
	b.dc.SetFillRuleWinding()
	b.dc.SetFillStyle(newMeshPattern(run))
	b.dc.Fill()
}

// Image returns the last finished frame.
func (b *Backend) Image() image.Image {
	if b.dc == nil {
		return nil
	}
	return b.dc.Image()
}

func (b *Backend) SavePNG(path string) error {
	if b.dc == nil {
		return fmt.Errorf("%w: nothing rendered", core.ErrUninitialized)
	}
	return b.dc.SavePNG(path)
}

func (b *Backend) EncodePNG(w io.Writer) error {
	if b.dc == nil {
		return fmt.Errorf("%w: nothing rendered", core.ErrUninitialized)
	}
	return b.dc.EncodePNG(w)
}

func (b *Backend) Stats() Stats {
	return b.last
}

// LiveTextures returns the number of textures created and not destroyed.
func (b *Backend) LiveTextures() int {
	return b.textures
}
