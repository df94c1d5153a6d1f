package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/flip"
	"github.com/spaghettifunk/pageflip/engine/math"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
	"github.com/spaghettifunk/pageflip/engine/renderer/software"
)

var _ RendererBackend = (*software.Backend)(nil)

type recordingBackend struct {
	view      math.Rect
	created   []uint32
	destroyed []uint32
	draws     []string
	frames    int
	failDraw  bool
}

func (b *recordingBackend) Initialize(string, uint32, uint32) error { return nil }
func (b *recordingBackend) Shutdown() error                         { return nil }
func (b *recordingBackend) Resized(uint32, uint32) error            { return nil }
func (b *recordingBackend) SetProjection(view math.Rect)            { b.view = view }
func (b *recordingBackend) BeginFrame(float64) error {
	b.draws = b.draws[:0]
	return nil
}
func (b *recordingBackend) EndFrame(float64) error {
	b.frames++
	return nil
}
func (b *recordingBackend) TextureCreate(_ *metadata.PixelBuffer, t *metadata.Texture) error {
	b.created = append(b.created, t.ID)
	t.InternalData = t.ID
	return nil
}
func (b *recordingBackend) TextureDestroy(t *metadata.Texture) {
	b.destroyed = append(b.destroyed, t.ID)
}
func (b *recordingBackend) DrawMesh(mesh *metadata.MeshData) error {
	if b.failDraw {
		return errors.New("device lost")
	}
	b.draws = append(b.draws, mesh.Name)
	return nil
}

func solid(w, h int, c uint8) *metadata.PixelBuffer {
	pb := metadata.NewPixelBuffer(w, h, metadata.PixelFormatRGBA32)
	for i := range pb.Data {
		pb.Data[i] = c
	}
	return pb
}

func firstPage(t *testing.T, pf *flip.PageFlip) *flip.Page {
	t.Helper()
	page, status := pf.Page(flip.FirstPage)
	require.Equal(t, core.StatusOK, status)
	return page
}

func newFlip(t *testing.T) *flip.PageFlip {
	t.Helper()
	pf := flip.New(flip.WithTimeSource(core.NewManualTime(0)))
	require.Equal(t, core.StatusOK, pf.OnSurfaceChanged(600, 800))
	require.Equal(t, core.StatusOK, pf.SetFirstTexture(flip.FirstPage, solid(60, 80, 200)))
	require.Equal(t, core.StatusOK, pf.SetSecondTexture(flip.FirstPage, solid(60, 80, 100)))
	return pf
}

func TestFlatPacket(t *testing.T) {
	r := New(&recordingBackend{})
	pf := newFlip(t)

	p := r.BuildPacket(pf.Frame(), 0.016)
	require.Len(t, p.Meshes, 1)
	assert.False(t, p.Folding)
	assert.Equal(t, float32(-300), p.View.Left)

	mesh := p.Meshes[0]
	assert.Equal(t, metadata.TopologyTriangleFan, mesh.Topology)
	assert.Equal(t, metadata.MeshKindPage, mesh.Kind)
	assert.Equal(t, 4, mesh.Count)
	assert.Len(t, mesh.Positions, 12)
	require.NotNil(t, mesh.Texture)
	assert.Equal(t, firstPage(t, pf).Textures.Texture(flip.FirstTexture).ID, mesh.Texture.ID)
}

func TestFoldPacketOrder(t *testing.T) {
	r := New(&recordingBackend{})
	pf := newFlip(t)
	require.True(t, pf.OnFingerDown(540, 700))
	require.True(t, pf.OnFingerMove(300, 500, true, true))

	p := r.BuildPacket(pf.Frame(), 0.016)
	require.True(t, p.Folding)
	names := make([]string, 0, len(p.Meshes))
	for _, m := range p.Meshes {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"back-of-fold", "front-first", "front-second", "base-shadow", "edge-shadow"}, names)

	back := p.Meshes[0]
	assert.Equal(t, 4, back.PositionSize)
	assert.Equal(t, metadata.TopologyTriangleStrip, back.Topology)
	assert.Equal(t, float32(0), back.TexXOffset, "single page mirrors nothing")

	first, second := p.Meshes[1], p.Meshes[2]
	assert.Equal(t, first.Count, second.First)
	assert.Equal(t, firstPage(t, pf).FrontVertexCount(), first.Count)
}

func TestDrawFrameUploadsOnce(t *testing.T) {
	backend := &recordingBackend{}
	r := New(backend)
	pf := newFlip(t)

	require.NoError(t, r.Render(pf.Frame(), 0.016))
	require.NoError(t, r.Render(pf.Frame(), 0.016))
	assert.Len(t, backend.created, 1)
	assert.Equal(t, 2, backend.frames)
	assert.Equal(t, []string{"page-0"}, backend.draws)
	assert.Equal(t, 1, r.TextureCount())
	assert.Equal(t, uint64(2), r.Metrics().TotalFrames())
}

func TestDeleteUnusedTextures(t *testing.T) {
	backend := &recordingBackend{}
	r := New(backend)
	pf := newFlip(t)
	require.NoError(t, r.Render(pf.Frame(), 0))
	shown := firstPage(t, pf).Textures.Texture(flip.FirstTexture)
	require.True(t, r.IsUploaded(shown.ID))

	require.Equal(t, core.StatusOK, pf.SetFirstTexture(flip.FirstPage, solid(60, 80, 10)))
	recycled := pf.RecycleTextures()
	require.Len(t, recycled, 1)

	r.DeleteUnusedTextures(recycled)
	assert.Equal(t, []uint32{shown.ID}, backend.destroyed)
	assert.False(t, r.IsUploaded(shown.ID))

	// never uploaded
	r.DeleteUnusedTextures([]metadata.Texture{{ID: 9999}})
	assert.Len(t, backend.destroyed, 1)
}

func TestDrawFrameError(t *testing.T) {
	r := New(&recordingBackend{failDraw: true})
	pf := newFlip(t)
	assert.Error(t, r.Render(pf.Frame(), 0))
}

func TestShutdownDestroysTextures(t *testing.T) {
	backend := &recordingBackend{}
	r := New(backend)
	pf := newFlip(t)
	require.NoError(t, r.Render(pf.Frame(), 0))
	require.NoError(t, r.Shutdown())
	assert.Len(t, backend.destroyed, 1)
	assert.Zero(t, r.TextureCount())
}

func TestGradientLight(t *testing.T) {
	pb := NewGradientLight()
	require.NoError(t, pb.Validate())
	assert.Equal(t, 256, pb.Width)
	assert.Equal(t, 1, pb.Height)

	assert.Zero(t, pb.At(10, 0).A, "clear before the middle")
	assert.Zero(t, pb.At(120, 0).A)
	assert.InDelta(t, 0x48, int(pb.At(255, 0).A), 3)

	// alpha never decreases toward the crest
	prev := uint8(0)
	for x := 128; x < 256; x++ {
		a := pb.At(x, 0).A
		assert.GreaterOrEqual(t, a+1, prev, "x=%d", x)
		prev = a
	}
}
