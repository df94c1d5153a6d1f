package renderer

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/flip"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
)

// gradient light texture size, a single row sampled by the curl sine
const (
	gradientLightWidth  = 256
	gradientLightHeight = 1
)

// Renderer turns page flip frames into draw batches and keeps track of
// the textures the backend has uploaded.
type Renderer struct {
	backend  RendererBackend
	textures map[uint32]*metadata.Texture
	packet   metadata.RenderPacket
	metrics  *core.Metrics
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{
		backend:  backend,
		textures: make(map[uint32]*metadata.Texture),
		metrics:  core.NewMetrics(),
	}
}

func (r *Renderer) Initialize(appName string, appWidth, appHeight uint32) error {
	return r.backend.Initialize(appName, appWidth, appHeight)
}

// Shutdown destroys every uploaded texture, then the backend.
func (r *Renderer) Shutdown() error {
	for id, tex := range r.textures {
		r.backend.TextureDestroy(tex)
		delete(r.textures, id)
	}
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

func (r *Renderer) Metrics() *core.Metrics {
	return r.metrics
}

// TextureCount returns how many textures are alive in the backend.
func (r *Renderer) TextureCount() int {
	return len(r.textures)
}

// IsUploaded reports whether the backend holds the texture with id.
func (r *Renderer) IsUploaded(id uint32) bool {
	_, ok := r.textures[id]
	return ok
}

// DeleteUnusedTextures releases handles the page flip has recycled.
// Handles that never reached the backend are skipped.
func (r *Renderer) DeleteUnusedTextures(textures []metadata.Texture) {
	for _, t := range textures {
		tex, ok := r.textures[t.ID]
		if !ok {
			continue
		}
		r.backend.TextureDestroy(tex)
		delete(r.textures, t.ID)
	}
}

// resolve swaps a handle for its uploaded copy, uploading it the first
// time its id shows up.
func (r *Renderer) resolve(t *metadata.Texture) (*metadata.Texture, error) {
	if t == nil || !t.IsValid() {
		return nil, nil
	}
	if tex, ok := r.textures[t.ID]; ok {
		return tex, nil
	}
	if t.Pixels == nil {
		return nil, fmt.Errorf("texture %s has no pixels to upload", t.Name)
	}

	tex := *t
	if err := r.backend.TextureCreate(t.Pixels, &tex); err != nil {
		return nil, err
	}
	tex.Flags |= metadata.TextureFlagBits(metadata.TextureFlagUploaded)
	tex.Generation++
	r.textures[t.ID] = &tex
	core.LogDebug("uploaded texture %s (%dx%d)", tex.Name, tex.Width, tex.Height)
	return &tex, nil
}

func textureRef(t metadata.Texture) *metadata.Texture {
	if !t.IsValid() {
		return nil
	}
	return &t
}

func fullPageMesh(name string, page flip.PageFrame) metadata.MeshData {
	positions := make([]float32, 0, 12)
	texCoords := make([]float32, 0, 8)
	for _, c := range page.Corners {
		positions = append(positions, c.X, c.Y, c.Z)
		texCoords = append(texCoords, c.TexX, c.TexY)
	}
	return metadata.MeshData{
		Name:         name,
		Kind:         metadata.MeshKindPage,
		Topology:     metadata.TopologyTriangleFan,
		Positions:    positions,
		PositionSize: 3,
		TexCoords:    texCoords,
		Count:        4,
		Texture:      textureRef(page.Texture),
	}
}

func shadowMesh(name string, s flip.ShadowFrame) metadata.MeshData {
	return metadata.MeshData{
		Name:         name,
		Kind:         metadata.MeshKindShadow,
		Topology:     metadata.TopologyTriangleStrip,
		Positions:    s.Vertices,
		PositionSize: 4,
		Count:        s.Count,
		Z:            s.Z,
	}
}

// BuildPacket lays out the draw batches of frame. A flat frame draws
// each page as a fan. A fold draws the back of the fold, the front of
// the folded page split by texture, the flat second page and finally
// the base and edge shadows.
func (r *Renderer) BuildPacket(frame flip.Frame, deltaTime float64) *metadata.RenderPacket {
	p := &r.packet
	p.Reset()
	p.DeltaTime = deltaTime
	p.View = frame.View
	p.Folding = frame.Folding

	if !frame.Folding {
		for i, page := range frame.Pages {
			p.Add(fullPageMesh(fmt.Sprintf("page-%d", i), page))
		}
		return p
	}

	fold := frame.Fold
	p.Add(metadata.MeshData{
		Name:          "back-of-fold",
		Kind:          metadata.MeshKindBackOfFold,
		Topology:      metadata.TopologyTriangleStrip,
		Positions:     fold.BackPositions,
		PositionSize:  4,
		TexCoords:     fold.BackTexCoords,
		Count:         fold.BackCount,
		Texture:       textureRef(fold.BackTexture),
		GradientLight: textureRef(fold.GradientLight),
		TexXOffset:    fold.Uniforms.TexXOffset,
		MaskColor:     fold.Uniforms.MaskColor,
	})
	p.Add(metadata.MeshData{
		Name:         "front-first",
		Kind:         metadata.MeshKindPage,
		Topology:     metadata.TopologyTriangleStrip,
		Positions:    fold.FrontPositions,
		PositionSize: 3,
		TexCoords:    fold.FrontTexCoords,
		Count:        fold.FrontSplit,
		Texture:      textureRef(fold.FrontFirst),
	})
	p.Add(metadata.MeshData{
		Name:         "front-second",
		Kind:         metadata.MeshKindPage,
		Topology:     metadata.TopologyTriangleStrip,
		Positions:    fold.FrontPositions,
		PositionSize: 3,
		TexCoords:    fold.FrontTexCoords,
		First:        fold.FrontSplit,
		Count:        fold.FrontCount - fold.FrontSplit,
		Texture:      textureRef(fold.FrontSecond),
	})
	for _, page := range frame.Pages {
		p.Add(fullPageMesh("second-page", page))
	}
	p.Add(shadowMesh("base-shadow", fold.BaseShadow))
	p.Add(shadowMesh("edge-shadow", fold.EdgeShadow))
	return p
}

// DrawFrame submits packet to the backend, uploading textures on first
// use.
func (r *Renderer) DrawFrame(packet *metadata.RenderPacket) error {
	r.backend.SetProjection(packet.View)
	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}

	for i := range packet.Meshes {
		mesh := &packet.Meshes[i]
		tex, err := r.resolve(mesh.Texture)
		if err != nil {
			return err
		}
		mesh.Texture = tex
		light, err := r.resolve(mesh.GradientLight)
		if err != nil {
			return err
		}
		mesh.GradientLight = light

		if err := r.backend.DrawMesh(mesh); err != nil {
			core.LogError("failed to draw %s: %s", mesh.Name, err)
			return err
		}
	}

	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed: %s", err)
		return err
	}
	r.metrics.Update(packet.DeltaTime)
	return nil
}

// Render builds and draws frame.
func (r *Renderer) Render(frame flip.Frame, deltaTime float64) error {
	return r.DrawFrame(r.BuildPacket(frame, deltaTime))
}

// NewGradientLight paints the light that shades the back of a fold: clear
// up to the middle, then darkening toward the crest of the curl.
func NewGradientLight() *metadata.PixelBuffer {
	dc := gg.NewContext(gradientLightWidth, gradientLightHeight)
	grad := gg.NewLinearGradient(0, 0, gradientLightWidth, 0)
	grad.AddColorStop(0, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x00})
	grad.AddColorStop(0.5, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x00})
	grad.AddColorStop(0.9, color.NRGBA{A: 0x24})
	grad.AddColorStop(0.94, color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0x24})
	grad.AddColorStop(1, color.NRGBA{A: 0x48})

	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, gradientLightWidth, gradientLightHeight)
	dc.Fill()
	return metadata.PixelBufferFromImage(dc.Image())
}
