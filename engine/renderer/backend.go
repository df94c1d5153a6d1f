package renderer

import (
	"github.com/spaghettifunk/pageflip/engine/math"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
)

type RendererBackend interface {
	Initialize(appName string, appWidth, appHeight uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	// SetProjection maps view, in centered coordinates, onto the whole
	// surface.
	SetProjection(view math.Rect)
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	// TextureCreate uploads pixels and stores backend data in
	// texture.InternalData.
	TextureCreate(pixels *metadata.PixelBuffer, texture *metadata.Texture) error
	TextureDestroy(texture *metadata.Texture)
	DrawMesh(mesh *metadata.MeshData) error
}
