package metadata

import "github.com/spaghettifunk/pageflip/engine/math"

/**
 * @brief Everything a backend draws for one frame, in submission order.
 */
type RenderPacket struct {
	DeltaTime float64
	/** @brief The area of the centered coordinate system mapped onto the surface. */
	View math.Rect
	/** @brief True while a page is being turned. */
	Folding bool
	/** @brief The draw batches. */
	Meshes []MeshData
}

// Reset empties the packet keeping its storage.
func (p *RenderPacket) Reset() {
	p.DeltaTime = 0
	p.View = math.Rect{}
	p.Folding = false
	p.Meshes = p.Meshes[:0]
}

// Add appends a batch, dropping empty ones.
func (p *RenderPacket) Add(mesh MeshData) {
	if mesh.Count <= 0 {
		return
	}
	p.Meshes = append(p.Meshes, mesh)
}
