package metadata

/**
 * @brief How a vertex list is assembled into triangles.
 */
type Topology uint8

const (
	TopologyTriangleStrip Topology = iota
	TopologyTriangleFan
)

/**
 * @brief What a draw batch represents, which decides how a backend
 * shades it.
 */
type MeshKind uint8

const (
	/** @brief Textured page geometry, x y z + uv. */
	MeshKindPage MeshKind = iota
	/** @brief The curled back of a page, x y z sin + uv. */
	MeshKindBackOfFold
	/** @brief Gradient shadow strip, x y color alpha. */
	MeshKindShadow
)

func (k MeshKind) String() string {
	switch k {
	case MeshKindPage:
		return "page"
	case MeshKindBackOfFold:
		return "back-of-fold"
	case MeshKindShadow:
		return "shadow"
	}
	return "unknown"
}

/**
 * @brief A single draw batch handed to a renderer backend.
 */
type MeshData struct {
	/** @brief A debug name for the batch. */
	Name     string
	Kind     MeshKind
	Topology Topology
	/** @brief Flat vertex data. */
	Positions []float32
	/** @brief Floats per vertex in Positions. */
	PositionSize int
	/** @brief Two floats per vertex, nil for shadows. */
	TexCoords []float32
	/** @brief First vertex to draw. */
	First int
	/** @brief Number of vertices to draw. */
	Count int
	/** @brief Constant z for shadow strips. */
	Z float32

	Texture *Texture

	// back of fold only
	GradientLight *Texture
	TexXOffset    float32
	MaskColor     [4]float32
}

// Vertex returns the floats of vertex i, nil when out of range.
func (m *MeshData) Vertex(i int) []float32 {
	start := i * m.PositionSize
	if i < 0 || start+m.PositionSize > len(m.Positions) {
		return nil
	}
	return m.Positions[start : start+m.PositionSize]
}

// TexCoord returns the uv of vertex i, zero when there is none.
func (m *MeshData) TexCoord(i int) (float32, float32) {
	if i < 0 || 2*i+1 >= len(m.TexCoords) {
		return 0, 0
	}
	return m.TexCoords[2*i], m.TexCoords[2*i+1]
}
