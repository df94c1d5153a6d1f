package vertex

import (
	"fmt"

	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/math"
)

// Buffer is a flat array of fixed stride vertex records with an optional
// parallel texture coordinate array. Writes go through a cursor that
// Reset rewinds without reallocating.
type Buffer struct {
	stride    int
	capacity  int
	next      int
	positions []float32
	texCoords []float32
}

// NewBuffer allocates room for capacity vertices of stride floats each.
func NewBuffer(capacity, stride int, hasTexture bool) (*Buffer, error) {
	b := &Buffer{}
	if err := b.Set(capacity, stride, hasTexture); err != nil {
		return nil, err
	}
	return b, nil
}

// Set reallocates the buffer storage and rewinds the cursor.
func (b *Buffer) Set(capacity, stride int, hasTexture bool) error {
	if stride < 2 {
		return core.NewError(core.StatusInvalidParameter, "vertex stride %d is less than 2", stride)
	}
	if capacity < 0 {
		return core.NewError(core.StatusInvalidParameter, "negative vertex capacity %d", capacity)
	}
	b.stride = stride
	b.capacity = capacity
	b.next = 0
	b.positions = make([]float32, capacity*stride)
	b.texCoords = nil
	if hasTexture {
		b.texCoords = make([]float32, capacity<<1)
	}
	return nil
}

func (b *Buffer) ensure(n int) {
	if b.next+n > len(b.positions) {
		panic(fmt.Sprintf("vertex buffer overflow: capacity %d vertices, stride %d, cursor %d, writing %d floats",
			b.capacity, b.stride, b.next, n))
	}
}

func (b *Buffer) putTex(tx, ty float32) {
	if b.texCoords == nil {
		panic("vertex buffer has no texture coordinates")
	}
	j := b.next / b.stride * 2
	b.texCoords[j] = tx
	b.texCoords[j+1] = ty
}

func (b *Buffer) Add3(x, y, z float32) *Buffer {
	b.ensure(3)
	b.positions[b.next] = x
	b.positions[b.next+1] = y
	b.positions[b.next+2] = z
	b.next += 3
	return b
}

func (b *Buffer) Add4(x, y, z, w float32) *Buffer {
	b.ensure(4)
	b.positions[b.next] = x
	b.positions[b.next+1] = y
	b.positions[b.next+2] = z
	b.positions[b.next+3] = w
	b.next += 4
	return b
}

func (b *Buffer) Add3Tex(x, y, z, tx, ty float32) *Buffer {
	b.ensure(3)
	b.putTex(tx, ty)
	return b.Add3(x, y, z)
}

func (b *Buffer) Add4Tex(x, y, z, w, tx, ty float32) *Buffer {
	b.ensure(4)
	b.putTex(tx, ty)
	return b.Add4(x, y, z, w)
}

// AddPoint appends the position and texture coordinate of p.
func (b *Buffer) AddPoint(p math.Point) *Buffer {
	return b.Add3Tex(p.X, p.Y, p.Z, p.TexX, p.TexY)
}

// AddPointZ appends p with its z replaced.
func (b *Buffer) AddPointZ(p math.Point, z float32) *Buffer {
	return b.Add3Tex(p.X, p.Y, z, p.TexX, p.TexY)
}

func (b *Buffer) Reset() {
	b.next = 0
}

// Count returns the number of complete vertices written since the last Reset.
func (b *Buffer) Count() int {
	if b.stride == 0 {
		return 0
	}
	return b.next / b.stride
}

func (b *Buffer) Capacity() int {
	return b.capacity
}

func (b *Buffer) Stride() int {
	return b.stride
}

func (b *Buffer) HasTexture() bool {
	return b.texCoords != nil
}

// FloatAt returns the float at index or 0 when index is outside the written range.
func (b *Buffer) FloatAt(index int) float32 {
	if index >= 0 && index < b.next {
		return b.positions[index]
	}
	return 0
}

// Positions returns the written position floats.
func (b *Buffer) Positions() []float32 {
	return b.positions[:b.next]
}

// TexCoords returns the written texture coordinates, two floats per vertex.
func (b *Buffer) TexCoords() []float32 {
	if b.texCoords == nil {
		return nil
	}
	return b.texCoords[:b.Count()*2]
}

// Vertex returns the position and texture coordinate of vertex i.
func (b *Buffer) Vertex(i int) math.Point {
	o := i * b.stride
	p := math.Point{X: b.positions[o], Y: b.positions[o+1]}
	if b.stride > 2 {
		p.Z = b.positions[o+2]
	}
	if b.texCoords != nil {
		p.TexX = b.texCoords[i*2]
		p.TexY = b.texCoords[i*2+1]
	}
	return p
}
