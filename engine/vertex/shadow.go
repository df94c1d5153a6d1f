package vertex

import "fmt"

// floats per shadow vertex: x, y, color, alpha
const shadowStride = 4

// ShadowBuffer stores a gradient quad strip in one array that grows in
// both directions from a fixed split point. Backward writes move toward
// index 0 and forward writes toward the end, so the live strip is always
// the contiguous range [backward, forward).
//
// Every append writes a start and an end vertex together; the start
// vertex carries the start color/alpha, the end vertex the end ones.
type ShadowBuffer struct {
	Color ShadowColor

	// vertex slots reserved between the two regions
	reserved    int
	capacity    int
	backward    int
	forward     int
	maxBackward int
	z           float32
	data        []float32
}

func NewShadowBuffer(reserved int, color ShadowColor) *ShadowBuffer {
	return &ShadowBuffer{
		reserved: reserved,
		Color:    color,
	}
}

// Set sizes the buffer for meshCount paired appends in each direction.
func (s *ShadowBuffer) Set(meshCount int) {
	s.maxBackward = meshCount << 3
	s.capacity = (meshCount << 4) + (s.reserved << 2)
	s.data = make([]float32, s.capacity)
	s.Reset()
}

// Reset rewinds both cursors to the split point.
func (s *ShadowBuffer) Reset() {
	s.z = 0
	s.backward = s.maxBackward
	s.forward = s.maxBackward + (s.reserved << 2)
}

func (s *ShadowBuffer) put(i int, x, y, color, alpha float32) {
	s.data[i] = x
	s.data[i+1] = y
	s.data[i+2] = color
	s.data[i+3] = alpha
}

// SetVertexes writes a start/end pair at an absolute float offset without
// moving either cursor.
func (s *ShadowBuffer) SetVertexes(offset int, startX, startY, endX, endY float32) *ShadowBuffer {
	if offset < 0 || offset+2*shadowStride > s.capacity {
		panic(fmt.Sprintf("shadow buffer write at %d outside capacity %d", offset, s.capacity))
	}
	s.put(offset, startX, startY, s.Color.StartColor, s.Color.StartAlpha)
	s.put(offset+shadowStride, endX, endY, s.Color.EndColor, s.Color.EndAlpha)
	return s
}

// AddBackward prepends a start/end pair.
func (s *ShadowBuffer) AddBackward(startX, startY, endX, endY float32) *ShadowBuffer {
	if s.backward-2*shadowStride < 0 {
		panic(fmt.Sprintf("shadow buffer backward overflow: cursor %d", s.backward))
	}
	s.backward -= 2 * shadowStride
	s.put(s.backward, startX, startY, s.Color.StartColor, s.Color.StartAlpha)
	s.put(s.backward+shadowStride, endX, endY, s.Color.EndColor, s.Color.EndAlpha)
	return s
}

// AddForward appends a start/end pair.
func (s *ShadowBuffer) AddForward(startX, startY, endX, endY float32) *ShadowBuffer {
	if s.forward+2*shadowStride > s.capacity {
		panic(fmt.Sprintf("shadow buffer forward overflow: cursor %d, capacity %d", s.forward, s.capacity))
	}
	s.put(s.forward, startX, startY, s.Color.StartColor, s.Color.StartAlpha)
	s.put(s.forward+shadowStride, endX, endY, s.Color.EndColor, s.Color.EndAlpha)
	s.forward += 2 * shadowStride
	return s
}

func (s *ShadowBuffer) AddVertexes(isForward bool, startX, startY, endX, endY float32) *ShadowBuffer {
	if isForward {
		return s.AddForward(startX, startY, endX, endY)
	}
	return s.AddBackward(startX, startY, endX, endY)
}

// SetRange overrides both cursors, used after absolute SetVertexes writes.
func (s *ShadowBuffer) SetRange(backward, forward int) {
	if backward < 0 || backward > forward || forward > s.capacity || (forward-backward)%(2*shadowStride) != 0 {
		panic(fmt.Sprintf("invalid shadow buffer range [%d, %d) for capacity %d", backward, forward, s.capacity))
	}
	s.backward = backward
	s.forward = forward
}

func (s *ShadowBuffer) SetVertexZ(z float32) {
	s.z = z
}

func (s *ShadowBuffer) Z() float32 {
	return s.z
}

// MaxBackward is the float index where the backward region ends and the
// reserved slots begin.
func (s *ShadowBuffer) MaxBackward() int {
	return s.maxBackward
}

func (s *ShadowBuffer) Capacity() int {
	return s.capacity
}

// Count returns the number of live vertices.
func (s *ShadowBuffer) Count() int {
	return (s.forward - s.backward) / shadowStride
}

// Vertices returns the live strip, four floats per vertex.
func (s *ShadowBuffer) Vertices() []float32 {
	return s.data[s.backward:s.forward]
}

func (s *ShadowBuffer) Cursors() (backward, forward int) {
	return s.backward, s.forward
}
