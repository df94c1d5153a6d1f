package metadata

import (
	"image"
	"image/color"

	"github.com/spaghettifunk/pageflip/engine/core"
)

/**
 * @brief The memory layout of a decoded image.
 */
type PixelFormat uint8

const (
	PixelFormatUnknown PixelFormat = iota
	/** @brief 8 bits per channel, r g b. */
	PixelFormatRGB24
	/** @brief 8 bits per channel, r g b a. */
	PixelFormatRGBA32
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB24:
		return "rgb24"
	case PixelFormatRGBA32:
		return "rgba32"
	}
	return "unknown"
}

// BytesPerPixel returns 0 for an unsupported format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGB24:
		return 3
	case PixelFormatRGBA32:
		return 4
	}
	return 0
}

/**
 * @brief A decoded image handed to the page textures. Rows may be padded,
 * Stride is the byte distance between two rows.
 */
type PixelBuffer struct {
	Width  int
	Height int
	Stride int
	Format PixelFormat
	Data   []uint8
}

// NewPixelBuffer allocates a tightly packed buffer.
func NewPixelBuffer(width, height int, format PixelFormat) *PixelBuffer {
	stride := width * format.BytesPerPixel()
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Stride: stride,
		Format: format,
		Data:   make([]uint8, stride*height),
	}
}

// PixelBufferFromImage copies any image into an RGBA32 buffer.
func PixelBufferFromImage(img image.Image) *PixelBuffer {
	b := img.Bounds()
	pb := NewPixelBuffer(b.Dx(), b.Dy(), PixelFormatRGBA32)
	for y := 0; y < pb.Height; y++ {
		for x := 0; x < pb.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := y*pb.Stride + x*4
			pb.Data[i] = c.R
			pb.Data[i+1] = c.G
			pb.Data[i+2] = c.B
			pb.Data[i+3] = c.A
		}
	}
	return pb
}

// Validate checks the description against the data. It returns a
// *core.Error so callers can map it onto a status code.
func (pb *PixelBuffer) Validate() error {
	if pb == nil || pb.Data == nil {
		return core.NewError(core.StatusNullParameter, "pixel buffer has no data")
	}
	bpp := pb.Format.BytesPerPixel()
	if bpp == 0 {
		return core.NewError(core.StatusUnsupportedPixelFormat, "format %s", pb.Format)
	}
	if pb.Width <= 0 || pb.Height <= 0 || pb.Stride < pb.Width*bpp {
		return core.NewError(core.StatusPixelBufferInfo, "%dx%d with stride %d", pb.Width, pb.Height, pb.Stride)
	}
	if len(pb.Data) < (pb.Height-1)*pb.Stride+pb.Width*bpp {
		return core.NewError(core.StatusPixelBufferData, "%d bytes for %dx%d", len(pb.Data), pb.Width, pb.Height)
	}
	return nil
}

// At returns the pixel at (x, y); RGB24 pixels are opaque.
func (pb *PixelBuffer) At(x, y int) color.NRGBA {
	i := y*pb.Stride + x*pb.Format.BytesPerPixel()
	if pb.Format == PixelFormatRGB24 {
		return color.NRGBA{R: pb.Data[i], G: pb.Data[i+1], B: pb.Data[i+2], A: 0xff}
	}
	return color.NRGBA{R: pb.Data[i], G: pb.Data[i+1], B: pb.Data[i+2], A: pb.Data[i+3]}
}

func (pb *PixelBuffer) Set(x, y int, c color.NRGBA) {
	i := y*pb.Stride + x*pb.Format.BytesPerPixel()
	pb.Data[i] = c.R
	pb.Data[i+1] = c.G
	pb.Data[i+2] = c.B
	if pb.Format == PixelFormatRGBA32 {
		pb.Data[i+3] = c.A
	}
}

// ToImage copies the buffer into a standard library image.
func (pb *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, pb.Width, pb.Height))
	for y := 0; y < pb.Height; y++ {
		for x := 0; x < pb.Width; x++ {
			img.SetNRGBA(x, y, pb.At(x, y))
		}
	}
	return img
}
