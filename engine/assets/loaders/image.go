package loaders

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
	"github.com/spaghettifunk/pageflip/engine/resources"
)

// ImageLoader decodes page images into RGBA32 pixel buffers.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	var typedParams resources.ImageResourceParams
	if p, ok := params.(*resources.ImageResourceParams); ok && p != nil {
		typedParams = *p
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	pb, err := DecodeImage(file, typedParams)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &resources.Resource{
		Name:     path,
		FullPath: path,
		Type:     resourceType,
		DataSize: uint64(info.Size()),
		Data:     pb,
	}, nil
}

func (il *ImageLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	return nil
}

// DecodeImage decodes any registered format, then scales and flips it
// as params ask.
func DecodeImage(r io.Reader, params resources.ImageResourceParams) (*metadata.PixelBuffer, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return ToPixelBuffer(src, params), nil
}

// ToPixelBuffer scales img to the requested size. A zero width or height
// keeps the aspect ratio of the source.
func ToPixelBuffer(img image.Image, params resources.ImageResourceParams) *metadata.PixelBuffer {
	b := img.Bounds()
	w, h := params.Width, params.Height
	switch {
	case w <= 0 && h <= 0:
		w, h = b.Dx(), b.Dy()
	case w <= 0:
		w = max(1, b.Dx()*h/b.Dy())
	case h <= 0:
		h = max(1, b.Dy()*w/b.Dx())
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}
	if params.FlipY {
		flipRows(dst)
	}
	return metadata.PixelBufferFromImage(dst)
}

func flipRows(img *image.NRGBA) {
	h := img.Bounds().Dy()
	row := make([]uint8, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
