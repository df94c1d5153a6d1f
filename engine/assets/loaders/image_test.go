package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
	"github.com/spaghettifunk/pageflip/engine/resources"
)

// twoRows is red on top and blue at the bottom.
func twoRows(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := color.NRGBA{R: 0xff, A: 0xff}
		if y >= h/2 {
			c = color.NRGBA{B: 0xff, A: 0xff}
		}
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDecodeFormats(t *testing.T) {
	var pngBuf, bmpBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, twoRows(4, 4)))
	require.NoError(t, bmp.Encode(&bmpBuf, twoRows(4, 4)))

	for name, buf := range map[string]*bytes.Buffer{"png": &pngBuf, "bmp": &bmpBuf} {
		pb, err := DecodeImage(buf, resources.ImageResourceParams{})
		require.NoError(t, err, name)
		assert.Equal(t, metadata.PixelFormatRGBA32, pb.Format, name)
		assert.Equal(t, 4, pb.Width, name)
		assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, pb.At(0, 0), name)
		assert.Equal(t, color.NRGBA{B: 0xff, A: 0xff}, pb.At(0, 3), name)
	}

	_, err := DecodeImage(bytes.NewReader([]byte("not an image")), resources.ImageResourceParams{})
	assert.Error(t, err)
}

func TestToPixelBufferScales(t *testing.T) {
	src := twoRows(8, 8)

	pb := ToPixelBuffer(src, resources.ImageResourceParams{Width: 4, Height: 2})
	assert.Equal(t, 4, pb.Width)
	assert.Equal(t, 2, pb.Height)

	// keeps the aspect ratio when one side is zero
	pb = ToPixelBuffer(src, resources.ImageResourceParams{Width: 16})
	assert.Equal(t, 16, pb.Height)
	pb = ToPixelBuffer(src, resources.ImageResourceParams{Height: 2})
	assert.Equal(t, 2, pb.Width)
}

func TestToPixelBufferFlips(t *testing.T) {
	pb := ToPixelBuffer(twoRows(2, 4), resources.ImageResourceParams{FlipY: true})
	assert.Equal(t, color.NRGBA{B: 0xff, A: 0xff}, pb.At(0, 0))
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, pb.At(1, 3))
}

func TestImageLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, twoRows(6, 6)))
	require.NoError(t, f.Close())

	l := &ImageLoader{}
	res, err := l.Load(path, resources.ResourceTypeImage, &resources.ImageResourceParams{Width: 3, Height: 3})
	require.NoError(t, err)
	assert.Equal(t, resources.ResourceTypeImage, res.Type)
	assert.Positive(t, res.DataSize)
	assert.Equal(t, 3, res.Data.(*metadata.PixelBuffer).Width)

	_, err = l.Load(filepath.Join(t.TempDir(), "none.png"), resources.ResourceTypeImage, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte("book:\n  pages: 3\n"), 0644))

	l := &ConfigLoader{}
	res, err := l.Load(path, resources.ResourceTypeConfig, nil)
	require.NoError(t, err)
	assert.NotNil(t, res.Data)

	bad := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("book:\n  pages: 0\n"), 0644))
	_, err = l.Load(bad, resources.ResourceTypeConfig, nil)
	assert.Error(t, err)
}
