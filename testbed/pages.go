package testbed

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/spaghettifunk/pageflip/engine/assets/loaders"
	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
	"github.com/spaghettifunk/pageflip/engine/resources"
)

const (
	firstPageCaption = "The First Page"
	lastPageCaption  = "The Last Page"
	prefaceLabel     = "Preface"
	endLabel         = "End"
)

// paper tints used when no background image is available
var paperTints = []color.NRGBA{
	{R: 0x3b, G: 0x5b, B: 0x7a, A: 0xff},
	{R: 0x7a, G: 0x4b, B: 0x3b, A: 0xff},
	{R: 0x3b, G: 0x7a, B: 0x52, A: 0xff},
	{R: 0x6a, G: 0x3b, B: 0x7a, A: 0xff},
}

// PageLabel returns the number printed on a page and the caption under
// it. A spread labels the pages outside the book instead of numbering
// them.
func PageLabel(number, maxPages int, spread bool) (string, string) {
	title := strconv.Itoa(number)
	if spread {
		switch {
		case number < 1:
			title = prefaceLabel
		case number > maxPages:
			title = endLabel
		}
		switch number {
		case 1:
			return title, firstPageCaption
		case maxPages:
			return title, lastPageCaption
		}
		return title, ""
	}
	switch {
	case number <= 1:
		return title, firstPageCaption
	case number >= maxPages:
		return title, lastPageCaption
	}
	return title, ""
}

// PagePainter draws numbered book pages. It is safe for concurrent use:
// every Paint builds its own drawing context and font faces.
type PagePainter struct {
	font        *truetype.Font
	maxPages    int
	backgrounds []*metadata.PixelBuffer
}

func NewPagePainter(maxPages int, backgrounds []*metadata.PixelBuffer) (*PagePainter, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	return &PagePainter{
		font:        f,
		maxPages:    maxPages,
		backgrounds: backgrounds,
	}, nil
}

func (p *PagePainter) MaxPages() int {
	return p.maxPages
}

func (p *PagePainter) face(size float64) font.Face {
	return truetype.NewFace(p.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func (p *PagePainter) background(number, width, height int) image.Image {
	if len(p.backgrounds) == 0 {
		return nil
	}
	i := number % len(p.backgrounds)
	if i < 0 {
		i += len(p.backgrounds)
	}
	scaled := loaders.ToPixelBuffer(p.backgrounds[i].ToImage(), resources.ImageResourceParams{
		Width:  width,
		Height: height,
	})
	return scaled.ToImage()
}

// Paint draws page number on a width x height canvas.
func (p *PagePainter) Paint(number, width, height int, spread bool) *metadata.PixelBuffer {
	dc := gg.NewContext(width, height)
	if bg := p.background(number, width, height); bg != nil {
		dc.DrawImage(bg, 0, 0)
	} else {
		tint := paperTints[(number%len(paperTints)+len(paperTints))%len(paperTints)]
		grad := gg.NewLinearGradient(0, 0, 0, float64(height))
		grad.AddColorStop(0, tint)
		grad.AddColorStop(1, color.NRGBA{R: tint.R / 2, G: tint.G / 2, B: tint.B / 2, A: 0xff})
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, float64(width), float64(height))
		dc.Fill()
	}

	title, caption := PageLabel(number, p.maxPages, spread)
	size := float64(height) / 10
	dc.SetFontFace(p.face(size))
	y := float64(height) - size - 20
	cx := float64(width) / 2

	// drop shadow
	dc.SetColor(color.NRGBA{A: 0xb0})
	dc.DrawStringAnchored(title, cx+8, y+8, 0.5, 0)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(title, cx, y, 0.5, 0)

	if caption != "" {
		captionSize := float64(height) / 50
		dc.SetFontFace(p.face(captionSize))
		dc.DrawStringAnchored(caption, cx, y+5+captionSize, 0.5, 0)
	}
	return metadata.PixelBufferFromImage(dc.Image())
}
