package flip

import (
	"image/color"

	"github.com/spaghettifunk/pageflip/engine/renderer/metadata"
)

// AverageColor samples the diagonals of five count×count squares, the
// four corners and the center, and averages them. count is capped to a
// third of either dimension. pb must already be validated.
func AverageColor(pb *metadata.PixelBuffer, count int) color.NRGBA {
	if count > pb.Width/3 {
		count = pb.Width / 3
	}
	if count > pb.Height/3 {
		count = pb.Height / 3
	}
	if count < 1 {
		count = 1
	}

	right := pb.Width - count
	bottom := pb.Height - count
	centerLeft := right / 2
	centerTop := bottom / 2

	var r, g, b, a int
	add := func(x, y int) {
		c := pb.At(x, y)
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
		a += int(c.A)
	}
	for i := 0; i < count; i++ {
		add(i, i)
		add(centerLeft+i, centerTop+i)
		add(right+i, i)
		add(i, bottom+i)
		add(right+i, bottom+i)
	}

	n := count * 5
	return color.NRGBA{
		R: uint8(r / n),
		G: uint8(g / n),
		B: uint8(b / n),
		A: uint8(a / n),
	}
}

// maskColorOf converts a color into the normalized rgb used to tint the
// back of a fold.
func maskColorOf(c color.NRGBA) [3]float32 {
	return [3]float32{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
	}
}
