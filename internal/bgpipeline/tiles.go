package bgpipeline

import "github.com/nitrogfx/nitroconv/internal/colorspace"

// normalize applies the pipeline's pixel normalization: pixels that
// are already fully transparent collapse to 0x00000000; everything else
// has its alpha forced to opaque, except pixels matching an enabled
// alpha-key color, which become fully transparent regardless of their
// original alpha.
func normalize(px []colorspace.RGBA, key AlphaKey) []colorspace.RGBA {
	out := make([]colorspace.RGBA, len(px))
	for i, p := range px {
		switch {
		case p.A == 0:
			out[i] = colorspace.RGBA{}
		case key.Enabled && p.R == key.Color.R && p.G == key.Color.G && p.B == key.Color.B:
			out[i] = colorspace.RGBA{}
		default:
			out[i] = colorspace.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
		}
	}
	return out
}

// tilePixels extracts the 64 pixels of tile (tx,ty) from a normalized
// image of the given width, in row-major order.
func tilePixels(px []colorspace.RGBA, tx, ty, imgWidth int) []colorspace.RGBA {
	out := make([]colorspace.RGBA, 64)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sx, sy := tx*8+col, ty*8+row
			out[row*8+col] = px[sy*imgWidth+sx]
		}
	}
	return out
}
