package quantize

import "github.com/nitrogfx/nitroconv/internal/colorspace"

// alphaMidpoint is the threshold below which a pixel binds to the reserved
// transparent index 0 without diffusing chroma error.
const alphaMidpoint = 128

// DiffuseOptions configures Floyd-Steinberg error diffusion.
type DiffuseOptions struct {
	DiffuseAmount  float64 // [0,1]
	Color0Reserved bool
	PreserveAlpha  bool // disable alpha-channel diffusion
}

// Diffuse performs serpentine-free Floyd-Steinberg dithering of width x
// height RGBA pixels against palette, returning the chosen index per pixel.
// Residual error is computed and distributed in RGB space (not YIQ), for
// stability with 5-bit hardware colors.
func Diffuse(ctx *colorspace.ReductionContext, width, height int, pixels []colorspace.RGBA, palette []colorspace.RGBA, opts DiffuseOptions) []int {
	paletteYIQ := ToYIQ(palette)
	indices := make([]int, len(pixels))

	// Per-channel floating error accumulators, one slot per pixel.
	errR := make([]float64, len(pixels))
	errG := make([]float64, len(pixels))
	errB := make([]float64, len(pixels))

	amt := opts.DiffuseAmount

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			px := pixels[i]

			if opts.Color0Reserved && px.A < alphaMidpoint {
				indices[i] = 0
				continue
			}

			adjR := clampChannel(float64(px.R) + errR[i])
			adjG := clampChannel(float64(px.G) + errG[i])
			adjB := clampChannel(float64(px.B) + errB[i])
			adjusted := colorspace.RGBA{R: adjR, G: adjG, B: adjB, A: px.A}
			target := colorspace.RGBToYIQ(adjusted)

			idx := colorspace.ClosestIndex(ctx, target, paletteYIQ, opts.Color0Reserved)
			if idx < 0 {
				idx = 0
			}
			indices[i] = idx

			chosen := palette[idx]
			dr := (float64(adjR) - float64(chosen.R)) * amt
			dg := (float64(adjG) - float64(chosen.G)) * amt
			db := (float64(adjB) - float64(chosen.B)) * amt

			distribute(errR, dr, x, y, width, height)
			distribute(errG, dg, x, y, width, height)
			distribute(errB, db, x, y, width, height)
		}
	}
	return indices
}

// distribute scatters a residual across the four Floyd-Steinberg neighbors:
// 7/16 right, 3/16 below-left, 5/16 below, 1/16 below-right.
func distribute(buf []float64, e float64, x, y, width, height int) {
	add := func(dx, dy int, w float64) {
		nx, ny := x+dx, y+dy
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			return
		}
		buf[ny*width+nx] += e * w
	}
	add(1, 0, 7.0/16)
	add(-1, 1, 3.0/16)
	add(0, 1, 5.0/16)
	add(1, 1, 1.0/16)
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
