package texpipeline

import (
	"github.com/nitrogfx/nitroconv/internal/colorspace"
	"github.com/nitrogfx/nitroconv/internal/pool"
	"github.com/nitrogfx/nitroconv/internal/quantize"
)

// encodeAlphaIndexed builds an A3I5/A5I3 texel buffer: the color channel
// is quantized to 1<<format.indexBits() colors exactly as a paletted format
// (but never reserves index 0 - alpha, not a reserved index, carries
// transparency), while the alpha channel is independently scaled to
// format.alphaBits() levels, optionally error-diffused when ditherAlpha
// is set.
func encodeAlphaIndexed(ctx *colorspace.ReductionContext, px []colorspace.RGBA, format Format, ditherAlpha bool, width, height int) paletteResult {
	h := quantize.NewHistogram(ctx)
	h.AddPixels(px)
	pal := quantize.Build(ctx, h, format.colorsPerFormat(), false)

	colorIdx := nearestIndices(ctx, px, pal, false)
	alphaLevels := quantizeAlpha(px, format.alphaBits(), ditherAlpha, width, height)

	indexBits := format.indexBits()
	out := make([]byte, len(px))
	for i := range px {
		out[i] = byte(colorIdx[i]&(1<<indexBits-1)) | byte(alphaLevels[i])<<indexBits
	}

	return paletteResult{texels: out, palette: toHWPalette(pal)}
}

// quantizeAlpha scales each pixel's 8-bit alpha to an n-bit level,
// optionally diffusing the rounding residual across the same
// Floyd-Steinberg neighborhood quantize.Diffuse uses for RGB, applied
// here to the scalar alpha channel.
func quantizeAlpha(px []colorspace.RGBA, bits int, dither bool, width, height int) []int {
	maxLevel := (1 << bits) - 1
	out := make([]int, len(px))
	if !dither {
		for i, c := range px {
			out[i] = int(float64(c.A)/255*float64(maxLevel) + 0.5)
		}
		return out
	}

	errBuf := pool.GetInt32(len(px))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			target := float64(px[i].A) + float64(errBuf[i])
			if target < 0 {
				target = 0
			} else if target > 255 {
				target = 255
			}
			level := int(target/255*float64(maxLevel) + 0.5)
			if level > maxLevel {
				level = maxLevel
			}
			out[i] = level

			reconstructed := float64(level) / float64(maxLevel) * 255
			residual := int32(target - reconstructed)
			diffuseAlpha(errBuf, residual, x, y, width, height)
		}
	}
	return out
}

// diffuseAlpha scatters a scalar rounding residual to the four
// Floyd-Steinberg neighbors: 7/16 right, 3/16 below-left, 5/16 below,
// 1/16 below-right.
func diffuseAlpha(buf []int32, e int32, x, y, width, height int) {
	add := func(dx, dy int, num, den int32) {
		nx, ny := x+dx, y+dy
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			return
		}
		buf[ny*width+nx] += e * num / den
	}
	add(1, 0, 7, 16)
	add(-1, 1, 3, 16)
	add(0, 1, 5, 16)
	add(1, 1, 1, 16)
}
