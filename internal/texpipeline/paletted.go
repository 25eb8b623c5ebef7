package texpipeline

import (
	"github.com/nitrogfx/nitroconv/internal/colorspace"
	"github.com/nitrogfx/nitroconv/internal/pool"
	"github.com/nitrogfx/nitroconv/internal/quantize"
)

// paletteResult is the palette-format output shared by Format4Color,
// Format16Color, and Format256Color: an indexed texel buffer packed at
// the format's bit depth plus the quantized hardware palette.
type paletteResult struct {
	texels  []byte
	palette []colorspace.HWColor
}

func encodePaletted(ctx *colorspace.ReductionContext, px []colorspace.RGBA, format Format, color0Transparent, dither bool, diffuseAmount float64, width, height int) paletteResult {
	numColors := format.colorsPerFormat()

	h := quantize.NewHistogram(ctx)
	h.AddPixels(px)
	pal := padIndex0(quantize.Build(ctx, h, numColors, color0Transparent), color0Transparent)

	rawIdx := pool.Get(len(px))
	defer pool.Put(rawIdx)

	var idx []int
	if dither {
		idx = quantize.Diffuse(ctx, width, height, px, pal, quantize.DiffuseOptions{
			DiffuseAmount:  diffuseAmount,
			Color0Reserved: color0Transparent,
		})
	} else {
		idx = nearestIndices(ctx, px, pal, color0Transparent)
	}
	for i, v := range idx {
		rawIdx[i] = byte(v)
	}

	return paletteResult{
		texels:  packIndices(rawIdx, format.bitsPerPixel()),
		palette: toHWPalette(pal),
	}
}

// padIndex0 grows a palette built with color0Transparent by one empty
// slot at index 0, matching quantize.Build's "caller fills slot 0
// separately" convention for reserved-color-0 builds.
func padIndex0(pal []colorspace.RGBA, color0Transparent bool) []colorspace.RGBA {
	if !color0Transparent {
		return pal
	}
	out := make([]colorspace.RGBA, len(pal)+1)
	copy(out[1:], pal)
	return out
}

func nearestIndices(ctx *colorspace.ReductionContext, px []colorspace.RGBA, palette []colorspace.RGBA, color0Reserved bool) []int {
	paletteYIQ := quantize.ToYIQ(palette)
	out := make([]int, len(px))
	for i, p := range px {
		out[i] = colorspace.ClosestIndex(ctx, colorspace.RGBToYIQ(p), paletteYIQ, color0Reserved)
	}
	return out
}

func toHWPalette(pal []colorspace.RGBA) []colorspace.HWColor {
	out := make([]colorspace.HWColor, len(pal))
	for i, c := range pal {
		out[i] = colorspace.ToHWColor(c, false)
	}
	return out
}

// packIndices packs one-byte-per-pixel raw indices down to bpp bits per
// pixel.
func packIndices(raw []byte, bpp int) []byte {
	if bpp == 8 {
		out := make([]byte, len(raw))
		copy(out, raw)
		return out
	}

	perByte := 8 / bpp
	out := make([]byte, (len(raw)+perByte-1)/perByte)
	for i, v := range raw {
		byteIdx := i / perByte
		shift := uint((i % perByte) * bpp)
		out[byteIdx] |= (v & (1<<bpp - 1)) << shift
	}
	return out
}
