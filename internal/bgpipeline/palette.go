package bgpipeline

import (
	"github.com/nitrogfx/nitroconv/internal/colorspace"
	"github.com/nitrogfx/nitroconv/internal/quantize"
)

// buildPalettes constructs one palette (single-palette profiles) or one
// palette per tile group via multi-palette assignment, returning the
// palette index chosen for every tile alongside the palettes themselves.
func buildPalettes(ctx *colorspace.ReductionContext, normalized []colorspace.RGBA, params Params, tilesX, tilesY int) ([]int, [][]colorspace.RGBA) {
	numTiles := tilesX * tilesY
	if params.Region.Count <= 1 {
		h := quantize.NewHistogram(ctx)
		h.AddPixels(normalized)
		pal := padColor0(quantize.Build(ctx, h, params.Region.Length, params.Color0Reserved), params.Color0Reserved)
		assignment := make([]int, numTiles)
		return assignment, [][]colorspace.RGBA{pal}
	}

	tilesPx := make([][]colorspace.RGBA, numTiles)
	for t := 0; t < numTiles; t++ {
		tilesPx[t] = tilePixels(normalized, t%tilesX, t/tilesX, params.Width)
	}
	assignment, palettes := quantize.AssignPalettes(ctx, tilesPx, params.Region.Count, params.Region.Length, params.Color0Reserved)
	for i := range palettes {
		palettes[i] = padColor0(palettes[i], params.Color0Reserved)
	}
	return assignment, palettes
}

// padColor0 grows a palette returned with color0Reserved by one empty slot
// at index 0, restoring the caller's expected Region.Length size: Build and
// AssignPalettes build one fewer color in that mode, leaving slot 0 for
// patchColor0 to fill in afterwards.
func padColor0(pal []colorspace.RGBA, color0Reserved bool) []colorspace.RGBA {
	if !color0Reserved {
		return pal
	}
	out := make([]colorspace.RGBA, len(pal)+1)
	copy(out[1:], pal)
	return out
}

// patchColor0 overwrites index 0 of every palette with keyColor, once
// quantization has finished.
func patchColor0(palettes [][]colorspace.RGBA, keyColor colorspace.RGBA) {
	for i := range palettes {
		if len(palettes[i]) > 0 {
			palettes[i][0] = keyColor
		}
	}
}

// toHWPalette converts the caller-selected palette region to packed
// hardware colors, palette-major then color-major, matching the order
// the container writer expects.
func toHWPalette(palettes [][]colorspace.RGBA, region PaletteRegion) []colorspace.HWColor {
	out := make([]colorspace.HWColor, 0, region.Count*region.Length)
	for p := region.Base; p < region.Base+region.Count && p < len(palettes); p++ {
		pal := palettes[p]
		end := region.Offset + region.Length
		for c := region.Offset; c < end && c < len(pal); c++ {
			out = append(out, colorspace.ToHWColor(pal[c], false))
		}
	}
	return out
}

// nearestIndices assigns every pixel its closest palette index with no
// error diffusion, for callers that disabled dithering.
func nearestIndices(ctx *colorspace.ReductionContext, px []colorspace.RGBA, palette []colorspace.RGBA, color0Reserved bool) []int {
	paletteYIQ := quantize.ToYIQ(palette)
	out := make([]int, len(px))
	for i, p := range px {
		out[i] = colorspace.ClosestIndex(ctx, colorspace.RGBToYIQ(p), paletteYIQ, color0Reserved)
	}
	return out
}
