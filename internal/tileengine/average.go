package tileengine

import (
	"math"

	"github.com/nitrogfx/nitroconv/internal/colorspace"
	"github.com/nitrogfx/nitroconv/internal/quantize"
)

// Average recomputes every master tile's pixel data as the gamma-linear
// mean of itself and everything merged into it, weighted by each sample's
// alpha so a descendant that was mostly transparent contributes less to
// the averaged color. Each descendant's pixels are first unpermuted back
// into the master's coordinate frame via its recorded flip. Tiles with no
// descendants are left untouched.
func Average(ctx *colorspace.ReductionContext, tiles []Tile) {
	for i := range tiles {
		if !IsMaster(tiles, i) || tiles[i].NRepresents <= 1 {
			continue
		}
		var samples [64][]colorspace.YIQ
		var weights [64][]float64
		for k := range tiles {
			if tiles[k].MasterTile != i {
				continue
			}
			flip := tiles[k].FlipMode
			for p := 0; p < 64; p++ {
				src := permute(p, flip)
				c := tiles[k].YIQ[src]
				samples[p] = append(samples[p], c)
				weights[p] = append(weights[p], c.A)
			}
		}
		for p := 0; p < 64; p++ {
			avg := colorspace.AverageYIQA(ctx, samples[p], weights[p])
			tiles[i].YIQ[p] = avg
			tiles[i].Pixels[p] = colorspace.YIQToRGB(avg)
		}
	}
}

// RefitIndices re-quantizes every master's averaged pixels against
// palette, then propagates the resulting indices back down to every
// tile merged into that master.
func RefitIndices(ctx *colorspace.ReductionContext, tiles []Tile, palette []colorspace.RGBA, color0Reserved bool) {
	paletteYIQ := make([]colorspace.YIQ, len(palette))
	for i, c := range palette {
		paletteYIQ[i] = colorspace.RGBToYIQ(c)
	}

	for i := range tiles {
		if !IsMaster(tiles, i) {
			continue
		}
		for p := 0; p < 64; p++ {
			tiles[i].Indices[p] = colorspace.ClosestIndex(ctx, tiles[i].YIQ[p], paletteYIQ, color0Reserved)
		}
	}
	for k := range tiles {
		if IsMaster(tiles, k) {
			continue
		}
		m := tiles[k].MasterTile
		flip := tiles[k].FlipMode
		for p := 0; p < 64; p++ {
			tiles[k].Indices[p] = tiles[m].Indices[permute(p, flip)]
		}
	}
}

// RefitIndicesMulti is RefitIndices for callers running several palettes at
// once (e.g. a multi-palette BG profile). Because merging can pull
// together tiles that were originally assigned to different palettes, a
// master's averaged pixels are re-fit against every palette in palettes,
// not just the one it happened to start with, and tiles[i].Palette is
// updated to whichever minimizes quantize.PaletteError.
func RefitIndicesMulti(ctx *colorspace.ReductionContext, tiles []Tile, palettes [][]colorspace.RGBA, color0Reserved bool) {
	paletteYIQ := make([][]colorspace.YIQ, len(palettes))
	for p, pal := range palettes {
		yiq := make([]colorspace.YIQ, len(pal))
		for k, c := range pal {
			yiq[k] = colorspace.RGBToYIQ(c)
		}
		paletteYIQ[p] = yiq
	}

	for i := range tiles {
		if !IsMaster(tiles, i) {
			continue
		}
		pixels := tiles[i].YIQ[:]
		best := tiles[i].Palette
		bestErr := quantize.PaletteError(ctx, pixels, paletteYIQ[best], math.MaxFloat64)
		for p := range palettes {
			if p == best {
				continue
			}
			if errP := quantize.PaletteError(ctx, pixels, paletteYIQ[p], bestErr); errP < bestErr {
				bestErr, best = errP, p
			}
		}
		tiles[i].Palette = best

		for p := 0; p < 64; p++ {
			tiles[i].Indices[p] = colorspace.ClosestIndex(ctx, tiles[i].YIQ[p], paletteYIQ[best], color0Reserved)
		}
	}
	for k := range tiles {
		if IsMaster(tiles, k) {
			continue
		}
		m := tiles[k].MasterTile
		flip := tiles[k].FlipMode
		tiles[k].Palette = tiles[m].Palette
		for p := 0; p < 64; p++ {
			tiles[k].Indices[p] = tiles[m].Indices[permute(p, flip)]
		}
	}
}
