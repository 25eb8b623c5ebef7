package bgpipeline

import (
	"github.com/nitrogfx/nitroconv/internal/colorspace"
	"github.com/nitrogfx/nitroconv/internal/quantize"
	"github.com/nitrogfx/nitroconv/internal/tileengine"
)

// Result holds everything a BG conversion produces, ready for a container
// writer to serialize.
type Result struct {
	CharacterBank []byte // nil for the bitmap profile
	Screen        []byte
	Palette       []colorspace.HWColor
	NumCharacters int
}

// Generate runs the full BG pipeline over px, an RGBA
// image of params.Width x params.Height pixels.
func Generate(params Params, px []colorspace.RGBA) (Result, error) {
	if err := Validate(params); err != nil {
		return Result{}, err
	}
	if len(px) != params.Width*params.Height {
		return Result{}, ErrPixelCountMismatch
	}

	ctx := colorspace.NewReductionContext(params.LightnessVsColor, params.RedVsGreen, params.EnhanceColors, params.Gamma)
	normalized := normalize(px, params.AlphaKey)

	if params.Profile.ScreenFormat == ScreenPixelArray {
		return generateBitmap(ctx, normalized, params)
	}
	return generateTiled(ctx, normalized, params)
}

func generateBitmap(ctx *colorspace.ReductionContext, normalized []colorspace.RGBA, params Params) (Result, error) {
	h := quantize.NewHistogram(ctx)
	h.AddPixels(normalized)
	pal := padColor0(quantize.Build(ctx, h, params.Region.Length, params.Color0Reserved), params.Color0Reserved)
	palettes := [][]colorspace.RGBA{pal}
	if params.Color0Reserved {
		patchColor0(palettes, params.KeyColor)
	}

	var idx []int
	if params.Dither {
		idx = quantize.Diffuse(ctx, params.Width, params.Height, normalized, palettes[0], quantize.DiffuseOptions{
			DiffuseAmount:  params.DiffuseAmount,
			Color0Reserved: params.Color0Reserved,
		})
	} else {
		idx = nearestIndices(ctx, normalized, palettes[0], params.Color0Reserved)
	}

	screen := make([]byte, len(idx))
	for i, v := range idx {
		screen[i] = byte(v)
	}

	return Result{
		Screen:  screen,
		Palette: toHWPalette(palettes, params.Region),
	}, nil
}

func generateTiled(ctx *colorspace.ReductionContext, normalized []colorspace.RGBA, params Params) (Result, error) {
	tilesX, tilesY := params.tilesX(), params.tilesY()
	numTiles := tilesX * tilesY

	assignment, palettes := buildPalettes(ctx, normalized, params, tilesX, tilesY)
	if params.Color0Reserved {
		patchColor0(palettes, params.KeyColor)
	}

	indices := make([]int, len(normalized))
	for t := 0; t < numTiles; t++ {
		tx, ty := t%tilesX, t/tilesX
		block := tilePixels(normalized, tx, ty, params.Width)
		pal := palettes[assignment[t]]

		var idx []int
		if params.Dither {
			idx = quantize.Diffuse(ctx, 8, 8, block, pal, quantize.DiffuseOptions{
				DiffuseAmount:  params.DiffuseAmount,
				Color0Reserved: params.Color0Reserved,
			})
		} else {
			idx = nearestIndices(ctx, block, pal, params.Color0Reserved)
		}
		scatterTileIndices(indices, idx, tx, ty, params.Width)
	}

	tiles := tileengine.NewTilesFromIndexed(tilesX, tilesY, normalized, indices, params.Width)
	for t := range tiles {
		tiles[t].Palette = assignment[t]
	}

	if params.Compress {
		tileengine.ZeroCostMerge(ctx, tiles, params.Profile.FlipAllowed)
		tileengine.WeightedMerge(ctx, tiles, params.Profile.FlipAllowed, params.Profile.MaxChars, tileengine.DefaultBufferCapacity)
		tileengine.Average(ctx, tiles)
		tileengine.RefitIndicesMulti(ctx, tiles, palettes, params.Color0Reserved)
	}

	order := tileengine.NumberCharacters(tiles, false)
	bank := packCharacterBank(order, tiles, params.Profile.Depth)
	screen := emitScreen(tiles, tilesX, tilesY, params.CharBase, params.Profile.ScreenFormat)

	return Result{
		CharacterBank: bank,
		Screen:        screen,
		Palette:       toHWPalette(palettes, params.Region),
		NumCharacters: len(order),
	}, nil
}

// scatterTileIndices writes a tile's 64 indices back into the
// full-image index buffer at (tx,ty).
func scatterTileIndices(dst []int, idx []int, tx, ty, imgWidth int) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sx, sy := tx*8+col, ty*8+row
			dst[sy*imgWidth+sx] = idx[row*8+col]
		}
	}
}
