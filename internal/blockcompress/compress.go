package blockcompress

import "github.com/nitrogfx/nitroconv/internal/colorspace"

// Result holds 4x4 block-compressed texture data: a texel buffer (2-bit
// per-pixel indices, 32 bits per block), an index buffer (one 16-bit
// entry per block), and the shared endpoint palette the index buffer's
// offsets address.
type Result struct {
	Texels  []byte
	Indices []byte
	Palette []colorspace.HWColor
}

// Compress block-compresses an RGBA image whose dimensions are multiples
// of 4. threshold in [0,100] controls the optional palette compression
// pass; 0 disables it unless the palette would overflow the 14-bit offset
// field, in which case the threshold is raised in steps of 10 up to 100.
func Compress(ctx *colorspace.ReductionContext, px []colorspace.RGBA, width, height, threshold int) (Result, error) {
	if width%4 != 0 || height%4 != 0 {
		return Result{}, ErrDimensionsNotMultipleOf4
	}

	blocksX, blocksY := width/4, height/4
	numBlocks := blocksX * blocksY
	pixels := make([][16]colorspace.RGBA, numBlocks)
	blocks := make([]blockAnalysis, numBlocks)

	i := 0
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			pixels[i] = fetchBlock(px, bx*4, by*4, width, height)
			blocks[i] = analyzeBlock(ctx, pixels[i])
			i++
		}
	}

	runs := compressPalette(ctx, blocks, pixels, threshold)
	for t := threshold; paletteSize(runs) > maxPaletteOffset+1 && t < 100; t += 10 {
		t2 := t + 10
		if t2 > 100 {
			t2 = 100
		}
		runs = compressPalette(ctx, blocks, pixels, t2)
	}
	if paletteSize(runs) > maxPaletteOffset+1 {
		return Result{}, ErrPaletteOverflow
	}

	palette := make([]colorspace.HWColor, 0, paletteSize(runs))
	runOffset := make([]int, len(runs))
	blockRun := make([]int, numBlocks)
	for ri, r := range runs {
		runOffset[ri] = len(palette)
		palette = append(palette, r.endpoints...)
		for _, m := range r.members {
			blockRun[m] = ri
		}
	}

	texels := make([]byte, numBlocks*4)
	indices := make([]byte, numBlocks*2)
	for b := 0; b < numBlocks; b++ {
		var word uint32
		for p, idx := range blocks[b].indices {
			word |= uint32(idx) << (p * 2)
		}
		texels[b*4+0] = byte(word)
		texels[b*4+1] = byte(word >> 8)
		texels[b*4+2] = byte(word >> 16)
		texels[b*4+3] = byte(word >> 24)

		offset := runOffset[blockRun[b]]
		entry := uint16(offset&0x3fff) | uint16(blocks[b].mode)<<14
		indices[b*2+0] = byte(entry)
		indices[b*2+1] = byte(entry >> 8)
	}

	return Result{Texels: texels, Indices: indices, Palette: palette}, nil
}

func paletteSize(runs []endpointRun) int {
	n := 0
	for _, r := range runs {
		n += len(r.endpoints)
	}
	return n
}
