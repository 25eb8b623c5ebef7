package blockcompress

import (
	"math"
	"testing"

	"github.com/nitrogfx/nitroconv/internal/colorspace"
)

func solidBlock(c colorspace.RGBA) [16]colorspace.RGBA {
	var b [16]colorspace.RGBA
	for i := range b {
		b[i] = c
	}
	return b
}

func TestAnalyzeBlockSolidIsOpaqueFull(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	block := solidBlock(colorspace.RGBA{R: 200, G: 50, B: 10, A: 255})

	got := analyzeBlock(ctx, block)
	if isTransparentMode(got.mode) {
		t.Errorf("mode = %v, want an opaque mode for a fully opaque block", got.mode)
	}
	recon, _ := colorspace.ToHWColor(block[0], true).FromHWColor()
	want := 16 * colorspace.Distance(ctx, colorspace.RGBToYIQ(block[0]), colorspace.RGBToYIQ(recon))
	if math.Abs(got.errSum-want) > 1e-9 {
		t.Errorf("errSum = %v, want %v (the block color's own 5-bit hardware rounding error on all 16 pixels)", got.errSum, want)
	}
}

func TestAnalyzeBlockFullyTransparentPicksTransparentMode(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	block := solidBlock(colorspace.RGBA{})

	got := analyzeBlock(ctx, block)
	if !isTransparentMode(got.mode) {
		t.Errorf("mode = %v, want a transparent mode for a fully transparent block", got.mode)
	}
	for _, idx := range got.indices {
		if idx != 3 {
			t.Errorf("index = %d, want 3 (transparent slot) for every pixel", idx)
		}
	}
}

func TestCompressRejectsBadDimensions(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	_, err := Compress(ctx, make([]colorspace.RGBA, 9*4), 9, 4, 0)
	if err != ErrDimensionsNotMultipleOf4 {
		t.Fatalf("err = %v, want ErrDimensionsNotMultipleOf4", err)
	}
}

func TestCompressSixteenColorImage(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	const w, h = 8, 8
	px := make([]colorspace.RGBA, w*h)
	for by := 0; by < 2; by++ {
		for bx := 0; bx < 2; bx++ {
			for row := 0; row < 4; row++ {
				for col := 0; col < 4; col++ {
					n := uint8((by*2+bx)*4 + (row%2)*2 + col%2)
					c := colorspace.RGBA{R: n * 16, G: 255 - n*16, B: 128, A: 255}
					px[(by*4+row)*w+bx*4+col] = c
				}
			}
		}
	}

	result, err := Compress(ctx, px, w, h, 0)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(result.Texels) != w*h/4 {
		t.Errorf("len(Texels) = %d, want %d", len(result.Texels), w*h/4)
	}
	if len(result.Indices) != w*h/8 {
		t.Errorf("len(Indices) = %d, want %d", len(result.Indices), w*h/8)
	}
	if len(result.Palette) > 16 {
		t.Errorf("len(Palette) = %d, want <= 16", len(result.Palette))
	}
	for b := 0; b < 4; b++ {
		entry := uint16(result.Indices[b*2]) | uint16(result.Indices[b*2+1])<<8
		mode := Mode(entry >> 14)
		if isTransparentMode(mode) {
			t.Errorf("block %d mode = %v, want an opaque mode", b, mode)
		}
	}
}

func TestCompressionPassReducesPaletteOnSimilarBlocks(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	const w, h = 8, 4
	px := make([]colorspace.RGBA, w*h)
	for i := range px {
		px[i] = colorspace.RGBA{R: 128, G: 64, B: 200, A: 255}
	}

	noCompression, err := Compress(ctx, px, w, h, 0)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	compressed, err := Compress(ctx, px, w, h, 100)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(compressed.Palette) > len(noCompression.Palette) {
		t.Errorf("compressed palette (%d) should not exceed uncompressed (%d)", len(compressed.Palette), len(noCompression.Palette))
	}
}
