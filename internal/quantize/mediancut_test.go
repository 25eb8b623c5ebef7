package quantize

import (
	"testing"

	"github.com/nitrogfx/nitroconv/internal/colorspace"
)

func solidImage(c colorspace.RGBA, n int) []colorspace.RGBA {
	px := make([]colorspace.RGBA, n)
	for i := range px {
		px[i] = c
	}
	return px
}

func TestBuildExactFewColors(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	h := NewHistogram(ctx)
	h.AddPixels(solidImage(colorspace.RGBA{R: 255, A: 255}, 64))

	pal := Build(ctx, h, 16, false)
	if len(pal) != 16 {
		t.Fatalf("len(pal) = %d, want 16", len(pal))
	}
	if pal[0].R != 255 {
		t.Errorf("pal[0] = %+v, want red", pal[0])
	}
}

func TestBuildReservesColor0(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	h := NewHistogram(ctx)
	for i := 0; i < 64; i++ {
		h.Add(colorspace.RGBA{R: uint8(i * 4), G: uint8(255 - i*4), B: 10, A: 255}, 1)
	}
	pal := Build(ctx, h, 16, true)
	if len(pal) != 15 {
		t.Fatalf("len(pal) = %d, want 15 (color0 reserved)", len(pal))
	}
}

func TestBuildDegenerateEmpty(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	h := NewHistogram(ctx)
	pal := Build(ctx, h, 4, false)
	if len(pal) != 4 {
		t.Fatalf("len(pal) = %d, want 4", len(pal))
	}
}

func TestBuildManyColorsProducesTarget(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	h := NewHistogram(ctx)
	for r := 0; r < 16; r++ {
		for g := 0; g < 16; g++ {
			h.Add(colorspace.RGBA{R: uint8(r * 16), G: uint8(g * 16), B: 128, A: 255}, 1)
		}
	}
	pal := Build(ctx, h, 16, false)
	if len(pal) != 16 {
		t.Fatalf("len(pal) = %d, want 16", len(pal))
	}
}

func TestPaletteErrorEarlyExit(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	px := ToYIQ(solidImage(colorspace.RGBA{R: 255, A: 255}, 8))
	palette := ToYIQ([]colorspace.RGBA{{B: 255, A: 255}})

	full := PaletteError(ctx, px, palette, 1e18)
	capped := PaletteError(ctx, px, palette, 0)
	if capped > full {
		t.Errorf("capped error %v should not exceed full error %v", capped, full)
	}
	if capped <= 0 {
		t.Errorf("capped error should still reflect at least one pixel's error, got %v", capped)
	}
}
