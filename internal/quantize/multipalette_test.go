package quantize

import (
	"testing"

	"github.com/nitrogfx/nitroconv/internal/colorspace"
)

func TestAssignPalettesSeparatesSolidTiles(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	red := solidImage(colorspace.RGBA{R: 255, A: 255}, 64)
	blue := solidImage(colorspace.RGBA{B: 255, A: 255}, 64)
	tiles := [][]colorspace.RGBA{red, blue, red, blue}

	assignment, palettes := AssignPalettes(ctx, tiles, 2, 4, false)
	if len(palettes) != 2 {
		t.Fatalf("len(palettes) = %d, want 2", len(palettes))
	}
	if assignment[0] != assignment[2] {
		t.Errorf("both red tiles should share a palette: got %v", assignment)
	}
	if assignment[1] != assignment[3] {
		t.Errorf("both blue tiles should share a palette: got %v", assignment)
	}
	if assignment[0] == assignment[1] {
		t.Errorf("red and blue tiles should use different palettes: got %v", assignment)
	}
}

func TestDiffuseExactFitNoResidual(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	palette := []colorspace.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
	}
	px := []colorspace.RGBA{palette[0], palette[1], palette[1], palette[0]}
	indices := Diffuse(ctx, 2, 2, px, palette, DiffuseOptions{DiffuseAmount: 1.0})
	want := []int{0, 1, 1, 0}
	for i := range want {
		if indices[i] != want[i] {
			t.Errorf("indices[%d] = %d, want %d", i, indices[i], want[i])
		}
	}
}
