package tileengine

import (
	"testing"

	"github.com/nitrogfx/nitroconv/internal/colorspace"
)

func solidTile(c colorspace.RGBA) Tile {
	var t Tile
	for i := 0; i < 64; i++ {
		t.Pixels[i] = c
		t.YIQ[i] = colorspace.RGBToYIQ(c)
	}
	t.FlipMode = FlipNone
	t.NRepresents = 1
	return t
}

func TestPermuteInvolution(t *testing.T) {
	for flip := 0; flip < 4; flip++ {
		for i := 0; i < 64; i++ {
			if permute(permute(i, flip), flip) != i {
				t.Fatalf("permute not involutive for flip=%d i=%d", flip, i)
			}
		}
	}
}

func TestDiffIdenticalTilesIsZero(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	a := solidTile(colorspace.RGBA{R: 200, G: 50, B: 10, A: 255})
	b := solidTile(colorspace.RGBA{R: 200, G: 50, B: 10, A: 255})
	d, flip := Diff(ctx, &a, &b, true)
	if d > zeroCostEpsilon {
		t.Errorf("d = %v, want ~0", d)
	}
	if flip != FlipNone {
		t.Errorf("flip = %d, want FlipNone for identical solid tiles", flip)
	}
}

func TestDiffFlippedTilesMatch(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	var a, b Tile
	for i := 0; i < 64; i++ {
		c := colorspace.RGBA{R: uint8(i * 3), G: uint8(255 - i*3), B: 128, A: 255}
		a.Pixels[i] = c
		a.YIQ[i] = colorspace.RGBToYIQ(c)
		b.Pixels[permute(i, FlipX)] = c
		b.YIQ[permute(i, FlipX)] = colorspace.RGBToYIQ(c)
	}
	d, flip := Diff(ctx, &a, &b, true)
	if d > 1e-6 {
		t.Errorf("d = %v, want ~0 for X-flipped duplicate", d)
	}
	if flip != FlipX {
		t.Errorf("flip = %d, want FlipX", flip)
	}
}

func TestZeroCostMergeCollapsesDuplicates(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	red := colorspace.RGBA{R: 255, A: 255}
	blue := colorspace.RGBA{B: 255, A: 255}
	tiles := []Tile{solidTile(red), solidTile(red), solidTile(blue), solidTile(red)}
	for i := range tiles {
		tiles[i].MasterTile = i
	}

	masters := ZeroCostMerge(ctx, tiles, true)
	if masters != 2 {
		t.Fatalf("masters = %d, want 2", masters)
	}
	if tiles[0].NRepresents != 3 {
		t.Errorf("tiles[0].NRepresents = %d, want 3", tiles[0].NRepresents)
	}
	if !IsMaster(tiles, 0) || !IsMaster(tiles, 2) {
		t.Errorf("expected tiles 0 and 2 to remain masters")
	}
	if IsMaster(tiles, 1) || IsMaster(tiles, 3) {
		t.Errorf("expected tiles 1 and 3 to have merged away")
	}
}

func TestWeightedMergeReachesTarget(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	tiles := make([]Tile, 6)
	for i := range tiles {
		shade := uint8(i * 10)
		tiles[i] = solidTile(colorspace.RGBA{R: 100 + shade, G: 100, B: 100, A: 255})
		tiles[i].MasterTile = i
	}

	remaining := WeightedMerge(ctx, tiles, true, 2, DefaultBufferCapacity)
	if remaining > 2 {
		t.Fatalf("remaining = %d, want <= 2", remaining)
	}
	total := 0
	for i := range tiles {
		if IsMaster(tiles, i) {
			total += tiles[i].NRepresents
		}
	}
	if total != len(tiles) {
		t.Errorf("sum of NRepresents = %d, want %d", total, len(tiles))
	}
}

func TestAverageBlendsMergedTiles(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	a := solidTile(colorspace.RGBA{R: 100, G: 100, B: 100, A: 255})
	b := solidTile(colorspace.RGBA{R: 200, G: 100, B: 100, A: 255})
	tiles := []Tile{a, b}
	tiles[0].MasterTile, tiles[1].MasterTile = 0, 0
	tiles[0].NRepresents = 2

	Average(ctx, tiles)
	r := tiles[0].Pixels[0].R
	if r <= 100 || r >= 200 {
		t.Errorf("averaged R = %d, want strictly between 100 and 200", r)
	}
}

func TestAverageWeightsByAlpha(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	opaque := solidTile(colorspace.RGBA{R: 200, G: 100, B: 100, A: 255})
	transparent := solidTile(colorspace.RGBA{R: 0, G: 100, B: 100, A: 0})
	tiles := []Tile{opaque, transparent}
	tiles[0].MasterTile, tiles[1].MasterTile = 0, 0
	tiles[0].NRepresents = 2

	Average(ctx, tiles)
	r := tiles[0].Pixels[0].R
	if r != 200 {
		t.Errorf("averaged R = %d, want 200 (fully-transparent sample should not pull the mean down)", r)
	}
}

func TestNumberCharactersSequential(t *testing.T) {
	tiles := make([]Tile, 4)
	for i := range tiles {
		tiles[i].MasterTile = i
		tiles[i].NRepresents = 1
	}
	tiles[2].MasterTile = 0
	tiles[0].NRepresents = 2

	order := NumberCharacters(tiles, true)
	if len(order) != 3 {
		t.Fatalf("len(order) = %d, want 3 masters", len(order))
	}
	if tiles[0].CharNo != 1 {
		t.Errorf("tiles[0].CharNo = %d, want 1 (char 0 reserved)", tiles[0].CharNo)
	}
	if tiles[2].CharNo != tiles[0].CharNo {
		t.Errorf("merged tile should inherit master's CharNo")
	}
}

func TestRefitIndicesMultiUsesPerMasterPalette(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	palettes := [][]colorspace.RGBA{
		{{A: 255}, {R: 255, A: 255}},
		{{A: 255}, {B: 255, A: 255}},
	}
	tiles := []Tile{solidTile(colorspace.RGBA{R: 255, A: 255}), solidTile(colorspace.RGBA{B: 255, A: 255})}
	tiles[0].MasterTile, tiles[1].MasterTile = 0, 1
	tiles[0].Palette, tiles[1].Palette = 0, 1

	RefitIndicesMulti(ctx, tiles, palettes, false)
	if tiles[0].Palette != 0 {
		t.Errorf("tiles[0].Palette = %d, want 0 (red fits best there)", tiles[0].Palette)
	}
	if tiles[0].Indices[0] != 1 {
		t.Errorf("tiles[0] index = %d, want 1 (red in palette 0)", tiles[0].Indices[0])
	}
	if tiles[1].Palette != 1 {
		t.Errorf("tiles[1].Palette = %d, want 1 (blue fits best there)", tiles[1].Palette)
	}
	if tiles[1].Indices[0] != 1 {
		t.Errorf("tiles[1] index = %d, want 1 (blue in palette 1)", tiles[1].Indices[0])
	}
}

func TestRefitIndicesMultiReassignsPaletteAcrossBoundary(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	palettes := [][]colorspace.RGBA{
		{{A: 255}, {R: 255, A: 255}},
		{{A: 255}, {B: 255, A: 255}},
	}
	// Tile starts out assigned to palette 0, but its averaged color (blue)
	// is only representable in palette 1 - the re-fit must move it there,
	// not keep deferring to the originally assigned palette.
	tiles := []Tile{solidTile(colorspace.RGBA{B: 255, A: 255})}
	tiles[0].MasterTile = 0
	tiles[0].Palette = 0

	RefitIndicesMulti(ctx, tiles, palettes, false)
	if tiles[0].Palette != 1 {
		t.Errorf("tiles[0].Palette = %d, want 1 (re-fit should cross the original palette boundary)", tiles[0].Palette)
	}
	if tiles[0].Indices[0] != 1 {
		t.Errorf("tiles[0] index = %d, want 1 (blue in palette 1)", tiles[0].Indices[0])
	}
}

func TestRefitIndicesPropagatesToChildren(t *testing.T) {
	ctx := colorspace.NewReductionContext(colorspace.DefaultBalance, colorspace.DefaultBalance, false, colorspace.DefaultGamma)
	palette := []colorspace.RGBA{{A: 255}, {R: 255, A: 255}, {B: 255, A: 255}}

	master := solidTile(colorspace.RGBA{R: 255, A: 255})
	child := solidTile(colorspace.RGBA{R: 255, A: 255})
	tiles := []Tile{master, child}
	tiles[0].MasterTile = 0
	tiles[1].MasterTile = 0
	tiles[1].FlipMode = FlipX

	RefitIndices(ctx, tiles, palette, false)
	if tiles[0].Indices[0] != 1 {
		t.Fatalf("master index = %d, want 1 (red)", tiles[0].Indices[0])
	}
	if tiles[1].Indices[0] != 1 {
		t.Errorf("child index = %d, want inherited 1 (red)", tiles[1].Indices[0])
	}
}
