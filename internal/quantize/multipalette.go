package quantize

import (
	"math"

	"github.com/nitrogfx/nitroconv/internal/colorspace"
)

// maxAssignmentIterations bounds the Lloyd-style tile/palette assignment
// loop.
const maxAssignmentIterations = 16

// PaletteError returns the accumulated perceptual error of matching every
// pixel in yiqPixels to its closest color in palette, aborting early once
// the running sum exceeds cutoff. Pass
// math.MaxFloat64 for an unbounded evaluation.
func PaletteError(ctx *colorspace.ReductionContext, yiqPixels []colorspace.YIQ, palette []colorspace.YIQ, cutoff float64) float64 {
	sum := 0.0
	for _, px := range yiqPixels {
		best := math.MaxFloat64
		for _, c := range palette {
			if d := colorspace.Distance(ctx, px, c); d < best {
				best = d
			}
		}
		sum += best
		if sum > cutoff {
			return sum
		}
	}
	return sum
}

// ToYIQ converts a slice of RGBA colors to YIQ, for use with PaletteError
// and AssignPalettes.
func ToYIQ(px []colorspace.RGBA) []colorspace.YIQ {
	out := make([]colorspace.YIQ, len(px))
	for i, c := range px {
		out[i] = colorspace.RGBToYIQ(c)
	}
	return out
}

// AssignPalettes performs multi-palette assignment: given per-tile pixel
// buffers and a palette count P, builds P palettes and
// assigns each tile to the palette minimizing its palette error, iterating
// Lloyd-style until assignments stabilize or the iteration cap is hit.
func AssignPalettes(ctx *colorspace.ReductionContext, tiles [][]colorspace.RGBA, numPalettes, colorsPerPalette int, color0Reserved bool) (assignment []int, palettes [][]colorspace.RGBA) {
	n := len(tiles)
	assignment = make([]int, n)
	if numPalettes <= 0 || n == 0 {
		return assignment, nil
	}

	tileYIQ := make([][]colorspace.YIQ, n)
	for i, px := range tiles {
		tileYIQ[i] = ToYIQ(px)
	}

	// Seed palettes from pooled median-cut.
	pooled := NewHistogram(ctx)
	for _, px := range tiles {
		pooled.AddPixels(px)
	}
	seeds := Build(ctx, pooled, numPalettes, false)
	seedYIQ := make([]colorspace.YIQ, len(seeds))
	for i, c := range seeds {
		seedYIQ[i] = colorspace.RGBToYIQ(c)
	}

	// Initial assignment: nearest seed to each tile's mean color.
	for i, px := range tileYIQ {
		mean := colorspace.AverageYIQA(ctx, px, nil)
		best, bestD := 0, math.MaxFloat64
		for p, s := range seedYIQ {
			if d := colorspace.Distance(ctx, mean, s); d < bestD {
				bestD, best = d, p
			}
		}
		assignment[i] = best
	}

	palettes = make([][]colorspace.RGBA, numPalettes)
	paletteYIQ := make([][]colorspace.YIQ, numPalettes)

	rebuildPalettes := func() {
		hists := make([]*Histogram, numPalettes)
		for p := range hists {
			hists[p] = NewHistogram(ctx)
		}
		for i, px := range tiles {
			hists[assignment[i]].AddPixels(px)
		}
		for p := 0; p < numPalettes; p++ {
			palettes[p] = Build(ctx, hists[p], colorsPerPalette, color0Reserved)
			paletteYIQ[p] = ToYIQ(palettes[p])
		}
	}

	for iter := 0; iter < maxAssignmentIterations; iter++ {
		rebuildPalettes()

		changed := false
		for i, px := range tileYIQ {
			best, bestErr := assignment[i], PaletteError(ctx, px, paletteYIQ[assignment[i]], math.MaxFloat64)
			for p := 0; p < numPalettes; p++ {
				if p == assignment[i] {
					continue
				}
				errP := PaletteError(ctx, px, paletteYIQ[p], bestErr)
				if errP < bestErr {
					bestErr, best = errP, p
				}
			}
			if best != assignment[i] {
				assignment[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	rebuildPalettes()
	return assignment, palettes
}
