package tileengine

import "github.com/nitrogfx/nitroconv/internal/colorspace"

// orientations lists the flip modes tried when comparing two tiles.
var orientations = [4]int{FlipNone, FlipX, FlipY, FlipXY}

// Diff computes the minimal perceptual distance between two tiles across
// all four flip orientations, returning that distance and the winning
// flip. When allowFlip is false only FlipNone is considered.
func Diff(ctx *colorspace.ReductionContext, a, b *Tile, allowFlip bool) (float64, int) {
	best := diffOriented(ctx, a, b, FlipNone)
	bestFlip := FlipNone
	if !allowFlip {
		return best, bestFlip
	}
	for _, f := range orientations[1:] {
		d := diffOriented(ctx, a, b, f)
		if d < best {
			best = d
			bestFlip = f
		}
	}
	return best, bestFlip
}

// diffOriented sums the perceptual distance between a's pixels and b's
// pixels permuted by flip.
func diffOriented(ctx *colorspace.ReductionContext, a, b *Tile, flip int) float64 {
	var sum float64
	for i := 0; i < 64; i++ {
		j := permute(i, flip)
		sum += colorspace.Distance(ctx, a.YIQ[i], b.YIQ[j])
	}
	return sum
}
