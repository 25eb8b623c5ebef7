package blockcompress

import (
	"github.com/nitrogfx/nitroconv/internal/colorspace"
	"github.com/nitrogfx/nitroconv/internal/quantize"
)

var allModes = [4]Mode{ModeOpaqueFull, ModeOpaqueInterp, ModeTransparentFull, ModeTransparentInterp}

func isTransparentMode(m Mode) bool {
	return m == ModeTransparentFull || m == ModeTransparentInterp
}

// blockAnalysis is the chosen mode, palette-stored endpoints, and per-pixel
// indices for a single 4x4 block.
type blockAnalysis struct {
	mode      Mode
	endpoints []colorspace.HWColor
	indices   [16]uint8
	errSum    float64
}

// candidateEndpoints builds the provisional endpoint colors for mode by
// running the quantizer over the block's pixels, restricted to the pixels
// a transparent mode's explicit endpoints actually need to represent.
func candidateEndpoints(ctx *colorspace.ReductionContext, block [16]colorspace.RGBA, mode Mode) []colorspace.RGBA {
	h := quantize.NewHistogram(ctx)
	if isTransparentMode(mode) {
		for _, p := range block {
			if p.A >= alphaMidpoint {
				h.Add(p, 1)
			}
		}
	} else {
		for _, p := range block {
			h.Add(p, 1)
		}
	}
	return quantize.Build(ctx, h, mode.EndpointCount(), false)
}

// assignIndices picks, for every pixel in block, the reconstruction index
// (0-3) minimizing perceptual distance against recon, returning the chosen
// indices and their summed error.
func assignIndices(ctx *colorspace.ReductionContext, block [16]colorspace.RGBA, recon [4]reconColor) ([16]uint8, float64) {
	var candYIQ [4]colorspace.YIQ
	for i, c := range recon {
		candYIQ[i] = colorspace.RGBToYIQ(reconRGBA(c))
	}

	var indices [16]uint8
	var total float64
	for i, p := range block {
		target := colorspace.RGBToYIQ(p)
		best := 0
		bestD := colorspace.Distance(ctx, target, candYIQ[0])
		for j := 1; j < 4; j++ {
			d := colorspace.Distance(ctx, target, candYIQ[j])
			if d < bestD {
				bestD = d
				best = j
			}
		}
		indices[i] = uint8(best)
		total += bestD
	}
	return indices, total
}

// analyzeBlock tries all four modes and keeps the one with the lowest
// total reconstruction error. The alpha term in the distance metric
// naturally disqualifies an opaque mode against a block with transparent
// pixels, so no separate eligibility gate is needed. A transparent mode can
// match a fully opaque block as closely as an opaque mode can, so modes are
// tried opaque-first and a later mode replaces the incumbent only when its
// error is strictly lower.
func analyzeBlock(ctx *colorspace.ReductionContext, block [16]colorspace.RGBA) blockAnalysis {
	var best blockAnalysis
	haveBest := false

	for _, mode := range allModes {
		colors := candidateEndpoints(ctx, block, mode)
		endpoints := make([]colorspace.HWColor, len(colors))
		for i, c := range colors {
			endpoints[i] = colorspace.ToHWColor(c, true)
		}
		recon := reconstructPalette(mode, endpoints)
		indices, errSum := assignIndices(ctx, block, recon)

		if !haveBest || errSum < best.errSum {
			best = blockAnalysis{mode: mode, endpoints: endpoints, indices: indices, errSum: errSum}
			haveBest = true
		}
	}
	return best
}
