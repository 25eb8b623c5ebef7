package blockcompress

import "github.com/nitrogfx/nitroconv/internal/colorspace"

// endpointRun is one surviving entry in the shared endpoint palette: a
// contiguous set of endpoint colors shared by every block in members.
type endpointRun struct {
	mode      Mode
	endpoints []colorspace.HWColor
	members   []int
	dead      bool
}

// maxMergeRounds bounds the palette compression pass so a pathological
// input cannot loop forever; in practice the pass terminates long before
// this once no beneficial merge remains.
const maxMergeRounds = 4096

// mergeEndpointColors averages two same-length endpoint lists position by
// position in gamma-linear space.
func mergeEndpointColors(ctx *colorspace.ReductionContext, a, b []colorspace.HWColor) []colorspace.HWColor {
	out := make([]colorspace.HWColor, len(a))
	for i := range a {
		ca, _ := a[i].FromHWColor()
		cb, _ := b[i].FromHWColor()
		avg := colorspace.AverageYIQA(ctx, []colorspace.YIQ{colorspace.RGBToYIQ(ca), colorspace.RGBToYIQ(cb)}, nil)
		out[i] = colorspace.ToHWColor(colorspace.YIQToRGB(avg), true)
	}
	return out
}

// compressPalette runs the optional palette compression pass: repeatedly
// find the cheapest same-mode run pair to merge, and merge it if the
// total reconstruction error increase across their member blocks is
// within threshold-scaled tolerance. threshold is
// in [0,100]; 0 disables the pass.
func compressPalette(ctx *colorspace.ReductionContext, blocks []blockAnalysis, pixels [][16]colorspace.RGBA, threshold int) []endpointRun {
	runs := make([]endpointRun, len(blocks))
	for i, b := range blocks {
		runs[i] = endpointRun{mode: b.mode, endpoints: b.endpoints, members: []int{i}}
	}
	if threshold <= 0 {
		return runs
	}

	var total float64
	for _, b := range blocks {
		total += b.errSum
	}
	tolerance := float64(threshold) / 100.0 * (total / float64(len(blocks)))

	for round := 0; round < maxMergeRounds; round++ {
		bestA, bestB := -1, -1
		var bestDelta float64
		var bestMerged []colorspace.HWColor
		var bestIndices map[int][16]uint8
		var bestErrs map[int]float64
		haveBest := false

		for a := range runs {
			if runs[a].dead {
				continue
			}
			for b := a + 1; b < len(runs); b++ {
				if runs[b].dead || runs[b].mode != runs[a].mode {
					continue
				}
				merged := mergeEndpointColors(ctx, runs[a].endpoints, runs[b].endpoints)
				recon := reconstructPalette(runs[a].mode, merged)

				members := append(append([]int{}, runs[a].members...), runs[b].members...)
				var oldErr, newErr float64
				indices := make(map[int][16]uint8, len(members))
				errs := make(map[int]float64, len(members))
				for _, m := range members {
					oldErr += blocks[m].errSum
					idx, e := assignIndices(ctx, pixels[m], recon)
					indices[m] = idx
					errs[m] = e
					newErr += e
				}
				delta := newErr - oldErr
				if !haveBest || delta < bestDelta {
					haveBest = true
					bestDelta = delta
					bestA, bestB = a, b
					bestMerged = merged
					bestIndices = indices
					bestErrs = errs
				}
			}
		}

		if !haveBest || bestDelta > tolerance {
			break
		}

		runs[bestA].endpoints = bestMerged
		runs[bestA].members = append(runs[bestA].members, runs[bestB].members...)
		runs[bestB].dead = true
		for m, idx := range bestIndices {
			blocks[m].endpoints = bestMerged
			blocks[m].indices = idx
			blocks[m].errSum = bestErrs[m]
		}
	}

	live := runs[:0]
	for _, r := range runs {
		if !r.dead {
			live = append(live, r)
		}
	}
	return live
}
