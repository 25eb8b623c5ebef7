package quantize

import (
	"math"
	"sort"

	"github.com/nitrogfx/nitroconv/internal/colorspace"
)

// kMeansRounds bounds the weighted k-means refinement after box splitting:
// a small fixed constant rather than an iterate-to-convergence loop.
const kMeansRounds = 8

// box is a median-cut partition: a contiguous run of histogram entry
// indices, permuted in place during splitting.
type box struct {
	start, end int // [start,end) into the shared entries slice
}

func (b box) size() int { return b.end - b.start }

// vec3 is a weighted (Y-linear, I, Q) point used for covariance/variance
// computation during box splitting.
type vec3 struct{ y, i, q float64 }

// weightedMeanAndCov computes the weighted mean and 3x3 covariance matrix
// of the entries in [start,end), in gamma-linear luma / I / Q space. The
// principal axis for splitting is computed by power iteration on this
// covariance matrix, weighted by bucket weight and enhanceColors bias.
func weightedMeanAndCov(ctx *colorspace.ReductionContext, entries []entry, start, end int) (mean vec3, cov [3][3]float64, totalW float64) {
	for i := start; i < end; i++ {
		e := entries[i]
		totalW += e.weight
		mean.y += e.weight * colorspace.LinearY(ctx, e.yiq.Y)
		mean.i += e.weight * e.yiq.I
		mean.q += e.weight * e.yiq.Q
	}
	if totalW == 0 {
		return mean, cov, 0
	}
	mean.y /= totalW
	mean.i /= totalW
	mean.q /= totalW

	chromaBoost := 1.0
	if ctx.EnhanceColors {
		chromaBoost = 1.5
	}

	for i := start; i < end; i++ {
		e := entries[i]
		dy := colorspace.LinearY(ctx, e.yiq.Y) - mean.y
		di := (e.yiq.I - mean.i) * chromaBoost
		dq := (e.yiq.Q - mean.q) * chromaBoost
		w := e.weight
		cov[0][0] += w * dy * dy
		cov[0][1] += w * dy * di
		cov[0][2] += w * dy * dq
		cov[1][1] += w * di * di
		cov[1][2] += w * di * dq
		cov[2][2] += w * dq * dq
	}
	cov[1][0], cov[2][0], cov[2][1] = cov[0][1], cov[0][2], cov[1][2]
	return mean, cov, totalW
}

// principalAxis finds the dominant eigenvector of a symmetric 3x3 matrix by
// power iteration, a small fixed number of rounds being more than enough
// for the box sizes involved here.
func principalAxis(cov [3][3]float64) vec3 {
	v := vec3{y: 1, i: 1, q: 1}
	for iter := 0; iter < 24; iter++ {
		nv := vec3{
			y: cov[0][0]*v.y + cov[0][1]*v.i + cov[0][2]*v.q,
			i: cov[1][0]*v.y + cov[1][1]*v.i + cov[1][2]*v.q,
			q: cov[2][0]*v.y + cov[2][1]*v.i + cov[2][2]*v.q,
		}
		norm := math.Sqrt(nv.y*nv.y + nv.i*nv.i + nv.q*nv.q)
		if norm < 1e-12 {
			return v
		}
		v = vec3{y: nv.y / norm, i: nv.i / norm, q: nv.q / norm}
	}
	return v
}

func project(ctx *colorspace.ReductionContext, e entry, axis vec3) float64 {
	return colorspace.LinearY(ctx, e.yiq.Y)*axis.y + e.yiq.I*axis.i + e.yiq.Q*axis.q
}

// splitBox partitions entries[b.start:b.end] at the weighted median along
// the box's principal axis, returning the two halves. Returns ok=false if
// the box has zero variance (all entries coincide) and cannot be split.
func splitBox(ctx *colorspace.ReductionContext, entries []entry, b box) (left, right box, ok bool) {
	_, cov, totalW := weightedMeanAndCov(ctx, entries, b.start, b.end)
	if totalW == 0 || (cov[0][0]+cov[1][1]+cov[2][2]) < 1e-9 {
		return box{}, box{}, false
	}
	axis := principalAxis(cov)

	sub := entries[b.start:b.end]
	sort.Slice(sub, func(i, j int) bool {
		return project(ctx, sub[i], axis) < project(ctx, sub[j], axis)
	})

	// Weighted median split: accumulate weight until half of totalW.
	half := totalW / 2
	acc := 0.0
	mid := b.start + 1
	for i, e := range sub {
		acc += e.weight
		if acc >= half {
			mid = b.start + i + 1
			break
		}
	}
	if mid <= b.start {
		mid = b.start + 1
	}
	if mid >= b.end {
		mid = b.end - 1
	}
	return box{start: b.start, end: mid}, box{start: mid, end: b.end}, true
}

// boxMean returns the weighted mean color of a box as a YIQ tuple.
func boxMean(ctx *colorspace.ReductionContext, entries []entry, b box) colorspace.YIQ {
	colors := make([]colorspace.YIQ, 0, b.size())
	weights := make([]float64, 0, b.size())
	for i := b.start; i < b.end; i++ {
		colors = append(colors, entries[i].yiq)
		weights = append(weights, entries[i].weight)
	}
	return colorspace.AverageYIQA(ctx, colors, weights)
}

// Build runs median-cut over the histogram to produce up to numColors
// palette entries.
// If color0Reserved is true, one fewer color is built (the caller fills
// slot 0 separately).
func Build(ctx *colorspace.ReductionContext, h *Histogram, numColors int, color0Reserved bool) []colorspace.RGBA {
	target := numColors
	if color0Reserved {
		target--
	}
	if target <= 0 {
		return nil
	}
	if len(h.entries) == 0 {
		// Degenerate input: nothing to quantize; duplicate black until the
		// requested count is reached.
		out := make([]colorspace.RGBA, target)
		return out
	}

	entries := make([]entry, len(h.entries))
	copy(entries, h.entries)

	// Fast "exact" path: already within budget, emit the histogram directly
	// (original tool's createPaletteExact), padding via duplication to meet
	// the requested count per the degenerate-input rule.
	if len(entries) <= target {
		out := make([]colorspace.RGBA, 0, target)
		for _, e := range entries {
			out = append(out, e.rgb)
		}
		for len(out) < target {
			out = append(out, out[len(out)-1])
		}
		return out
	}

	boxes := []box{{start: 0, end: len(entries)}}
	for len(boxes) < target {
		// Split the box with the greatest weighted variance.
		bestIdx := -1
		bestVar := -1.0
		for i, bx := range boxes {
			if bx.size() < 2 {
				continue
			}
			_, cov, totalW := weightedMeanAndCov(ctx, entries, bx.start, bx.end)
			if totalW == 0 {
				continue
			}
			variance := cov[0][0] + cov[1][1] + cov[2][2]
			if variance > bestVar {
				bestVar = variance
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break // no splittable box remains
		}
		left, right, ok := splitBox(ctx, entries, boxes[bestIdx])
		if !ok {
			break
		}
		boxes = append(boxes[:bestIdx], append([]box{left, right}, boxes[bestIdx+1:]...)...)
	}

	means := make([]colorspace.YIQ, len(boxes))
	for i, bx := range boxes {
		means[i] = boxMean(ctx, entries, bx)
	}

	means = refineKMeans(ctx, entries, means)

	out := make([]colorspace.RGBA, 0, target)
	for _, m := range means {
		out = append(out, colorspace.YIQToRGB(m))
	}
	for len(out) < target {
		out = append(out, out[len(out)-1])
	}
	return out
}

// refineKMeans reassigns each histogram entry to its nearest centroid and
// recomputes centroids, for up to kMeansRounds rounds.
func refineKMeans(ctx *colorspace.ReductionContext, entries []entry, centroids []colorspace.YIQ) []colorspace.YIQ {
	if len(centroids) == 0 {
		return centroids
	}
	assign := make([]int, len(entries))
	for round := 0; round < kMeansRounds; round++ {
		changed := false
		for i, e := range entries {
			best := 0
			bestD := colorspace.Distance(ctx, e.yiq, centroids[0])
			for c := 1; c < len(centroids); c++ {
				d := colorspace.Distance(ctx, e.yiq, centroids[c])
				if d < bestD {
					bestD = d
					best = c
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}

		colorsByCluster := make([][]colorspace.YIQ, len(centroids))
		weightsByCluster := make([][]float64, len(centroids))
		for i, e := range entries {
			c := assign[i]
			colorsByCluster[c] = append(colorsByCluster[c], e.yiq)
			weightsByCluster[c] = append(weightsByCluster[c], e.weight)
		}
		for c := range centroids {
			if len(colorsByCluster[c]) > 0 {
				centroids[c] = colorspace.AverageYIQA(ctx, colorsByCluster[c], weightsByCluster[c])
			}
		}
		if !changed && round > 0 {
			break
		}
	}
	return centroids
}

// SortByLuma sorts a palette in place by ascending luma.
func SortByLuma(palette []colorspace.RGBA) {
	sort.Slice(palette, func(i, j int) bool {
		return colorspace.RGBToYIQ(palette[i]).Y < colorspace.RGBToYIQ(palette[j]).Y
	})
}
