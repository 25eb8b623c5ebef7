package tileengine

import "github.com/nitrogfx/nitroconv/internal/colorspace"

// zeroCostEpsilon treats any pair of tiles whose perceptual distance falls
// below this threshold as pixel-identical.
const zeroCostEpsilon = 1e-6

// DefaultBufferCapacity is the bound on the weighted-merge priority buffer.
const DefaultBufferCapacity = 64

func countMasters(tiles []Tile) int {
	n := 0
	for i := range tiles {
		if IsMaster(tiles, i) {
			n++
		}
	}
	return n
}

func mastersList(tiles []Tile) []int {
	out := make([]int, 0, len(tiles))
	for i := range tiles {
		if IsMaster(tiles, i) {
			out = append(out, i)
		}
	}
	return out
}

// mergeInto folds victim (and anything already merged into it) into
// survivor, recording the flip needed to read victim's pixels as
// survivor's. Flip composition is a plain XOR because the four
// orientations form a Klein four-group under this encoding: every element
// is its own inverse.
func mergeInto(tiles []Tile, survivor, victim, flip int) {
	victimCount := tiles[victim].NRepresents
	for k := range tiles {
		if tiles[k].MasterTile == victim {
			tiles[k].MasterTile = survivor
			tiles[k].FlipMode ^= flip
		}
	}
	tiles[survivor].NRepresents += victimCount
}

// ZeroCostMerge merges any pair of tiles whose perceptual distance is
// (near) zero, across all allowed flips. It runs once, before the
// weighted pass, and returns the number of masters remaining.
func ZeroCostMerge(ctx *colorspace.ReductionContext, tiles []Tile, allowFlip bool) int {
	for i := range tiles {
		if !IsMaster(tiles, i) {
			continue
		}
		for j := i + 1; j < len(tiles); j++ {
			if !IsMaster(tiles, j) {
				continue
			}
			d, flip := Diff(ctx, &tiles[i], &tiles[j], allowFlip)
			if d <= zeroCostEpsilon {
				mergeInto(tiles, i, j, flip)
			}
		}
	}
	return countMasters(tiles)
}

// weightedCost computes a merge candidate's cost: the raw tile distance
// scaled by the square of the combined representation count, so merging
// two already-popular tiles is penalized more than merging two rarely
// used ones.
func weightedCost(ctx *colorspace.ReductionContext, tiles []Tile, i, j int, allowFlip bool) (float64, int) {
	d, flip := Diff(ctx, &tiles[i], &tiles[j], allowFlip)
	n := float64(tiles[i].NRepresents + tiles[j].NRepresents)
	return d * n * n, flip
}

// WeightedMerge greedily merges masters, cheapest combined cost first,
// using a bounded priority buffer, until at most targetMasters remain or
// no further candidate exists. Returns the number of masters remaining.
func WeightedMerge(ctx *colorspace.ReductionContext, tiles []Tile, allowFlip bool, targetMasters, bufferCap int) int {
	if bufferCap <= 0 {
		bufferCap = DefaultBufferCapacity
	}
	pb := newPriorityBuffer(bufferCap)
	reverse := false
	seedBuffer(ctx, tiles, allowFlip, pb, reverse)

	for countMasters(tiles) > targetMasters {
		c, ok := pb.PopMin()
		if !ok {
			reverse = !reverse
			if !seedBuffer(ctx, tiles, allowFlip, pb, reverse) {
				break
			}
			continue
		}
		if !IsMaster(tiles, c.a) || !IsMaster(tiles, c.b) {
			continue
		}
		survivor, victim := c.a, c.b
		if tiles[victim].NRepresents > tiles[survivor].NRepresents {
			survivor, victim = victim, survivor
		}
		mergeInto(tiles, survivor, victim, c.flip)
		pb.Invalidate(survivor)
		pb.Invalidate(victim)
	}
	return countMasters(tiles)
}

// seedBuffer rescans the current masters and inserts every pairwise
// candidate it can fit into pb, returning whether anything new was
// admitted. When reverse is true the master list is scanned back to
// front, so a buffer that fills up before the scan completes ends up
// holding a different slice of pairs than a forward scan would have
// found; WeightedMerge alternates directions each time the buffer runs
// dry and needs refilling, rather than always favoring the pairs nearest
// the front of the master list.
func seedBuffer(ctx *colorspace.ReductionContext, tiles []Tile, allowFlip bool, pb *priorityBuffer, reverse bool) bool {
	masters := mastersList(tiles)
	if reverse {
		for l, r := 0, len(masters)-1; l < r; l, r = l+1, r-1 {
			masters[l], masters[r] = masters[r], masters[l]
		}
	}
	admitted := false
	for ii := 0; ii < len(masters); ii++ {
		for jj := ii + 1; jj < len(masters); jj++ {
			a, b := masters[ii], masters[jj]
			w, flip := weightedCost(ctx, tiles, a, b, allowFlip)
			if w > pb.Ceiling() {
				continue
			}
			if pb.Insert(candidate{a: a, b: b, weight: w, flip: flip}) {
				admitted = true
			}
		}
	}
	return admitted
}
