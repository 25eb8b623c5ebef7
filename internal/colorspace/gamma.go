package colorspace

import "math"

// LinearY returns the gamma-linear luma for a luma-table index, i.e.
// ctx.LumaTable[y]. Averaging of tile pixels is done in this linear space
// rather than on the quantized index, so repeated averaging doesn't
// accumulate rounding bias.
func LinearY(ctx *ReductionContext, y int) float64 {
	if y < 0 {
		y = 0
	} else if y > 511 {
		y = 511
	}
	return ctx.LumaTable[y]
}

// CompressY maps a gamma-linear luma value back to the nearest luma-table
// index, inverting LinearY. Used after averaging several tiles' pixels in
// linear space, to re-quantize the mean back to a storable Y index.
func CompressY(ctx *ReductionContext, linear float64) int {
	if linear <= 0 {
		return 0
	}
	maxLinear := ctx.LumaTable[511]
	if linear >= maxLinear {
		return 511
	}
	// LumaTable is monotonically increasing in y (gamma > 0), so invert the
	// defining curve directly instead of scanning the table.
	norm := linear / 511.0
	y := math.Pow(norm, 1.0/ctx.Gamma) * 511.0
	idx := int(math.Round(y))
	if idx < 0 {
		idx = 0
	} else if idx > 511 {
		idx = 511
	}
	return idx
}

// AverageYIQA computes the weighted mean of a set of YIQA colors, averaging
// luma in gamma-linear space (per LinearY/CompressY) and I/Q/A directly.
// weights must be the same length as colors; a nil weights slice means
// unweighted (all weight 1).
func AverageYIQA(ctx *ReductionContext, colors []YIQ, weights []float64) YIQ {
	if len(colors) == 0 {
		return YIQ{}
	}
	var sumW, sumLinY, sumI, sumQ, sumA float64
	for i, c := range colors {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		sumW += w
		sumLinY += w * LinearY(ctx, c.Y)
		sumI += w * c.I
		sumQ += w * c.Q
		sumA += w * c.A
	}
	if sumW == 0 {
		return colors[0]
	}
	return YIQ{
		Y: CompressY(ctx, sumLinY/sumW),
		I: sumI / sumW,
		Q: sumQ / sumW,
		A: sumA / sumW,
	}
}
