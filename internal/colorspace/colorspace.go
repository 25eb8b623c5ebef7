// Package colorspace implements the perceptual color metric shared by the
// quantizer, tile engine, and block compressor: RGBA<->YIQ conversion, a
// tunable perceptual distance, a gamma-shaped luma table, and 15-bit
// hardware color packing.
//
// The luma table here follows the same shape as a sRGB gamma/linear lookup
// table: precomputed once per ReductionContext when it is created, then
// consulted by value on every conversion instead of recomputed.
package colorspace

import "math"

// RGBA is a 32-bit color with 8 bits per channel, the engine's in-memory
// pixel representation.
type RGBA struct {
	R, G, B, A uint8
}

// FromUint32 builds an RGBA from its four 8-bit channels, given in the
// R,G,B,A byte order of Go's image.NRGBA/image.RGBA pixel buffers.
func FromUint32(r, g, b, a uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// YIQ is the extended YIQ tuple used for all distance comparisons. Y is an
// integer index into a ReductionContext's luma table; I, Q, A are
// floating-point.
type YIQ struct {
	Y    int
	I, Q float64
	A    float64
}

// ReductionContext holds the perceptual-metric configuration consulted by
// every color operation in a single conversion: balance parameters, derived
// weights, the enhanceColors flag, gamma, and the 512-entry luma table.
// It is passed by reference (never global state).
type ReductionContext struct {
	LightnessVsColor int // [1,39], default 20
	RedVsGreen       int // [1,39], default 20
	EnhanceColors    bool
	Gamma            float64

	YWeight, IWeight, QWeight float64
	LumaTable                 [512]float64
}

const (
	DefaultBalance = 20
	DefaultGamma   = 1.27
)

// NewReductionContext builds a ReductionContext from balance settings,
// deriving yWeight/iWeight/qWeight and the gamma-shaped luma table.
//
// Weight derivation: lightnessVsColor trades luma weight against combined
// chroma weight (higher = more luma-sensitive, less chroma-sensitive);
// redVsGreen then splits the chroma budget between I and Q. There is no
// documented closed-form in the original tool for this split, so this module picks the
// simplest monotonic split satisfying it: I gets redVsGreen/40 of the
// chroma budget and Q the remainder.
func NewReductionContext(lightnessVsColor, redVsGreen int, enhanceColors bool, gamma float64) *ReductionContext {
	if lightnessVsColor < 1 {
		lightnessVsColor = 1
	} else if lightnessVsColor > 39 {
		lightnessVsColor = 39
	}
	if redVsGreen < 1 {
		redVsGreen = 1
	} else if redVsGreen > 39 {
		redVsGreen = 39
	}
	if gamma <= 0 {
		gamma = DefaultGamma
	}

	ctx := &ReductionContext{
		LightnessVsColor: lightnessVsColor,
		RedVsGreen:       redVsGreen,
		EnhanceColors:    enhanceColors,
		Gamma:            gamma,
	}

	yw := float64(lightnessVsColor) / DefaultBalance
	chromaBudget := float64(2*DefaultBalance-lightnessVsColor) / DefaultBalance
	iw := chromaBudget * float64(redVsGreen) / (2 * DefaultBalance)
	qw := chromaBudget * float64(2*DefaultBalance-redVsGreen) / (2 * DefaultBalance)
	if enhanceColors {
		iw *= 1.5
		qw *= 1.5
	}
	ctx.YWeight = yw
	ctx.IWeight = iw
	ctx.QWeight = qw

	for y := 0; y < 512; y++ {
		norm := float64(y) / 511.0
		ctx.LumaTable[y] = math.Pow(norm, gamma) * 511.0
	}

	return ctx
}

// RGBToYIQ converts an RGBA color into the extended YIQ tuple used for
// distance comparisons, quantizing Y to a luma-table index in [0,511].
func RGBToYIQ(c RGBA) YIQ {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	y := 0.299*r + 0.587*g + 0.114*b
	i := 0.596*r - 0.275*g - 0.321*b
	q := 0.212*r - 0.523*g + 0.311*b

	yIdx := int(math.Round(y / 255.0 * 511.0))
	if yIdx < 0 {
		yIdx = 0
	} else if yIdx > 511 {
		yIdx = 511
	}
	return YIQ{Y: yIdx, I: i, Q: q, A: float64(c.A)}
}

// YIQToRGB converts a YIQ tuple back to RGBA, clamping each channel to
// [0,255]. Alpha is recovered directly from the stored A field.
func YIQToRGB(c YIQ) RGBA {
	y := float64(c.Y) / 511.0 * 255.0
	r := y + 0.956*c.I + 0.621*c.Q
	g := y - 0.272*c.I - 0.647*c.Q
	b := y - 1.105*c.I + 1.702*c.Q
	return RGBA{
		R: clamp255(r),
		G: clamp255(g),
		B: clamp255(b),
		A: clamp255(c.A),
	}
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// alphaCoefficient is the fixed weight on the alpha term in D, large enough
// that alpha mismatch dominates all chroma/luma error.
const alphaCoefficient = 1600.0

// Distance computes the perceptual distance D(a,b): a weighted sum of
// squared luma, I, Q, and alpha deltas. D is symmetric and D(a,a) == 0
// by construction.
func Distance(ctx *ReductionContext, a, b YIQ) float64 {
	dl := ctx.LumaTable[a.Y] - ctx.LumaTable[b.Y]
	di := a.I - b.I
	dq := a.Q - b.Q
	da := a.A - b.A

	yw2 := ctx.YWeight * ctx.YWeight
	iw2 := ctx.IWeight * ctx.IWeight
	qw2 := ctx.QWeight * ctx.QWeight

	return yw2*dl*dl + iw2*di*di + qw2*dq*dq + alphaCoefficient*da*da
}

// ClosestIndex returns the index into palette minimizing Distance(target, *),
// or -1 if palette is empty. If reserveIndex0 is true, index 0 is treated as
// the reserved fully-transparent slot and is only matched when target.A is
// itself fully transparent (A == 0); this implements the "transparent pixels
// must match transparent entries before color is considered" rule implied
// by the alpha coefficient.
func ClosestIndex(ctx *ReductionContext, target YIQ, palette []YIQ, reserveIndex0 bool) int {
	best := -1
	bestD := math.MaxFloat64
	for i, c := range palette {
		if reserveIndex0 && i == 0 {
			continue
		}
		d := Distance(ctx, target, c)
		if d < bestD {
			bestD = d
			best = i
		}
	}
	if reserveIndex0 && target.A == 0 {
		return 0
	}
	return best
}
