// Package quantize implements perceptually weighted color quantization:
// median-cut palette construction, weighted k-means refinement,
// multi-palette assignment over tiles, and Floyd-Steinberg error diffusion.
package quantize

import "github.com/nitrogfx/nitroconv/internal/colorspace"

// kHashMul is the multiplicative hash constant of the color-cache hash
// that Histogram's dedup is modeled on. Histogram itself does not use it:
// it keys a Go map on the packed RGBA value.
const kHashMul = 0x1e35a7bd

// entry is one distinct color accumulated from the input pixels: its RGBA
// and YIQA values plus the number of pixels it represents.
type entry struct {
	rgb    colorspace.RGBA
	yiq    colorspace.YIQ
	weight float64
}

// Histogram deduplicates pixel colors into weighted entries using a Go map
// keyed on the packed RGBA value, the same dedup role a VP8L color cache
// plays, sized for the input instead of a fixed cache-bits power.
type Histogram struct {
	ctx     *colorspace.ReductionContext
	entries []entry
	index   map[uint32]int // packed RGBA -> index into entries
}

// NewHistogram creates an empty histogram for the given reduction context.
func NewHistogram(ctx *colorspace.ReductionContext) *Histogram {
	return &Histogram{ctx: ctx, index: make(map[uint32]int)}
}

func packRGBA(c colorspace.RGBA) uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// Add accumulates one pixel into the histogram with the given weight
// (usually 1). Pixels with A==0 are all folded into a single fully
// transparent entry, since their color channels are never displayed.
func (h *Histogram) Add(c colorspace.RGBA, weight float64) {
	if c.A == 0 {
		c = colorspace.RGBA{}
	}
	key := packRGBA(c)
	if idx, ok := h.index[key]; ok {
		h.entries[idx].weight += weight
		return
	}
	idx := len(h.entries)
	h.entries = append(h.entries, entry{rgb: c, yiq: colorspace.RGBToYIQ(c), weight: weight})
	h.index[key] = idx
}

// AddPixels accumulates every pixel in px, each with weight 1.
func (h *Histogram) AddPixels(px []colorspace.RGBA) {
	for _, c := range px {
		h.Add(c, 1)
	}
}

// Len returns the number of distinct colors recorded.
func (h *Histogram) Len() int { return len(h.entries) }

// DistinctOpaqueCount returns the number of distinct colors with A != 0,
// used to decide whether median-cut splitting is needed at all.
func (h *Histogram) DistinctOpaqueCount() int {
	n := 0
	for _, e := range h.entries {
		if e.rgb.A != 0 {
			n++
		}
	}
	return n
}
