// Package blockcompress implements 4x4 block texture compression: per-block
// endpoint/mode selection, a shared endpoint palette across all blocks, and
// an optional palette compression pass that merges endpoint runs when doing
// so costs little reconstruction error.
//
// The per-block endpoint-selection shape (fetch a 4x4 block, find reference
// colors, build a 2-bit index table) is grounded on a BC1/BC3-style DXT
// encoder; see the endpoint mixing and index assignment below.
package blockcompress

import "github.com/nitrogfx/nitroconv/internal/colorspace"

// Mode is one of the four block reconstruction rules, encoded in the top
// two bits of the 16-bit block index entry.
type Mode int

const (
	ModeTransparentFull   Mode = 0b00
	ModeTransparentInterp Mode = 0b01
	ModeOpaqueFull        Mode = 0b10
	ModeOpaqueInterp      Mode = 0b11
)

// EndpointCount returns how many explicit endpoint colors a mode stores in
// the shared palette (the remaining index values are derived by
// interpolation or are the fixed transparent slot).
func (m Mode) EndpointCount() int {
	switch m {
	case ModeOpaqueFull:
		return 4
	case ModeTransparentFull:
		return 3
	default:
		return 2
	}
}

// alphaMidpoint mirrors quantize's dithering threshold: pixels at or above
// this alpha are treated as opaque when selecting endpoint colors.
const alphaMidpoint = 128

// fetchBlock extracts the 4x4 pixel block at (x,y), padding with
// fully-transparent black past the image edges.
func fetchBlock(px []colorspace.RGBA, x, y, width, height int) [16]colorspace.RGBA {
	var block [16]colorspace.RGBA
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sx, sy := x+col, y+row
			if sx < width && sy < height {
				block[row*4+col] = px[sy*width+sx]
			}
		}
	}
	return block
}

// reconColor is one of the four reconstructed index values a block can
// produce: a hardware color plus whether that index renders opaque.
type reconColor struct {
	HW     colorspace.HWColor
	Opaque bool
}

// reconstructPalette expands a mode and its stored endpoints into the four
// per-index reconstruction colors.
func reconstructPalette(mode Mode, endpoints []colorspace.HWColor) [4]reconColor {
	var recon [4]reconColor
	switch mode {
	case ModeOpaqueFull:
		for i := 0; i < 4; i++ {
			recon[i] = reconColor{endpoints[i], true}
		}
	case ModeOpaqueInterp:
		a, b := endpoints[0], endpoints[1]
		recon[0] = reconColor{a, true}
		recon[1] = reconColor{b, true}
		recon[2] = reconColor{colorspace.MixHW(a, b, 3, 8, true), true}
		recon[3] = reconColor{colorspace.MixHW(a, b, 5, 8, true), true}
	case ModeTransparentFull:
		recon[0] = reconColor{endpoints[0], true}
		recon[1] = reconColor{endpoints[1], true}
		recon[2] = reconColor{endpoints[2], true}
		recon[3] = reconColor{0, false}
	case ModeTransparentInterp:
		a, b := endpoints[0], endpoints[1]
		recon[0] = reconColor{a, true}
		recon[1] = reconColor{b, true}
		recon[2] = reconColor{colorspace.MixHW(a, b, 1, 2, true), true}
		recon[3] = reconColor{0, false}
	}
	return recon
}

// reconRGBA converts a reconColor to the RGBA it reconstructs to, used when
// scoring candidate endpoints against original pixels.
func reconRGBA(c reconColor) colorspace.RGBA {
	if !c.Opaque {
		return colorspace.RGBA{}
	}
	rgba, _ := c.HW.FromHWColor()
	return rgba
}
