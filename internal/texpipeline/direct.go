package texpipeline

import "github.com/nitrogfx/nitroconv/internal/colorspace"

// encodeDirect packs every pixel as a 15-bit BGR hardware color plus an
// opaque bit, little-endian, 2 bytes/pixel.
func encodeDirect(px []colorspace.RGBA) []byte {
	out := make([]byte, len(px)*2)
	for i, c := range px {
		hw := colorspace.ToHWColor(c, c.A >= alphaOpaqueThreshold)
		out[i*2+0] = byte(hw)
		out[i*2+1] = byte(hw >> 8)
	}
	return out
}

// alphaOpaqueThreshold is the alpha level at and above which a direct-format
// pixel is considered opaque rather than punched out.
const alphaOpaqueThreshold = 128
