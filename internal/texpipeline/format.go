// Package texpipeline implements the texture conversion pipeline: format
// dispatch over direct color, paletted, alpha-indexed, and
// 4x4-block-compressed textures, producing a texel buffer, optional
// index/palette buffers, and the packed 32-bit texture parameter word a
// container writer serializes verbatim.
package texpipeline

// Format identifies a texture's on-hardware pixel encoding. Values match
// the hardware's 3-bit format tag order: direct, 4-color, 16-color,
// 256-color, 4x4-block, A3I5, A5I3.
type Format uint8

const (
	FormatDirect   Format = 0
	Format4Color   Format = 1
	Format16Color  Format = 2
	Format256Color Format = 3
	Format4x4Block Format = 4
	FormatA3I5     Format = 5
	FormatA5I3     Format = 6
)

// colorsPerFormat returns the palette size a paletted or alpha-indexed
// format quantizes against, or 0 for formats with no palette.
func (f Format) colorsPerFormat() int {
	switch f {
	case Format4Color:
		return 4
	case Format16Color:
		return 16
	case Format256Color:
		return 256
	case FormatA3I5:
		return 32 // 5 index bits
	case FormatA5I3:
		return 8 // 3 index bits
	default:
		return 0
	}
}

// bitsPerPixel returns the packed index width for a paletted format.
func (f Format) bitsPerPixel() int {
	switch f {
	case Format4Color:
		return 2
	case Format16Color:
		return 4
	case Format256Color:
		return 8
	default:
		return 0
	}
}

// alphaBits returns the alpha field width for an A3I5/A5I3 format.
func (f Format) alphaBits() int {
	switch f {
	case FormatA3I5:
		return 3
	case FormatA5I3:
		return 5
	default:
		return 0
	}
}

func (f Format) indexBits() int {
	switch f {
	case FormatA3I5:
		return 5
	case FormatA5I3:
		return 3
	default:
		return 0
	}
}

func (f Format) isPaletted() bool {
	switch f {
	case Format4Color, Format16Color, Format256Color:
		return true
	default:
		return false
	}
}

func (f Format) isAlphaIndexed() bool {
	return f == FormatA3I5 || f == FormatA5I3
}
