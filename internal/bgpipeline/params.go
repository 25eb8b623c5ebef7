package bgpipeline

import "github.com/nitrogfx/nitroconv/internal/colorspace"

// PaletteRegion describes which slice of hardware palette memory a
// conversion is allowed to write into.
type PaletteRegion struct {
	Base   int // first palette index
	Count  int // how many palettes
	Offset int // first usable color slot within each palette
	Length int // colors actually usable per palette (<= ColorsPerPalette-Offset)
}

// AlphaKey, if Enabled, forces any pixel whose RGB matches Color to fully
// transparent before quantization, independent of its own alpha channel.
type AlphaKey struct {
	Enabled bool
	Color   colorspace.RGBA
}

// Params configures one BG conversion.
type Params struct {
	Profile Profile
	Width   int
	Height  int

	Region         PaletteRegion
	Color0Reserved bool
	KeyColor       colorspace.RGBA // replaces palette index 0 after quantization when Color0Reserved
	AlphaKey       AlphaKey

	CharBase int  // base offset added to emitted character numbers
	Dither   bool // enable Floyd-Steinberg dithering per tile
	Compress bool // enable tile deduplication (tileengine)

	DiffuseAmount    float64
	LightnessVsColor int
	RedVsGreen       int
	EnhanceColors    bool
	Gamma            float64
}

func (p Params) tilesX() int { return p.Width / 8 }
func (p Params) tilesY() int { return p.Height / 8 }
func (p Params) numTiles() int { return p.tilesX() * p.tilesY() }

// Validate checks Params against the profile's hardware limits.
func Validate(p Params) error {
	if p.Profile.Depth != 4 && p.Profile.Depth != 8 {
		return ErrBadDepth
	}
	if p.Width%8 != 0 || p.Height%8 != 0 {
		return ErrDimensionsNotTiled
	}
	cpp := p.Profile.ColorsPerPalette()
	if p.Region.Base < 0 || p.Region.Count < 1 || p.Region.Base+p.Region.Count > p.Profile.MaxPalettes {
		return ErrPaletteRegion
	}
	if p.Region.Offset < 0 || p.Region.Length < 1 || p.Region.Offset+p.Region.Length > cpp {
		return ErrPaletteRegion
	}
	if p.Profile.MaxChars > 0 && !p.Compress && p.numTiles() > p.Profile.MaxChars {
		return ErrTooManyTiles
	}
	return nil
}
