package texpipeline

import (
	"github.com/nitrogfx/nitroconv/internal/blockcompress"
	"github.com/nitrogfx/nitroconv/internal/colorspace"
)

// Params configures one texture conversion.
type Params struct {
	Format Format
	Width  int
	Height int

	Color0Transparent bool // paletted formats only: reserve index 0 as transparent
	Dither            bool
	DiffuseAmount     float64
	DitherAlpha       bool // A3I5/A5I3 only: error-diffuse the alpha field
	BlockThreshold    int  // Format4x4Block only: endpoint-palette merge threshold [0,100]

	LightnessVsColor int
	RedVsGreen       int
	EnhanceColors    bool
	Gamma            float64
}

// Result holds everything a texture conversion produces, ready for a
// container writer to serialize.
type Result struct {
	ParamWord uint32
	Texels    []byte
	Indices   []byte // Format4x4Block only: one 16-bit block-index entry per block
	Palette   []colorspace.HWColor
}

// Generate runs the texture pipeline over px, an RGBA
// image of params.Width x params.Height pixels, dispatching on
// params.Format.
func Generate(params Params, px []colorspace.RGBA) (Result, error) {
	if params.Width < minTexDim || params.Width > maxTexDim || params.Height < minTexDim || params.Height > maxTexDim {
		return Result{}, ErrBadDimensions
	}
	if len(px) != params.Width*params.Height {
		return Result{}, ErrPixelCountMismatch
	}

	widthCode, _ := sizeCode(params.Width)
	heightCode, _ := sizeCode(params.Height)

	switch params.Format {
	case FormatDirect:
		return Result{
			ParamWord: paramWord(widthCode, heightCode, params.Format, false),
			Texels:    encodeDirect(px),
		}, nil

	case Format4Color, Format16Color, Format256Color:
		ctx := colorspace.NewReductionContext(params.LightnessVsColor, params.RedVsGreen, params.EnhanceColors, params.Gamma)
		r := encodePaletted(ctx, px, params.Format, params.Color0Transparent, params.Dither, params.DiffuseAmount, params.Width, params.Height)
		return Result{
			ParamWord: paramWord(widthCode, heightCode, params.Format, params.Color0Transparent),
			Texels:    r.texels,
			Palette:   r.palette,
		}, nil

	case FormatA3I5, FormatA5I3:
		ctx := colorspace.NewReductionContext(params.LightnessVsColor, params.RedVsGreen, params.EnhanceColors, params.Gamma)
		r := encodeAlphaIndexed(ctx, px, params.Format, params.DitherAlpha, params.Width, params.Height)
		return Result{
			ParamWord: paramWord(widthCode, heightCode, params.Format, false),
			Texels:    r.texels,
			Palette:   r.palette,
		}, nil

	case Format4x4Block:
		if params.Width%4 != 0 || params.Height%4 != 0 {
			return Result{}, ErrDimensionsNotMultipleOf4
		}
		ctx := colorspace.NewReductionContext(params.LightnessVsColor, params.RedVsGreen, params.EnhanceColors, params.Gamma)
		bc, err := blockcompress.Compress(ctx, px, params.Width, params.Height, params.BlockThreshold)
		if err != nil {
			return Result{}, err
		}
		return Result{
			ParamWord: paramWord(widthCode, heightCode, params.Format, false),
			Texels:    bc.Texels,
			Indices:   bc.Indices,
			Palette:   bc.Palette,
		}, nil

	default:
		return Result{}, ErrUnknownFormat
	}
}
