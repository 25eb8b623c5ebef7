package nitrogfx

import (
	"encoding/binary"
	"io"

	"github.com/nitrogfx/nitroconv/internal/colorspace"
	"github.com/nitrogfx/nitroconv/internal/container"
	"github.com/nitrogfx/nitroconv/internal/texpipeline"
)

// TextureOutput holds a finished texture conversion, ready to serialize
// via Write.
type TextureOutput struct {
	texpipeline.Result
}

// ConvertTexture runs the texture pipeline over an RGBA
// image and returns a serializable TextureOutput. progress may be nil.
func ConvertTexture(params texpipeline.Params, px []colorspace.RGBA, progress *Progress) (TextureOutput, error) {
	blocks := (params.Width / 4) * (params.Height / 4)
	progress.setPhase1(0, int64(blocks))
	result, err := texpipeline.Generate(params, px)
	if err != nil {
		return TextureOutput{}, &ConvertError{Kind: KindInvalidConfig, Cause: err}
	}
	progress.setPhase1(int64(blocks), int64(blocks))

	return TextureOutput{Result: result}, nil
}

// Write serializes a texture conversion as a single GRF file: a
// parameter-word header chunk followed by texel, index (4x4-block
// format only), and palette chunks.
func (o TextureOutput) Write(dst io.Writer) error {
	w := container.NewWriter(container.FileIDTex)

	param := make([]byte, 4)
	binary.LittleEndian.PutUint32(param, o.ParamWord)
	w.WriteBlock(container.TagTexParam, param)

	w.WriteBlock(container.TagTexel, o.Texels)
	if o.Indices != nil {
		w.WriteBlock(container.TagTexIndex, o.Indices)
	}
	if len(o.Palette) > 0 {
		w.WriteBlock(container.TagPalette, packPalette(o.Palette))
	}
	return w.Finalize(dst)
}
