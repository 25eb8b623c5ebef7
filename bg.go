package nitrogfx

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/nitrogfx/nitroconv/internal/bgpipeline"
	"github.com/nitrogfx/nitroconv/internal/colorspace"
	"github.com/nitrogfx/nitroconv/internal/container"
)

// BGOutput holds a finished BG conversion, ready to serialize via
// WriteSeparate (the original tool's NCLR/NCGR/NSCR three-file
// convention) or WriteCombined (a single block container).
type BGOutput struct {
	bgpipeline.Result
}

// ConvertBG runs the BG pipeline over an RGBA image and
// returns a serializable BGOutput. progress may be nil.
func ConvertBG(params bgpipeline.Params, px []colorspace.RGBA, progress *Progress) (BGOutput, error) {
	tiles := (params.Width / 8) * (params.Height / 8)
	if params.Compress && tiles > maxTileCount {
		return BGOutput{}, &ConvertError{Kind: KindInputTooLarge, Cause: fmt.Errorf("%d tiles exceeds the %d-tile limit for tile compression", tiles, maxTileCount)}
	}

	progress.setPhase1(0, int64(tiles))
	result, err := bgpipeline.Generate(params, px)
	if err != nil {
		return BGOutput{}, &ConvertError{Kind: KindInvalidConfig, Cause: err}
	}
	progress.setPhase1(int64(tiles), int64(tiles))
	progress.setPhase2(int64(result.NumCharacters), int64(tiles))

	return BGOutput{Result: result}, nil
}

// WriteSeparate writes the palette, character bank, and screen as three
// independent GRF files, matching the original tool's NCLR/NCGR/NSCR
// convention.
func (o BGOutput) WriteSeparate(palette, character, screen io.Writer) error {
	pw := container.NewWriter(container.FileIDGRF)
	pw.WriteBlock(container.TagPalette, packPalette(o.Palette))
	if err := pw.Finalize(palette); err != nil {
		return err
	}

	if character != nil {
		cw := container.NewWriter(container.FileIDGRF)
		cw.WriteBlock(container.TagCharacter, o.CharacterBank)
		if err := cw.Finalize(character); err != nil {
			return err
		}
	}

	sw := container.NewWriter(container.FileIDGRF)
	sw.WriteBlock(container.TagScreen, o.Screen)
	return sw.Finalize(screen)
}

// WriteCombined writes palette, character bank, and screen as blocks of
// a single GRF file.
func (o BGOutput) WriteCombined(dst io.Writer) error {
	w := container.NewWriter(container.FileIDGRF)
	w.WriteBlock(container.TagPalette, packPalette(o.Palette))
	if o.CharacterBank != nil {
		w.WriteBlock(container.TagCharacter, o.CharacterBank)
	}
	w.WriteBlock(container.TagScreen, o.Screen)
	return w.Finalize(dst)
}

// packPalette serializes hardware colors as 2-byte little-endian entries.
func packPalette(pal []colorspace.HWColor) []byte {
	out := make([]byte, len(pal)*2)
	for i, c := range pal {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(c))
	}
	return out
}
