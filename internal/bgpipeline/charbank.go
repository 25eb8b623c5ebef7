package bgpipeline

import "github.com/nitrogfx/nitroconv/internal/tileengine"

// packCharacterBank serializes every master tile's 64 indices in
// character-number order (per order, as returned by
// tileengine.NumberCharacters), row-major within each tile, packed at
// the given bit depth.
func packCharacterBank(order []int, tiles []tileengine.Tile, depth int) []byte {
	if depth == 4 {
		out := make([]byte, 0, len(order)*32)
		for _, m := range order {
			idx := tiles[m].Indices
			for p := 0; p < 64; p += 2 {
				out = append(out, byte(idx[p]&0xf)|byte(idx[p+1]&0xf)<<4)
			}
		}
		return out
	}

	out := make([]byte, 0, len(order)*64)
	for _, m := range order {
		idx := tiles[m].Indices
		for p := 0; p < 64; p++ {
			out = append(out, byte(idx[p]))
		}
	}
	return out
}
