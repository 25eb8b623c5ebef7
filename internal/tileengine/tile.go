// Package tileengine implements background character (tile) deduplication:
// tile difference under the four flip orientations, zero-cost and weighted
// merge passes over a bounded priority buffer, post-merge averaging, and
// character numbering.
//
// Tile mastering is a shallow disjoint-set forest without path compression:
// every tile's MasterTile field always points directly at a true root, so
// merging a tile's children is a flat rewrite with no recursive find.
package tileengine

import "github.com/nitrogfx/nitroconv/internal/colorspace"

// Flip orientations, matching the screen entry's flip bits
// (bit 0 = X, bit 1 = Y).
const (
	FlipNone = 0
	FlipX    = 1
	FlipY    = 2
	FlipXY   = FlipX | FlipY
)

// TileSize is the tile side length in pixels (8x8 = 64 pixels).
const TileSize = 8

// Tile is one 8x8 unit of a background image.
type Tile struct {
	Pixels  [64]colorspace.RGBA
	YIQ     [64]colorspace.YIQ
	Indices [64]int

	MasterTile  int // index of this tile's master (itself, if a master)
	NRepresents int // only meaningful on a master: how many tiles it represents
	FlipMode    int // orientation relative to its master
	Palette     int // assigned palette index
	CharNo      int // output character number, filled in after numbering
}

// NewTilesFromIndexed builds the initial tile array from an indexed image:
// width/height in tiles, pixel data, and per-pixel palette indices, each
// tile starting out as its own master.
func NewTilesFromIndexed(tilesX, tilesY int, px []colorspace.RGBA, indices []int, imgWidth int) []Tile {
	tiles := make([]Tile, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			t := &tiles[ty*tilesX+tx]
			for row := 0; row < TileSize; row++ {
				for col := 0; col < TileSize; col++ {
					srcX := tx*TileSize + col
					srcY := ty*TileSize + row
					srcIdx := srcY*imgWidth + srcX
					dstIdx := row*TileSize + col
					t.Pixels[dstIdx] = px[srcIdx]
					t.YIQ[dstIdx] = colorspace.RGBToYIQ(px[srcIdx])
					t.Indices[dstIdx] = indices[srcIdx]
				}
			}
			idx := ty*tilesX + tx
			t.MasterTile = idx
			t.NRepresents = 1
			t.FlipMode = FlipNone
		}
	}
	return tiles
}

// IsMaster reports whether tiles[i] is its own master.
func IsMaster(tiles []Tile, i int) bool {
	return tiles[i].MasterTile == i
}

// permute maps a pixel index [0,63] through a flip orientation. Row/column
// are the high/low 3 bits of the index; FlipX reverses the column bits,
// FlipY reverses the row bits.
func permute(idx, flip int) int {
	out := idx
	if flip&FlipX != 0 {
		out ^= 0b000111
	}
	if flip&FlipY != 0 {
		out ^= 0b111000
	}
	return out
}
