package bgpipeline

import "github.com/nitrogfx/nitroconv/internal/tileengine"

// panelSize is the hardware's addressing granularity: a 32x32-tile panel.
const panelSize = 32

// panelTileOrder returns the emission order of tile indices (row-major
// original order) for a tilesX x tilesY screen: panels in row-major
// order, tiles within each panel also row-major.
func panelTileOrder(tilesX, tilesY int) []int {
	panelsX := ceilDiv(tilesX, panelSize)
	panelsY := ceilDiv(tilesY, panelSize)

	order := make([]int, 0, tilesX*tilesY)
	for py := 0; py < panelsY; py++ {
		y0, y1 := py*panelSize, min(tilesY, (py+1)*panelSize)
		for px := 0; px < panelsX; px++ {
			x0, x1 := px*panelSize, min(tilesX, (px+1)*panelSize)
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					order = append(order, y*tilesX+x)
				}
			}
		}
	}
	return order
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// emitScreen packs one screen entry per tile, in panel-swizzled order,
// using the screen's halfword (16-color/affine-ext) or byte (affine)
// entry encoding.
func emitScreen(tiles []tileengine.Tile, tilesX, tilesY, charBase int, format ScreenFormat) []byte {
	order := panelTileOrder(tilesX, tilesY)

	if format == ScreenByte {
		out := make([]byte, len(order))
		for i, ti := range order {
			out[i] = byte((tiles[ti].CharNo + charBase) & 0xff)
		}
		return out
	}

	out := make([]byte, len(order)*2)
	for i, ti := range order {
		t := tiles[ti]
		entry := uint16((t.CharNo+charBase)&0x3ff) | uint16(t.FlipMode&0x3)<<10 | uint16(t.Palette&0xf)<<12
		out[i*2+0] = byte(entry)
		out[i*2+1] = byte(entry >> 8)
	}
	return out
}
