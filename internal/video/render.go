package video

import (
	"github.com/vovakirdan/tilearcade/internal/core"
)

// Glyphs for the non-font part of the tile sheet.
var glyphs = map[byte]rune{
	0x5F: '@',
	0x60: '█',
	0x63: '♥',
	0x6A: '•',
}

// Palette slot each glyph takes its color from; font tiles use slot 1.
var shades = map[byte]int{
	0x60: 2,
	0x63: 3,
	0x6A: 3,
}

// Glyph returns the character drawn for a tile. Font tiles map back to
// printable ASCII; unknown tiles draw as '?'.
func Glyph(tile byte) rune {
	if r, ok := glyphs[tile]; ok {
		return r
	}
	if tile < 0x5F {
		return rune(tile) + 32
	}
	return '?'
}

func shade(tile byte) int {
	if s, ok := shades[tile]; ok {
		return s
	}
	return 1
}

// Render rasterizes f into dst, one cell per tile: background first, then
// sprites in reverse table order so slot 0 ends up on top. Cells outside
// dst are clipped.
func (f *Frame) Render(dst *core.Screen) {
	dst.Clear()
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			tile := f.Nametable[row*Columns+col]
			if tile == 0 {
				continue
			}
			dst.Set(col, row, Glyph(tile), core.PaletteColor(f.Palettes[shade(tile)]))
		}
	}

	for i := 63; i >= 0; i-- {
		y, tile, attr, x := f.OAM[i*4], f.OAM[i*4+1], f.OAM[i*4+2], f.OAM[i*4+3]
		if y >= 0xEF {
			continue
		}
		col := int(x) / 8
		row := (int(y) + 1) / 8
		c := core.PaletteColor(f.Palettes[0x10+4*int(attr&0x03)+3])
		dst.Set(col, row, Glyph(tile), c)
	}
}

// Render snapshots the display and rasterizes it.
func (p *PPU) Render(dst *core.Screen) {
	f := p.Snapshot()
	f.Render(dst)
}
