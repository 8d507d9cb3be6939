// Package level builds and queries the fixed tile grid every game plays on.
package level

import (
	"strings"

	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/lfsr"
)

// Tile is the category of one grid cell.
type Tile uint8

const (
	Empty Tile = iota
	Wall
	Collectible
)

func (t Tile) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case Collectible:
		return "Collectible"
	default:
		return "Unknown"
	}
}

// Glyph returns the single character used in ASCII dumps.
func (t Tile) Glyph() byte {
	switch t {
	case Wall:
		return '#'
	case Collectible:
		return 'o'
	default:
		return '.'
	}
}

// TileSize is the edge of one tile in pixels.
const TileSize = 8

// Geometry fixes the grid shape and the playfield origin correction.
type Geometry struct {
	RowWidth int // tiles per row, the display's horizontal tile count
	Rows     int
	OffsetX  int // tile column of pixel x=0
	OffsetY  int // tile row of pixel y=0
}

// DefaultGeometry is the 32x28 arena shifted two columns right and one row down.
var DefaultGeometry = Geometry{RowWidth: 0x20, Rows: 28, OffsetX: 2, OffsetY: 1}

// Len returns the number of tiles.
func (g Geometry) Len() int {
	return g.RowWidth * g.Rows
}

// TileFor classifies one random byte.
func TileFor(b byte) Tile {
	switch {
	case b%4 == 0:
		return Wall
	case b%41 == 1:
		return Collectible
	default:
		return Empty
	}
}

// Grid is a fixed-size tile array. It is allocated once and never resized.
type Grid struct {
	geom  Geometry
	tiles []Tile
}

// Generate derives one tile per seed, then walls off the perimeter.
// Seeds beyond the grid length are ignored; missing seeds leave tiles Empty.
func Generate(geom Geometry, seeds []lfsr.State) *Grid {
	g := &Grid{geom: geom, tiles: make([]Tile, geom.Len())}
	for i := range g.tiles {
		if i < len(seeds) {
			g.tiles[i] = TileFor(lfsr.Emit(seeds[i]))
		}
	}
	g.wallPerimeter()
	return g
}

// Build generates the layout for seed with the precomputed-table ordering:
// tile i reads the state i+1 advances after seed, so tile 0 reads
// Advance(seed). The runtime ordering, which starts from an already advanced
// seed and cycles again before each read, would put tile 0 at
// Advance(Advance(seed)); pass Advance(seed) to Build to get that layout.
func Build(geom Geometry, seed lfsr.State) *Grid {
	return Generate(geom, lfsr.Seeds(lfsr.Advance(seed), geom.Len()))
}

func (g *Grid) wallPerimeter() {
	w, rows := g.geom.RowWidth, g.geom.Rows
	if w == 0 || rows == 0 {
		return
	}
	for x := 0; x < w; x++ {
		g.tiles[x] = Wall
		g.tiles[(rows-1)*w+x] = Wall
	}
	for y := 0; y < rows; y++ {
		g.tiles[y*w] = Wall
		g.tiles[y*w+w-1] = Wall
	}
}

// Geometry returns the grid's shape.
func (g *Grid) Geometry() Geometry {
	return g.geom
}

// Len returns the number of tiles.
func (g *Grid) Len() int {
	return len(g.tiles)
}

// Index maps a pixel position to a tile index.
func (g *Grid) Index(p core.Position) int {
	col := int(p.X)/TileSize + g.geom.OffsetX
	row := int(p.Y)/TileSize + g.geom.OffsetY
	return col + row*g.geom.RowWidth
}

// Lookup is the single read path used by collision and pickup logic.
func (g *Grid) Lookup(p core.Position) Tile {
	return g.At(g.Index(p))
}

// At returns the tile at index i. Indices outside the grid read as Wall so a
// probe can never see a way out of the arena.
func (g *Grid) At(i int) Tile {
	if i < 0 || i >= len(g.tiles) {
		return Wall
	}
	return g.tiles[i]
}

// Set overwrites tile i; out-of-range indices are ignored.
func (g *Grid) Set(i int, t Tile) {
	if i < 0 || i >= len(g.tiles) {
		return
	}
	g.tiles[i] = t
}

// Count returns how many tiles equal t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, v := range g.tiles {
		if v == t {
			n++
		}
	}
	return n
}

// Indices returns the indices holding t, in ascending order.
func (g *Grid) Indices(t Tile) []int {
	var out []int
	for i, v := range g.tiles {
		if v == t {
			out = append(out, i)
		}
	}
	return out
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{geom: g.geom, tiles: make([]Tile, len(g.tiles))}
	copy(c.tiles, g.tiles)
	return c
}

// Address returns the nametable address of tile i relative to a base.
func (g *Grid) Address(base uint16, i int) uint16 {
	return base + uint16(i)
}

// Row returns one row as glyphs.
func (g *Grid) Row(y int) string {
	w := g.geom.RowWidth
	if y < 0 || y >= g.geom.Rows {
		return ""
	}
	buf := make([]byte, w)
	for x := 0; x < w; x++ {
		buf[x] = g.tiles[y*w+x].Glyph()
	}
	return string(buf)
}

// String dumps the grid, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.geom.Rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(g.Row(y))
	}
	return sb.String()
}

// FromRows builds a grid from glyph rows ('#' wall, 'o' collectible, anything
// else empty). All rows must share the length of the first. No perimeter is
// added; tests use it to lay out exact geometry.
func FromRows(offsetX, offsetY int, rows ...string) *Grid {
	w := 0
	if len(rows) > 0 {
		w = len(rows[0])
	}
	g := &Grid{
		geom:  Geometry{RowWidth: w, Rows: len(rows), OffsetX: offsetX, OffsetY: offsetY},
		tiles: make([]Tile, w*len(rows)),
	}
	for y, r := range rows {
		for x := 0; x < w && x < len(r); x++ {
			switch r[x] {
			case '#':
				g.tiles[y*w+x] = Wall
			case 'o':
				g.tiles[y*w+x] = Collectible
			}
		}
	}
	return g
}
