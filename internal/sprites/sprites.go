// Package sprites stages the per-frame sprite attribute table.
package sprites

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tilearcade/internal/core"
)

// Capacity is the display's maximum simultaneous sprite count.
const Capacity = 64

// HiddenY places a sprite below the visible area.
const HiddenY = 0xFF

// Display margins between playfield coordinates and sprite coordinates.
// They equal the level's tile offset of two columns and one row, so a sprite
// covers the tiles its collision box probes.
const (
	MarginX = 16
	MarginY = 8
)

// Attribute bits.
const (
	Priority byte = 0b0010_0000 // behind background
	FlipH    byte = 0b0100_0000
	FlipV    byte = 0b1000_0000
)

// ErrFull is returned when more than Capacity sprites are added in a frame.
var ErrFull = errors.New("sprite table full")

// Record is one sprite in hardware byte order.
type Record struct {
	Y, Tile, Attr, X byte
}

// Table is rebuilt every frame: Clear, then Add for each visible entity.
type Table struct {
	records [Capacity]Record
	n       int
}

// NewTable returns a cleared table.
func NewTable() *Table {
	t := &Table{}
	t.Clear()
	return t
}

// Clear rewinds the cursor and hides every slot.
func (t *Table) Clear() {
	for i := range t.records {
		t.records[i] = Record{Y: HiddenY}
	}
	t.n = 0
}

// Add appends one record in screen coordinates.
func (t *Table) Add(x, y, tile, attr byte) error {
	if t.n >= Capacity {
		return fmt.Errorf("sprites: add tile %#02x at (%d,%d): %w", tile, x, y, ErrFull)
	}
	t.records[t.n] = Record{Y: y, Tile: tile, Attr: attr, X: x}
	t.n++
	return nil
}

// AddAt appends a sprite for an entity at a playfield position. The sprite
// unit draws one line below the programmed Y, hence the -1.
func (t *Table) AddAt(p core.Position, tile, attr byte) error {
	return t.Add(p.X+MarginX, p.Y+MarginY-1, tile, attr)
}

// Len returns the number of active sprites.
func (t *Table) Len() int { return t.n }

// Record returns slot i.
func (t *Table) Record(i int) Record {
	return t.records[i]
}

// OAM fills dst with the 256-byte hardware image.
func (t *Table) OAM(dst *[256]byte) {
	for i, r := range t.records {
		dst[i*4] = r.Y
		dst[i*4+1] = r.Tile
		dst[i*4+2] = r.Attr
		dst[i*4+3] = r.X
	}
}
