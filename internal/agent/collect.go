package agent

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tilearcade/internal/level"
)

// Collector tracks which collectibles have been taken. Collecting the same
// index twice has no further effect.
type Collector interface {
	// Collect takes the collectible at index i and reports whether this call
	// took it.
	Collect(i int) bool
	// Tile returns tile i as the player currently sees it.
	Tile(i int) level.Tile
	Remaining() int
	Collected() int
}

// MutableCollector flips taken tiles to Empty in the grid itself.
type MutableCollector struct {
	grid      *level.Grid
	remaining int
	collected int
}

// NewMutableCollector counts the grid's collectibles.
func NewMutableCollector(g *level.Grid) *MutableCollector {
	return &MutableCollector{grid: g, remaining: g.Count(level.Collectible)}
}

func (c *MutableCollector) Collect(i int) bool {
	if c.grid.At(i) != level.Collectible {
		return false
	}
	c.grid.Set(i, level.Empty)
	c.remaining--
	c.collected++
	return true
}

func (c *MutableCollector) Tile(i int) level.Tile { return c.grid.At(i) }
func (c *MutableCollector) Remaining() int        { return c.remaining }
func (c *MutableCollector) Collected() int        { return c.collected }

// SideSetCollector leaves the grid untouched and records taken indices,
// each with the order it was taken in.
type SideSetCollector struct {
	grid  *level.Grid
	taken *intmap.Map[int, int]
	total int
}

// NewSideSetCollector counts the grid's collectibles.
func NewSideSetCollector(g *level.Grid) *SideSetCollector {
	total := g.Count(level.Collectible)
	return &SideSetCollector{grid: g, taken: intmap.New[int, int](total), total: total}
}

func (c *SideSetCollector) Collect(i int) bool {
	if c.grid.At(i) != level.Collectible {
		return false
	}
	if _, ok := c.taken.Get(i); ok {
		return false
	}
	c.taken.Put(i, c.taken.Len())
	return true
}

func (c *SideSetCollector) Tile(i int) level.Tile {
	t := c.grid.At(i)
	if t != level.Collectible {
		return t
	}
	if _, ok := c.taken.Get(i); ok {
		return level.Empty
	}
	return t
}

// Order returns when index i was taken: 0 for the first pickup.
func (c *SideSetCollector) Order(i int) (int, bool) {
	return c.taken.Get(i)
}

func (c *SideSetCollector) Remaining() int { return c.total - c.taken.Len() }
func (c *SideSetCollector) Collected() int { return c.taken.Len() }
