// Package collision answers which axes of a proposed move would enter a tile
// category, sampling the corners of an entity's bounding box.
package collision

import (
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/level"
)

// Sign is the direction in which an axis is blocked.
type Sign uint8

const (
	None Sign = iota
	Plus
	Minus
)

func (s Sign) String() string {
	switch s {
	case Plus:
		return "+"
	case Minus:
		return "-"
	default:
		return "none"
	}
}

// SignOf maps a delta component to its Sign.
func SignOf(v int8) Sign {
	switch {
	case v > 0:
		return Plus
	case v < 0:
		return Minus
	default:
		return None
	}
}

// Result reports the blocking sign per axis.
type Result struct {
	X, Y Sign
}

// Blocked returns true if either axis is blocked.
func (r Result) Blocked() bool {
	return r.X != None || r.Y != None
}

// Free returns true if neither axis is blocked.
func (r Result) Free() bool {
	return !r.Blocked()
}

// Apply zeroes the blocked axes of delta.
func (r Result) Apply(d core.Displacement) core.Displacement {
	if r.X != None {
		d.X = 0
	}
	if r.Y != None {
		d.Y = 0
	}
	return d
}

// Grid is the read surface the probe needs.
type Grid interface {
	Lookup(p core.Position) level.Tile
}

// CheckBox probes the four corners of the box at pos (offsets 0 and width on
// each axis). Each corner is tested once shifted by the x part of delta and
// once by the y part; an axis whose shifted corner lands on target is blocked
// with the sign of its delta. A zero delta component never blocks.
func CheckBox(grid Grid, target level.Tile, width int8, pos core.Position, delta core.Displacement) Result {
	var r Result
	dx, dy := delta.XOnly(), delta.YOnly()
	for _, off := range [4]core.Displacement{
		{X: 0, Y: 0},
		{X: 0, Y: width},
		{X: width, Y: 0},
		{X: width, Y: width},
	} {
		corner := pos.Shifted(off)
		if grid.Lookup(corner.Shifted(dx)) == target {
			r.X = SignOf(delta.X)
		}
		if grid.Lookup(corner.Shifted(dy)) == target {
			r.Y = SignOf(delta.Y)
		}
	}
	return r
}
