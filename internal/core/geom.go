// Package core provides fundamental types and utilities for the console engine.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Position is a point in display space. Both coordinates are 8-bit and
// additions wrap, exactly like the target's registers.
type Position struct {
	X, Y uint8
}

// Pos creates a new position.
func Pos(x, y uint8) Position {
	return Position{X: x, Y: y}
}

// Displacement is a signed 8-bit delta applied to a Position.
type Displacement struct {
	X, Y int8
}

// D creates a new displacement.
func D(x, y int8) Displacement {
	return Displacement{X: x, Y: y}
}

// Orientation is the rotation sense of an autonomous agent.
type Orientation uint8

const (
	Clockwise Orientation = iota
	Widdershins
)

// Reverse returns the opposite rotation sense.
func (o Orientation) Reverse() Orientation {
	if o == Clockwise {
		return Widdershins
	}
	return Clockwise
}

func (o Orientation) String() string {
	if o == Clockwise {
		return "clockwise"
	}
	return "widdershins"
}

// IncU8 adds a signed delta to an unsigned coordinate with 8-bit wraparound.
func IncU8(x uint8, dx int8) uint8 {
	return uint8(int8(x) + dx)
}

// Shifted returns the position moved by delta, wrapping on overflow.
func (p Position) Shifted(d Displacement) Position {
	return Position{X: IncU8(p.X, d.X), Y: IncU8(p.Y, d.Y)}
}

// Delta returns p - other as a signed displacement (wrapping).
func (p Position) Delta(other Position) Displacement {
	return Displacement{
		X: int8(p.X) - int8(other.X),
		Y: int8(p.Y) - int8(other.Y),
	}
}

// L1 returns the Manhattan distance to another position, computed with the
// same wrapping signed differences the target uses.
func (p Position) L1(other Position) uint8 {
	return p.Delta(other).L1()
}

// IsZero reports whether both components are zero.
func (d Displacement) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// XOnly keeps the horizontal component.
func (d Displacement) XOnly() Displacement {
	return Displacement{X: d.X}
}

// YOnly keeps the vertical component.
func (d Displacement) YOnly() Displacement {
	return Displacement{Y: d.Y}
}

// Scaled multiplies both components (wrapping).
func (d Displacement) Scaled(k int8) Displacement {
	return Displacement{X: d.X * k, Y: d.Y * k}
}

// Rotate turns the vector by 90 degrees.
// Clockwise: (x,y) -> (-y,x). Widdershins: (x,y) -> (y,-x).
func (d Displacement) Rotate(o Orientation) Displacement {
	if o == Clockwise {
		return Displacement{X: -d.Y, Y: d.X}
	}
	return Displacement{X: d.Y, Y: -d.X}
}

// L1 returns |x| + |y| truncated to 8 bits. The sum wraps on purpose, as on
// the target: two positions 128 pixels apart on both axes measure 0, so
// Touches reports contact there. Callers needing a true distance must keep
// positions closer than that.
func (d Displacement) L1() uint8 {
	return absU8(d.X) + absU8(d.Y)
}

func absU8(v int8) uint8 {
	if v < 0 {
		return uint8(-v)
	}
	return uint8(v)
}
