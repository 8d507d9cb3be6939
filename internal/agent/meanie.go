package agent

import (
	"github.com/vovakirdan/tilearcade/internal/collision"
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/level"
	"github.com/vovakirdan/tilearcade/internal/lfsr"
)

// Meanie is an autonomous wall-follower.
type Meanie struct {
	Pos         core.Position
	Vel         core.Displacement
	Orientation core.Orientation
	Turns       int
}

// OnThreshold selects what happens once a meanie has turned too often.
type OnThreshold uint8

const (
	// Reverse flips the rotation sense.
	Reverse OnThreshold = iota
	// Random draws a new sense from the LFSR.
	Random
)

func (o OnThreshold) String() string {
	if o == Random {
		return "random"
	}
	return "reverse"
}

// MeaniePolicy is the tunable part of meanie steering.
type MeaniePolicy struct {
	Width         int8
	Speed         int8
	Retries       int
	TurnThreshold int // turns tolerated before the sense changes
	OnThreshold   OnThreshold
}

// DefaultMeaniePolicy matches the first heart-man release.
var DefaultMeaniePolicy = MeaniePolicy{Width: 6, Speed: 1, Retries: 3, TurnThreshold: 50, OnThreshold: Reverse}

// Step describes one frame of a meanie's movement.
type Step struct {
	Delta     core.Displacement // what was applied to Pos
	Turns     int               // rotations this frame
	Exhausted bool              // every retry was blocked
	Resensed  bool              // the turn counter crossed the threshold
}

// offTop reports whether d would carry p above row zero.
func offTop(p core.Position, d core.Displacement) bool {
	return d.Y < 0 && int(p.Y)+int(d.Y) < 0
}

// Update steers m for one frame. Each retry scales the velocity into a
// candidate; a free candidate is taken, a blocked one rotates the velocity
// and counts a turn. When retries run out the last candidate is applied with
// its blocked axes zeroed, which is no move at all in a closed pocket.
func (mp MeaniePolicy) Update(grid collision.Grid, m *Meanie, rng *lfsr.Sequence) Step {
	var st Step
	retries := mp.Retries
	if retries < 1 {
		retries = 1
	}

	var (
		cand    core.Displacement
		blocked collision.Result
	)
	moved := false
	for i := 0; i < retries; i++ {
		cand = m.Vel.Scaled(mp.Speed)
		if offTop(m.Pos, cand) {
			blocked = collision.Result{X: collision.None, Y: collision.Minus}
		} else {
			blocked = collision.CheckBox(grid, level.Wall, mp.Width, m.Pos, cand)
			if blocked.Free() {
				moved = true
				break
			}
		}
		m.Vel = m.Vel.Rotate(m.Orientation)
		m.Turns++
		st.Turns++
	}

	if moved {
		st.Delta = cand
	} else {
		st.Exhausted = true
		st.Delta = blocked.Apply(cand)
	}
	m.Pos = m.Pos.Shifted(st.Delta)

	if m.Turns > mp.TurnThreshold {
		st.Resensed = true
		switch mp.OnThreshold {
		case Random:
			if rng != nil && rng.Next()&1 == 1 {
				m.Orientation = core.Widdershins
			} else {
				m.Orientation = core.Clockwise
			}
		default:
			m.Orientation = m.Orientation.Reverse()
		}
		m.Turns = 0
	}
	return st
}
