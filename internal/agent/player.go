// Package agent holds the per-frame movement policies: the input-driven
// player and the wall-following meanies.
package agent

import (
	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/collision"
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/hw"
	"github.com/vovakirdan/tilearcade/internal/level"
)

// Player is the controllable entity. Dead is terminal.
type Player struct {
	Pos  core.Position
	Dead bool
}

// PlayerPolicy is the tunable part of player movement.
type PlayerPolicy struct {
	Width       int8  // collision box edge minus one
	Speed       int8  // pixels per held direction per frame
	FieldWidth  uint8 // pixel width of the playfield
	FieldHeight uint8
}

// DefaultPlayerPolicy matches the heart-man arena.
var DefaultPlayerPolicy = PlayerPolicy{Width: 6, Speed: 1, FieldWidth: 224, FieldHeight: 208}

// Delta derives the candidate move from held buttons. Right overrides Left
// and Down overrides Up; a direction is dropped at the playfield edge.
func (pp PlayerPolicy) Delta(b core.Buttons, pos core.Position) core.Displacement {
	var d core.Displacement
	if b.Has(core.ButtonLeft) && pos.X > 0 {
		d.X = -pp.Speed
	}
	if b.Has(core.ButtonRight) && int(pos.X)+level.TileSize < int(pp.FieldWidth) {
		d.X = pp.Speed
	}
	if b.Has(core.ButtonUp) && pos.Y > 0 {
		d.Y = -pp.Speed
	}
	if b.Has(core.ButtonDown) && int(pos.Y)+level.TileSize < int(pp.FieldHeight) {
		d.Y = pp.Speed
	}
	return d
}

// Update moves the player one frame. Blocked axes are zeroed and announce a
// Lock cue unless some cue is already sounding. Dead players do not move.
func (pp PlayerPolicy) Update(grid collision.Grid, p *Player, b core.Buttons, cues hw.AudioSink) collision.Result {
	if p.Dead {
		return collision.Result{}
	}
	d := pp.Delta(b, p.Pos)
	r := collision.CheckBox(grid, level.Wall, pp.Width, p.Pos, d)
	if r.Blocked() && !cues.IsPlaying() {
		cues.Play(audio.Lock)
	}
	p.Pos = p.Pos.Shifted(r.Apply(d))
	return r
}

// Centre returns the pickup probe point of an 8x8 entity.
func Centre(p core.Position) core.Position {
	return p.Shifted(core.D(4, 4))
}

// Touches reports whether two entities are closer than width in L1 distance.
func Touches(a, b core.Position, width uint8) bool {
	return a.L1(b) < width
}
