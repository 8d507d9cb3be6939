package snake

import "github.com/vovakirdan/tilearcade/internal/lfsr"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Frame     uint64
	Score     int
	SnakeLen  int
	HeadX     int
	HeadY     int
	Dir       Direction
	FoodX     int
	FoodY     int
	MoveEvery int
	Alive     bool
	RNG       lfsr.State
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	head := g.segments[0]
	return Snapshot{
		Frame:     g.frame,
		Score:     g.score,
		SnakeLen:  g.n,
		HeadX:     head.X,
		HeadY:     head.Y,
		Dir:       g.direction,
		FoodX:     g.food.X,
		FoodY:     g.food.Y,
		MoveEvery: g.moveEvery,
		Alive:     g.alive,
		RNG:       g.rng.State(),
	}
}
