package heartman

import (
	"github.com/vovakirdan/tilearcade/internal/agent"
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/lfsr"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Frame     uint64
	Player    core.Position
	Dead      bool
	Collected int
	Remaining int
	Meanies   []agent.Meanie
	RNG       lfsr.State
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	meanies := make([]agent.Meanie, len(g.meanies))
	copy(meanies, g.meanies)
	return Snapshot{
		Frame:     g.frame,
		Player:    g.player.Pos,
		Dead:      g.player.Dead,
		Collected: g.collector.Collected(),
		Remaining: g.collector.Remaining(),
		Meanies:   meanies,
		RNG:       g.rng.State(),
	}
}
