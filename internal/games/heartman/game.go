// Package heartman implements the collect-and-avoid maze game: gather every
// collectible in a generated level while wall-following meanies patrol it.
package heartman

import (
	"strings"

	"github.com/vovakirdan/tilearcade/internal/agent"
	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/config"
	"github.com/vovakirdan/tilearcade/internal/console"
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/hw"
	"github.com/vovakirdan/tilearcade/internal/level"
	"github.com/vovakirdan/tilearcade/internal/lfsr"
	"github.com/vovakirdan/tilearcade/internal/registry"
)

// Nametable layout and tile sheet indices.
const (
	Origin     uint16 = 0x2000
	TitleAddr         = Origin + 0x06
	DeathAddr         = Origin + 15
	CountWidth        = 3

	EmptyTile byte = 0x00
	WallTile  byte = 0x60
	CoinTile  byte = 0x6A
	HeartTile byte = 0x63
	AtTile    byte = 0x5F
)

// Palette writes done at power-on.
var (
	bgPalette     = []byte{0x0E, 0x30, 0x12, 0x26}
	spritePalette = []byte{0x15}
)

const (
	bgPaletteAddr     uint16 = 0x3F00
	spritePaletteAddr uint16 = 0x3F13
)

const (
	title     = "HEART-MAN"
	deathText = " IS DEAD"
)

func init() {
	registry.Register("heartman", func(cfg config.GameConfig) registry.Game {
		return New("heartman", "Heart-Man", cfg)
	})
	registry.Register("heartman_plus", func(cfg config.GameConfig) registry.Game {
		return New("heartman_plus", "Heart-Man Plus", cfg)
	})
}

// Game exclusively owns everything the simulation touches.
type Game struct {
	id    string
	title string

	grid      *level.Grid
	collector agent.Collector
	rng       *lfsr.Sequence

	playerPolicy agent.PlayerPolicy
	meaniePolicy agent.MeaniePolicy
	player       agent.Player
	meanies      []agent.Meanie

	// pending is the index of a collectible taken this frame, -1 if none.
	pending   int
	announced bool
	frame     uint64
}

// New builds the level from the fixed seed and places the agents.
func New(id, title string, cfg config.GameConfig) *Game {
	geom := geometry(cfg.Level)
	grid := level.Build(geom, lfsr.InitialSeed)

	// The runtime sequence continues where level generation stopped.
	rng := lfsr.New(lfsr.InitialSeed)
	for i := 0; i < geom.Len(); i++ {
		rng.Cycle()
	}

	g := &Game{
		id:           id,
		title:        title,
		grid:         grid,
		rng:          rng,
		playerPolicy: playerPolicy(cfg.Player),
		meaniePolicy: meaniePolicy(cfg.Meanies),
		player:       agent.Player{Pos: playerStart(cfg.Player)},
		meanies:      spawnMeanies(cfg.Meanies.Spawns),
		pending:      -1,
	}
	if strings.EqualFold(cfg.Collection, "side-set") {
		g.collector = agent.NewSideSetCollector(grid)
	} else {
		g.collector = agent.NewMutableCollector(grid)
	}
	return g
}

func (g *Game) ID() string    { return g.id }
func (g *Game) Title() string { return g.title }

// Level returns the level as the player currently sees it.
func (g *Game) Level() *level.Grid {
	view := g.grid.Clone()
	for i := 0; i < view.Len(); i++ {
		view.Set(i, g.collector.Tile(i))
	}
	return view
}

// Init writes palettes, the whole level and the title directly.
func (g *Game) Init(d hw.Display) {
	hw.WriteBytes(d, bgPaletteAddr, bgPalette...)
	hw.WriteBytes(d, spritePaletteAddr, spritePalette...)

	d.SetCursor(Origin)
	for i := 0; i < g.grid.Len(); i++ {
		d.WriteTile(tileByte(g.collector.Tile(i)))
	}

	hw.WriteText(d, TitleAddr, title)
}

func tileByte(t level.Tile) byte {
	switch t {
	case level.Wall:
		return WallTile
	case level.Collectible:
		return CoinTile
	default:
		return EmptyTile
	}
}

// Frame steps the player, pickups and meanies, then stages the draw.
func (g *Game) Frame(fc *console.FrameContext) error {
	if err := g.step(fc); err != nil {
		return err
	}
	g.frame++
	return g.draw(fc)
}

func (g *Game) step(fc *console.FrameContext) error {
	g.playerPolicy.Update(g.grid, &g.player, fc.Buttons, fc.Audio)

	if !g.player.Dead {
		i := g.grid.Index(agent.Centre(g.player.Pos))
		if g.collector.Collect(i) {
			g.pending = i
			fc.Audio.Play(audio.LevelUp)
		}
	}

	touch := uint8(g.playerPolicy.Width)
	for k := range g.meanies {
		g.meaniePolicy.Update(g.grid, &g.meanies[k], g.rng)
		if !g.player.Dead && agent.Touches(g.player.Pos, g.meanies[k].Pos, touch) {
			g.player.Dead = true
		}
	}

	if g.player.Dead && !g.announced {
		g.announced = true
		fc.Audio.Play(audio.Topout)
		if err := fc.Queue.PushText(DeathAddr, deathText); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) draw(fc *console.FrameContext) error {
	if err := fc.Queue.PushDigits(Origin, uint(g.collector.Remaining()), CountWidth); err != nil {
		return err
	}

	if g.pending >= 0 {
		if err := fc.Queue.PushTile(g.grid.Address(Origin, g.pending), HeartTile); err != nil {
			return err
		}
		g.pending = -1
	}

	tile := HeartTile
	if g.player.Dead {
		tile = hw.TextTile('x')
	}
	if err := fc.Sprites.AddAt(g.player.Pos, tile, 0); err != nil {
		return err
	}
	for _, m := range g.meanies {
		if err := fc.Sprites.AddAt(m.Pos, AtTile, 0); err != nil {
			return err
		}
	}
	return nil
}

// State reports collected count, remaining count and death.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.collector.Collected(),
		Remaining: g.collector.Remaining(),
		GameOver:  g.player.Dead,
	}
}
