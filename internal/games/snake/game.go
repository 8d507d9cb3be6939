package snake

import (
	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/config"
	"github.com/vovakirdan/tilearcade/internal/console"
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/hw"
	"github.com/vovakirdan/tilearcade/internal/level"
	"github.com/vovakirdan/tilearcade/internal/lfsr"
	"github.com/vovakirdan/tilearcade/internal/registry"
	"github.com/vovakirdan/tilearcade/internal/sprites"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	default:
		return "right"
	}
}

// Point is a tile coordinate on the nametable: column and row.
type Point struct {
	X, Y int
}

func (p Point) step(d Direction) Point {
	switch d {
	case DirUp:
		return Point{X: p.X, Y: p.Y - 1}
	case DirDown:
		return Point{X: p.X, Y: p.Y + 1}
	case DirLeft:
		return Point{X: p.X - 1, Y: p.Y}
	default:
		return Point{X: p.X + 1, Y: p.Y}
	}
}

// MaxSegments is the longest snake: one sprite slot is kept for the food.
const MaxSegments = sprites.Capacity - 1

// Nametable layout.
const (
	Origin       uint16 = 0x2000
	ScoreAddr           = Origin + 0x02
	TitleAddr           = Origin + 0x06
	GameOverAddr        = Origin + 0x10
	ScoreWidth          = 3
)

const (
	WallTile  byte = 0x60
	EmptyTile byte = 0x00
	foodAttr  byte = 1
)

const (
	bgPaletteAddr  uint16 = 0x3F00
	sp0PaletteAddr uint16 = 0x3F11
	sp1PaletteAddr uint16 = 0x3F15
)

const (
	title        = "SNAKE"
	gameOverText = " GAME OVER"
)

var (
	segmentTile = hw.TextTile('o')
	foodTile    = hw.TextTile('*')
)

// defaultLevel is generated once from the precomputed seed table; games on
// the default geometry clone it instead of regenerating.
var defaultLevel = level.Generate(level.DefaultGeometry,
	lfsr.Seeds(lfsr.Advance(lfsr.InitialSeed), level.DefaultGeometry.Len()))

func init() {
	registry.Register("snake", func(cfg config.GameConfig) registry.Game {
		return New(cfg)
	})
}

// Game implements a snake that crawls the generated tile level.
type Game struct {
	grid *level.Grid
	rng  *lfsr.Sequence

	// Segments live in a fixed array, head at index 0.
	segments [MaxSegments]Point
	n        int
	limit    int

	direction Direction
	nextDir   Direction // Buffered direction for next move
	food      Point

	moveEvery  int
	moveTicker int // Counts frames until next move
	frame      uint64
	score      int
	alive      bool
	announced  bool
}

// New creates a snake game from its configuration.
func New(cfg config.GameConfig) *Game {
	geom := level.DefaultGeometry
	if cfg.Level.RowWidth > 0 && cfg.Level.Rows > 0 {
		geom = level.Geometry{RowWidth: cfg.Level.RowWidth, Rows: cfg.Level.Rows,
			OffsetX: cfg.Level.OffsetX, OffsetY: cfg.Level.OffsetY}
	}

	var grid *level.Grid
	if geom == level.DefaultGeometry {
		grid = defaultLevel.Clone()
	} else {
		grid = level.Build(geom, lfsr.InitialSeed)
	}

	g := &Game{
		grid:      grid,
		rng:       lfsr.New(lfsr.InitialSeed),
		limit:     MaxSegments,
		moveEvery: cfg.Snake.MoveEvery,
		alive:     true,
	}
	if cfg.Snake.MaxSegments > 0 && cfg.Snake.MaxSegments < MaxSegments {
		g.limit = cfg.Snake.MaxSegments
	}
	if g.moveEvery <= 0 {
		g.moveEvery = 1
	}

	g.initSnake(Point{X: cfg.Snake.StartX, Y: cfg.Snake.StartY})
	g.spawnFood()
	return g
}

func (g *Game) ID() string    { return "snake" }
func (g *Game) Title() string { return "Snake" }

// Level returns the static level.
func (g *Game) Level() *level.Grid {
	return g.grid.Clone()
}

// tile returns the tile at p; anything outside the grid is a wall.
func (g *Game) tile(p Point) level.Tile {
	geom := g.grid.Geometry()
	if p.X < 0 || p.X >= geom.RowWidth || p.Y < 0 || p.Y >= geom.Rows {
		return level.Wall
	}
	return g.grid.At(p.X + p.Y*geom.RowWidth)
}

// open reports whether the snake may occupy p.
func (g *Game) open(p Point) bool {
	return g.tile(p) != level.Wall
}

// initSnake places a one-segment snake heading right, scanning forward from
// start until the head and the tile ahead are both open.
func (g *Game) initSnake(start Point) {
	geom := g.grid.Geometry()
	n := geom.Len()
	i0 := start.X + start.Y*geom.RowWidth
	if i0 < 0 || i0 >= n {
		i0 = 0
	}
	head := start
	for k := 0; k < n; k++ {
		i := (i0 + k) % n
		p := Point{X: i % geom.RowWidth, Y: i / geom.RowWidth}
		if g.open(p) && g.open(p.step(DirRight)) {
			head = p
			break
		}
	}
	g.segments[0] = head
	g.n = 1
	g.direction = DirRight
	g.nextDir = DirRight
}

// spawnFood draws a tile index from the LFSR and scans forward to the first
// empty tile the snake does not cover.
func (g *Game) spawnFood() {
	geom := g.grid.Geometry()
	n := geom.Len()
	hi := g.rng.Next()
	lo := g.rng.Next()
	i0 := (int(hi)<<8 | int(lo)) % n
	for k := 0; k < n; k++ {
		i := (i0 + k) % n
		p := Point{X: i % geom.RowWidth, Y: i / geom.RowWidth}
		if g.tile(p) == level.Empty && !g.isSnakeAt(p) {
			g.food = p
			return
		}
	}
	g.food = Point{X: -1, Y: -1}
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.segments[:g.n] {
		if seg == p {
			return true
		}
	}
	return false
}

// Init writes palettes, the level and the title directly.
func (g *Game) Init(d hw.Display) {
	hw.WriteBytes(d, bgPaletteAddr, 0x0E, 0x29, 0x12, 0x19)
	hw.WriteBytes(d, sp0PaletteAddr, 0x00, 0x00, 0x15)
	hw.WriteBytes(d, sp1PaletteAddr, 0x00, 0x00, 0x21)

	d.SetCursor(Origin)
	for i := 0; i < g.grid.Len(); i++ {
		if g.grid.At(i) == level.Wall {
			d.WriteTile(WallTile)
		} else {
			d.WriteTile(EmptyTile)
		}
	}
	hw.WriteText(d, TitleAddr, title)
}

// Frame advances the snake and stages the score and sprites.
func (g *Game) Frame(fc *console.FrameContext) error {
	g.frame++
	if g.alive {
		g.processInput(fc.Buttons)

		// Move snake on frame interval
		g.moveTicker++
		if g.moveTicker >= g.moveEvery {
			g.moveTicker = 0
			g.moveSnake(fc.Audio)
		}
	}

	if !g.alive && !g.announced {
		g.announced = true
		fc.Audio.Play(audio.Topout)
		if err := fc.Queue.PushText(GameOverAddr, gameOverText); err != nil {
			return err
		}
	}
	return g.draw(fc)
}

// processInput handles direction changes.
func (g *Game) processInput(b core.Buttons) {
	newDir := g.nextDir

	switch {
	case b.Has(core.ButtonUp):
		newDir = DirUp
	case b.Has(core.ButtonDown):
		newDir = DirDown
	case b.Has(core.ButtonLeft):
		newDir = DirLeft
	case b.Has(core.ButtonRight):
		newDir = DirRight
	}

	// Prevent instant reversal
	if !isOpposite(newDir, g.direction) {
		g.nextDir = newDir
	}
}

// isOpposite checks if two directions are opposite.
func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// moveSnake moves the snake one tile in the current direction.
func (g *Game) moveSnake(cues hw.AudioSink) {
	// Apply buffered direction
	g.direction = g.nextDir
	newHead := g.segments[0].step(g.direction)

	for i := g.n - 1; i > 0; i-- {
		g.segments[i] = g.segments[i-1]
	}
	g.segments[0] = newHead

	if !g.open(newHead) {
		g.alive = false
		return
	}
	for _, seg := range g.segments[1:g.n] {
		if seg == newHead {
			g.alive = false
			return
		}
	}

	if newHead == g.food {
		g.score++
		if g.n < g.limit {
			g.segments[g.n] = g.segments[g.n-1]
			g.n++
		}
		g.spawnFood()
		cues.Play(audio.LevelUp)
	}
}

// spriteXY converts a tile coordinate to sprite screen coordinates.
func spriteXY(p Point) (x, y byte) {
	return byte(p.X * level.TileSize), byte(p.Y*level.TileSize - 1)
}

func (g *Game) draw(fc *console.FrameContext) error {
	if err := fc.Queue.PushDigits(ScoreAddr, uint(g.score), ScoreWidth); err != nil {
		return err
	}

	for _, seg := range g.segments[:g.n] {
		x, y := spriteXY(seg)
		if err := fc.Sprites.Add(x, y, segmentTile, 0); err != nil {
			return err
		}
	}
	if g.food.X >= 0 {
		x, y := spriteXY(g.food)
		if err := fc.Sprites.Add(x, y, foodTile, foodAttr); err != nil {
			return err
		}
	}
	return nil
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: !g.alive,
	}
}
