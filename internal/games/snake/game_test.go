package snake

import (
	"testing"

	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/config"
	"github.com/vovakirdan/tilearcade/internal/console"
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/hw"
	"github.com/vovakirdan/tilearcade/internal/level"
	"github.com/vovakirdan/tilearcade/internal/renderq"
	"github.com/vovakirdan/tilearcade/internal/sprites"
)

func newGame() *Game {
	return New(config.Default().Game("snake"))
}

type frameRunner struct {
	queue   *renderq.Queue
	sprites *sprites.Table
	audio   *hw.RecordingAudio
	display *hw.RecordingDisplay
	frame   uint64
}

func newRunner(g *Game) *frameRunner {
	r := &frameRunner{
		queue:   renderq.New(renderq.DefaultCapacity),
		sprites: sprites.NewTable(),
		audio:   &hw.RecordingAudio{},
		display: &hw.RecordingDisplay{},
	}
	g.Init(r.display)
	return r
}

func (r *frameRunner) run(t *testing.T, g *Game, b core.Buttons, frames int) {
	t.Helper()
	for i := 0; i < frames; i++ {
		r.queue.Clear()
		r.sprites.Clear()
		r.audio.Tick()
		fc := console.FrameContext{Frame: r.frame, Buttons: b, Queue: r.queue, Sprites: r.sprites, Audio: r.audio}
		if err := g.Frame(&fc); err != nil {
			t.Fatalf("Frame(%d) error = %v", r.frame, err)
		}
		r.queue.Publish()
		r.queue.Drain(r.display)
		r.frame++
	}
}

func TestDeterminism(t *testing.T) {
	// Two games from the same config should produce identical snapshots
	g1, g2 := newGame(), newGame()
	r1, r2 := newRunner(g1), newRunner(g2)

	for i := 0; i < 200; i++ {
		var b core.Buttons
		if i == 20 {
			b = core.ButtonDown
		}
		if i == 40 {
			b = core.ButtonRight
		}
		r1.run(t, g1, b, 1)
		r2.run(t, g2, b, 1)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("Snapshot mismatch:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestStartsOnOpenTiles(t *testing.T) {
	g := newGame()
	snap := g.Snapshot()

	if snap.HeadX != 2 || snap.HeadY != 11 {
		t.Errorf("head = (%d,%d), expected (2,11)", snap.HeadX, snap.HeadY)
	}
	if snap.SnakeLen != 1 || snap.Dir != DirRight {
		t.Errorf("snake = len %d dir %s, expected len 1 heading right", snap.SnakeLen, snap.Dir)
	}
	food := Point{X: snap.FoodX, Y: snap.FoodY}
	if g.tile(food) != level.Empty {
		t.Errorf("food at %v on %s tile", food, g.tile(food))
	}
}

func TestStartSearchSkipsWalls(t *testing.T) {
	cfg := config.Default().Game("snake")
	cfg.Snake.StartX, cfg.Snake.StartY = 0, 0 // top-left is wall
	g := New(cfg)

	head := g.segments[0]
	if !g.open(head) || !g.open(head.step(DirRight)) {
		t.Errorf("start %v is not clear", head)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newGame()
	r := newRunner(g)

	// Try to go left (opposite) - should be ignored
	r.run(t, g, core.ButtonLeft, 1)
	if g.nextDir != DirRight {
		t.Errorf("nextDir = %s after pressing left, expected right", g.nextDir)
	}

	r.run(t, g, core.ButtonUp, 1)
	if g.nextDir != DirUp {
		t.Errorf("nextDir = %s after pressing up, expected up", g.nextDir)
	}
}

func TestWallDeath(t *testing.T) {
	g := newGame()
	r := newRunner(g)

	// Row 11 is open from column 1 to 9; the wall at column 10 is the
	// eighth move, every 8 frames.
	r.run(t, g, 0, 63)
	if g.State().GameOver {
		t.Fatalf("dead after 63 frames at head %v", g.segments[0])
	}

	r.run(t, g, 0, 1)
	if !g.State().GameOver {
		t.Fatalf("alive after 64 frames at head %v", g.segments[0])
	}
	if r.audio.Count(audio.Topout) != 1 {
		t.Errorf("Topout played %d times, expected 1", r.audio.Count(audio.Topout))
	}
	if got := r.display.Memory()[GameOverAddr+1]; got != hw.TextTile('G') {
		t.Errorf("game over text starts with %#02x", got)
	}

	snap := g.Snapshot()
	r.run(t, g, core.ButtonUp, 40)
	if g.Snapshot().HeadX != snap.HeadX || g.Snapshot().HeadY != snap.HeadY {
		t.Error("dead snake kept moving")
	}
	if r.audio.Count(audio.Topout) != 1 {
		t.Errorf("Topout replayed: %d", r.audio.Count(audio.Topout))
	}
}

func TestEatGrows(t *testing.T) {
	g := newGame()
	r := newRunner(g)
	g.food = Point{X: 3, Y: 11}

	r.run(t, g, 0, g.moveEvery)

	st := g.State()
	if st.Score != 1 {
		t.Errorf("Score = %d, expected 1", st.Score)
	}
	if g.n != 2 {
		t.Errorf("length = %d, expected 2", g.n)
	}
	if r.audio.Count(audio.LevelUp) != 1 {
		t.Errorf("LevelUp played %d times, expected 1", r.audio.Count(audio.LevelUp))
	}
	if g.food == (Point{X: 3, Y: 11}) || g.isSnakeAt(g.food) {
		t.Errorf("food respawned at %v", g.food)
	}

	mem := r.display.Memory()
	if mem[ScoreAddr+2] != hw.TextTile('1') {
		t.Errorf("score digit = %#02x, expected 1", mem[ScoreAddr+2])
	}
}

func TestGrowthCapped(t *testing.T) {
	cfg := config.Default().Game("snake")
	cfg.Snake.MaxSegments = 2
	g := New(cfg)
	r := newRunner(g)

	for i := 0; i < 3; i++ {
		g.food = g.segments[0].step(DirRight)
		r.run(t, g, 0, g.moveEvery)
	}

	if g.score != 3 {
		t.Errorf("score = %d, expected 3", g.score)
	}
	if g.n != 2 {
		t.Errorf("length = %d, expected cap 2", g.n)
	}
}

func TestSelfCollision(t *testing.T) {
	g := newGame()
	r := newRunner(g)

	body := []Point{{3, 11}, {4, 11}, {4, 12}, {3, 12}, {2, 12}, {1, 12}}
	copy(g.segments[:], body)
	g.n = len(body)
	g.direction, g.nextDir = DirLeft, DirLeft
	g.moveTicker = g.moveEvery - 1

	r.run(t, g, core.ButtonDown, 1)

	if !g.State().GameOver {
		t.Errorf("head %v ran into its body without dying", g.segments[0])
	}
}

func TestSpriteBudget(t *testing.T) {
	g := newGame()
	for i := range g.segments {
		g.segments[i] = Point{X: 2, Y: 11}
	}
	g.n = MaxSegments

	tbl := sprites.NewTable()
	fc := console.FrameContext{Queue: renderq.New(renderq.DefaultCapacity), Sprites: tbl, Audio: hw.NullAudio{}}
	if err := g.draw(&fc); err != nil {
		t.Fatalf("draw() with a full snake error = %v", err)
	}
	if tbl.Len() != sprites.Capacity {
		t.Errorf("sprites = %d, expected %d", tbl.Len(), sprites.Capacity)
	}
	last := tbl.Record(sprites.Capacity - 1)
	if last.Tile != foodTile || last.Attr != foodAttr {
		t.Errorf("last sprite = %+v, expected food", last)
	}
}

func TestInitWrites(t *testing.T) {
	g := newGame()
	d := &hw.RecordingDisplay{}
	g.Init(d)
	mem := d.Memory()

	if mem[0x3F00] != 0x0E || mem[0x3F01] != 0x29 || mem[0x3F13] != 0x15 || mem[0x3F17] != 0x21 {
		t.Errorf("palettes not written: %#02x %#02x %#02x %#02x",
			mem[0x3F00], mem[0x3F01], mem[0x3F13], mem[0x3F17])
	}
	if mem[Origin+0x20] != WallTile {
		t.Errorf("left border = %#02x, expected wall", mem[Origin+0x20])
	}
	if mem[TitleAddr] != hw.TextTile('S') {
		t.Errorf("title = %#02x, expected S", mem[TitleAddr])
	}
}

func TestDefaultLevelShared(t *testing.T) {
	g1, g2 := newGame(), newGame()
	if g1.grid == g2.grid || g1.grid == defaultLevel {
		t.Error("games must own a copy of the precomputed level")
	}
	if g1.grid.String() != defaultLevel.String() {
		t.Error("default-geometry game does not match the precomputed level")
	}
}
