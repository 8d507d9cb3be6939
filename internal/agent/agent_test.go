package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/collision"
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/hw"
	"github.com/vovakirdan/tilearcade/internal/level"
	"github.com/vovakirdan/tilearcade/internal/lfsr"
)

func TestPlayerDelta(t *testing.T) {
	pp := DefaultPlayerPolicy

	tests := []struct {
		name     string
		buttons  core.Buttons
		pos      core.Position
		expected core.Displacement
	}{
		{"idle", 0, core.Pos(50, 50), core.D(0, 0)},
		{"right wins over left", core.ButtonLeft | core.ButtonRight, core.Pos(50, 50), core.D(1, 0)},
		{"down wins over up", core.ButtonUp | core.ButtonDown, core.Pos(50, 50), core.D(0, 1)},
		{"left edge", core.ButtonLeft, core.Pos(0, 50), core.D(0, 0)},
		{"right edge", core.ButtonRight, core.Pos(216, 50), core.D(0, 0)},
		{"top edge", core.ButtonUp, core.Pos(50, 0), core.D(0, 0)},
		{"bottom edge", core.ButtonDown, core.Pos(50, 200), core.D(0, 0)},
		{"diagonal", core.ButtonLeft | core.ButtonDown, core.Pos(8, 0), core.D(-1, 1)},
		{"right blocked at edge falls back to left", core.ButtonLeft | core.ButtonRight, core.Pos(216, 50), core.D(-1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, pp.Delta(tc.buttons, tc.pos))
		})
	}
}

func TestPlayerSlidesAndLocksOnce(t *testing.T) {
	g := level.Build(level.DefaultGeometry, lfsr.InitialSeed)
	cues := &hw.RecordingAudio{}
	p := &Player{Pos: core.Pos(8, 0)}
	held := core.ButtonLeft | core.ButtonDown

	cues.Tick()
	r := DefaultPlayerPolicy.Update(g, p, held, cues)
	assert.Equal(t, collision.Result{X: collision.Minus}, r, "wall to the left, floor open")
	assert.Equal(t, core.Pos(8, 1), p.Pos)

	for i := 0; i < 4; i++ {
		cues.Tick()
		r = DefaultPlayerPolicy.Update(g, p, held, cues)
		assert.Equal(t, collision.Result{X: collision.Minus, Y: collision.Plus}, r)
		assert.Equal(t, core.Pos(8, 1), p.Pos)
	}
	assert.Equal(t, 1, cues.Count(audio.Lock), "lock must not restack while sounding")

	// after the cue ends the next block announces again
	for cues.IsPlaying() {
		cues.Tick()
	}
	DefaultPlayerPolicy.Update(g, p, held, cues)
	assert.Equal(t, 2, cues.Count(audio.Lock))
}

func TestDeadPlayerDoesNotMove(t *testing.T) {
	g := level.Build(level.DefaultGeometry, lfsr.InitialSeed)
	cues := &hw.RecordingAudio{}
	p := &Player{Pos: core.Pos(16, 0), Dead: true}

	DefaultPlayerPolicy.Update(g, p, core.ButtonRight|core.ButtonDown, cues)
	assert.Equal(t, core.Pos(16, 0), p.Pos)
	assert.Empty(t, cues.Played)
}

func TestTouches(t *testing.T) {
	assert.True(t, Touches(core.Pos(10, 10), core.Pos(12, 13), 6))
	assert.False(t, Touches(core.Pos(10, 10), core.Pos(13, 13), 6))
	assert.True(t, Touches(core.Pos(0, 0), core.Pos(128, 128), 6), "L1 wraps at 8 bits")
	assert.True(t, Touches(core.Pos(0, 0), core.Pos(254, 0), 6), "differences wrap")
}

func TestCentre(t *testing.T) {
	assert.Equal(t, core.Pos(20, 4), Centre(core.Pos(16, 0)))
}

// A one-tile-high corridor; a box of width 7 fills it exactly.
func corridor() *level.Grid {
	return level.FromRows(1, 1,
		"##########",
		"#........#",
		"##########",
	)
}

func TestMeanieBouncesInCorridor(t *testing.T) {
	g := corridor()
	mp := MeaniePolicy{Width: 7, Speed: 1, Retries: 3, TurnThreshold: 50, OnThreshold: Reverse}
	m := &Meanie{Pos: core.Pos(0, 0), Vel: core.D(1, 0), Orientation: core.Clockwise}

	bounces := 0
	for frame := 0; frame < 2000; frame++ {
		before := m.Vel
		st := mp.Update(g, m, nil)

		require.False(t, st.Exhausted, "frame %d", frame)
		require.LessOrEqual(t, st.Turns, mp.Retries, "frame %d", frame)
		require.Equal(t, uint8(0), m.Pos.Y, "frame %d: left the corridor", frame)
		require.LessOrEqual(t, m.Pos.X, uint8(56), "frame %d", frame)

		if st.Turns > 0 {
			bounces++
			assert.Equal(t, 2, st.Turns, "frame %d", frame)
			assert.Equal(t, core.D(-before.X, 0), m.Vel, "frame %d: must reverse", frame)
			assert.Equal(t, m.Vel, st.Delta)
		} else {
			assert.Equal(t, before, st.Delta)
		}
	}
	assert.Greater(t, bounces, 30)
}

func TestMeanieReachesWallEnd(t *testing.T) {
	g := corridor()
	mp := MeaniePolicy{Width: 7, Speed: 1, Retries: 3, TurnThreshold: 50}
	m := &Meanie{Pos: core.Pos(56, 0), Vel: core.D(1, 0), Orientation: core.Clockwise}

	st := mp.Update(g, m, nil)
	assert.Equal(t, core.D(-1, 0), st.Delta)
	assert.Equal(t, core.Pos(55, 0), m.Pos)
	assert.Equal(t, 2, m.Turns)
}

func TestMeanieInClosedPocket(t *testing.T) {
	g := level.FromRows(1, 1,
		"###",
		"#.#",
		"###",
	)
	mp := MeaniePolicy{Width: 7, Speed: 1, Retries: 3, TurnThreshold: 5, OnThreshold: Reverse}
	m := &Meanie{Pos: core.Pos(0, 0), Vel: core.D(1, 0), Orientation: core.Clockwise}

	resensedAt := -1
	for frame := 0; frame < 100; frame++ {
		st := mp.Update(g, m, nil)
		require.True(t, st.Exhausted)
		require.Equal(t, core.D(0, 0), st.Delta)
		require.Equal(t, core.Pos(0, 0), m.Pos)
		require.LessOrEqual(t, m.Turns, mp.TurnThreshold)
		if st.Resensed && resensedAt < 0 {
			resensedAt = frame
		}
	}
	assert.Equal(t, 1, resensedAt, "3 turns per frame crosses 5 on the second frame")
}

func TestMeanieNeverProbesOffTop(t *testing.T) {
	g := level.FromRows(1, 1,
		"#####",
		"#...#",
		"#####",
	)
	mp := MeaniePolicy{Width: 6, Speed: 1, Retries: 3, TurnThreshold: 50}
	m := &Meanie{Pos: core.Pos(8, 0), Vel: core.D(0, -1), Orientation: core.Widdershins}

	st := mp.Update(g, m, nil)
	// (0,-1) is off the top; widdershins turns it to (-1,0), which is free
	assert.Equal(t, 1, st.Turns)
	assert.Equal(t, core.D(-1, 0), st.Delta)
	assert.Equal(t, core.Pos(7, 0), m.Pos)
}

func TestMeanieThresholdReverses(t *testing.T) {
	g := corridor()
	mp := MeaniePolicy{Width: 7, Speed: 1, Retries: 3, TurnThreshold: 1, OnThreshold: Reverse}
	m := &Meanie{Pos: core.Pos(56, 0), Vel: core.D(1, 0), Orientation: core.Clockwise}

	st := mp.Update(g, m, nil)
	assert.True(t, st.Resensed)
	assert.Equal(t, core.Widdershins, m.Orientation)
	assert.Equal(t, 0, m.Turns)
}

func TestMeanieThresholdRandom(t *testing.T) {
	g := corridor()
	mp := MeaniePolicy{Width: 7, Speed: 1, Retries: 5, TurnThreshold: 1, OnThreshold: Random}

	run := func() []core.Orientation {
		rng := lfsr.New(lfsr.InitialSeed)
		m := &Meanie{Pos: core.Pos(0, 0), Vel: core.D(1, 0), Orientation: core.Clockwise}
		var senses []core.Orientation
		for i := 0; i < 1000; i++ {
			if mp.Update(g, m, rng).Resensed {
				senses = append(senses, m.Orientation)
			}
		}
		return senses
	}

	a, b := run(), run()
	require.NotEmpty(t, a)
	assert.Equal(t, a, b, "random sense must be reproducible from the seed")
}

func TestCollectorsAreIdempotent(t *testing.T) {
	rows := []string{
		"#####",
		"#o.o#",
		"#####",
	}
	mutable := level.FromRows(0, 0, rows...)
	side := level.FromRows(0, 0, rows...)

	collectors := map[string]Collector{
		"mutable":  NewMutableCollector(mutable),
		"side-set": NewSideSetCollector(side),
	}

	for name, c := range collectors {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 2, c.Remaining())
			assert.True(t, c.Collect(6))
			assert.False(t, c.Collect(6), "second touch must not count")
			assert.False(t, c.Collect(7), "empty tile")
			assert.False(t, c.Collect(0), "wall")
			assert.Equal(t, 1, c.Remaining())
			assert.Equal(t, 1, c.Collected())
			assert.Equal(t, level.Empty, c.Tile(6))
			assert.Equal(t, level.Collectible, c.Tile(8))
		})
	}

	assert.Equal(t, level.Empty, mutable.At(6), "mutable strategy edits the grid")
	assert.Equal(t, level.Collectible, side.At(6), "side-set strategy leaves the grid alone")
}

func TestSideSetRecordsOrder(t *testing.T) {
	g := level.FromRows(0, 0, "#o.o#")
	c := NewSideSetCollector(g)
	require.True(t, c.Collect(3))
	require.True(t, c.Collect(1))

	first, ok := c.Order(3)
	require.True(t, ok)
	assert.Equal(t, 0, first)
	second, _ := c.Order(1)
	assert.Equal(t, 1, second)

	_, ok = c.Order(2)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Remaining())
}

func TestMeaniePocketThresholdEdges(t *testing.T) {
	g := level.FromRows(1, 1,
		"###",
		"#.#",
		"###",
	)
	tests := []struct {
		threshold int
		firstAt   int // frame of the first sense change at 3 turns per frame
		changes   int // sense changes in 1000 frames
	}{
		{0, 0, 1000},
		{5, 1, 500},
		{255, 85, 11},
	}

	for _, tc := range tests {
		mp := MeaniePolicy{Width: 7, Speed: 1, Retries: 3, TurnThreshold: tc.threshold, OnThreshold: Reverse}
		m := &Meanie{Pos: core.Pos(0, 0), Vel: core.D(1, 0), Orientation: core.Clockwise}

		first, changes := -1, 0
		for frame := 0; frame < 1000; frame++ {
			if mp.Update(g, m, nil).Resensed {
				changes++
				if first < 0 {
					first = frame
				}
			}
			require.LessOrEqual(t, m.Turns, tc.threshold, "threshold %d frame %d", tc.threshold, frame)
		}
		assert.Equal(t, tc.firstAt, first, "threshold %d", tc.threshold)
		assert.Equal(t, tc.changes, changes, "threshold %d", tc.threshold)
	}
}
