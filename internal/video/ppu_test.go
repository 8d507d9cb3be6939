package video

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/hw"
	"github.com/vovakirdan/tilearcade/internal/renderq"
	"github.com/vovakirdan/tilearcade/internal/sprites"
)

var (
	_ hw.Display           = (*PPU)(nil)
	_ hw.SpriteTransmitter = (*PPU)(nil)
)

func TestCursorAutoIncrement(t *testing.T) {
	p := New()
	hw.WriteBytes(p, 0x2040, 1, 2, 3)

	assert.Equal(t, byte(1), p.Read(0x2040))
	assert.Equal(t, byte(3), p.Read(0x2042))
	assert.Equal(t, uint16(0x2043), p.Cursor())

	writes, _ := p.Counters()
	assert.Equal(t, uint64(3), writes)
}

func TestCursorWrapsAtTopOfMemory(t *testing.T) {
	p := New()
	hw.WriteBytes(p, 0x3FFF, 0xAA, 0xBB)

	assert.Equal(t, byte(0xAA), p.Read(0x3FFF))
	assert.Equal(t, byte(0xBB), p.Read(0x0000))
	assert.Equal(t, byte(0xAA), p.Read(0x7FFF), "addresses mirror above 16 KiB")
}

func TestRegisters(t *testing.T) {
	p := New()
	assert.False(t, p.InterruptEnabled())
	p.EnableRefreshInterrupt()
	assert.True(t, p.InterruptEnabled())
	p.DisableRefreshInterrupt()
	assert.False(t, p.InterruptEnabled())

	p.SetScroll(3, 4)
	x, y := p.Scroll()
	assert.Equal(t, byte(3), x)
	assert.Equal(t, byte(4), y)
}

func TestQueueDrainsIntoNametable(t *testing.T) {
	p := New()
	q := renderq.New(renderq.DefaultCapacity)
	require.NoError(t, q.PushText(NametableBase+0x21, "HI"))
	q.Publish()
	q.Drain(p)

	f := p.Snapshot()
	assert.Equal(t, hw.TextTile('H'), f.Nametable[0x21])
	assert.Equal(t, hw.TextTile('I'), f.Nametable[0x22])
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, 'A', Glyph(hw.TextTile('A')))
	assert.Equal(t, 'x', Glyph(hw.TextTile('x')))
	assert.Equal(t, '0', Glyph(hw.TextTile('0')))
	assert.Equal(t, '█', Glyph(0x60))
	assert.Equal(t, '♥', Glyph(0x63))
	assert.Equal(t, '@', Glyph(0x5F))
	assert.Equal(t, '?', Glyph(0xF0))
}

func TestRenderBackgroundAndSprites(t *testing.T) {
	p := New()
	hw.WriteBytes(p, PaletteBase, 0x0E, 0x30, 0x12, 0x26)
	hw.WriteBytes(p, SpritePalette+3, 0x15)
	hw.WriteBytes(p, NametableBase, 0x60, 0x60)
	hw.WriteText(p, NametableBase+Columns+2, "OK")

	tab := sprites.NewTable()
	require.NoError(t, tab.AddAt(core.Pos(16, 8), 0x63, 0))
	var oam [256]byte
	tab.OAM(&oam)
	p.Transmit(&oam)

	screen := core.NewScreen(Columns, Rows)
	p.Render(screen)

	assert.Equal(t, "██", screen.Row(0)[:len("██")])
	assert.Equal(t, core.PaletteColor(0x12), screen.Get(0, 0).Color)
	assert.Equal(t, 'O', screen.Get(2, 1).Rune)
	assert.Equal(t, core.PaletteColor(0x30), screen.Get(2, 1).Color)

	// Playfield (16,8) is tile column 2+2, row 1+1.
	heart := screen.Get(4, 2)
	assert.Equal(t, '♥', heart.Rune)
	assert.Equal(t, core.PaletteColor(0x15), heart.Color)
}

func TestRenderSkipsHiddenSprites(t *testing.T) {
	p := New()
	var oam [256]byte
	sprites.NewTable().OAM(&oam)
	p.Transmit(&oam)

	screen := core.NewScreen(Columns, Rows)
	p.Render(screen)
	for y := 0; y < Rows; y++ {
		assert.Equal(t, 32, len(screen.Row(y)))
		assert.Empty(t, strings.TrimSpace(screen.Row(y)), "row %d", y)
	}
}

func TestConcurrentWritesAndSnapshots(t *testing.T) {
	p := New()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			hw.WriteBytes(p, NametableBase, byte(i))
		}
	}()
	go func() {
		defer wg.Done()
		screen := core.NewScreen(Columns, Rows)
		for i := 0; i < 100; i++ {
			p.Render(screen)
		}
	}()
	wg.Wait()
	assert.Equal(t, byte(999%256), p.Read(NametableBase))
}
