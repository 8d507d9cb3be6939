package hw

import (
	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/core"
)

// Write is one (address, byte) pair as it reached display memory.
type Write struct {
	Addr uint16
	Tile byte
}

// RecordingDisplay captures every write with the cursor auto-increment applied.
type RecordingDisplay struct {
	Writes     []Write
	Cursors    int // number of SetCursor calls
	Cursor     uint16
	ScrollX    byte
	ScrollY    byte
	Interrupts bool
}

func (d *RecordingDisplay) SetCursor(addr uint16) {
	d.Cursor = addr
	d.Cursors++
}

func (d *RecordingDisplay) WriteTile(b byte) {
	d.Writes = append(d.Writes, Write{Addr: d.Cursor, Tile: b})
	d.Cursor++
}

func (d *RecordingDisplay) SetScroll(x, y byte) {
	d.ScrollX, d.ScrollY = x, y
}

func (d *RecordingDisplay) EnableRefreshInterrupt()  { d.Interrupts = true }
func (d *RecordingDisplay) DisableRefreshInterrupt() { d.Interrupts = false }

// Reset forgets recorded writes.
func (d *RecordingDisplay) Reset() {
	d.Writes = d.Writes[:0]
	d.Cursors = 0
}

// Memory folds the writes into a final address -> byte view.
func (d *RecordingDisplay) Memory() map[uint16]byte {
	m := make(map[uint16]byte, len(d.Writes))
	for _, w := range d.Writes {
		m[w.Addr] = w.Tile
	}
	return m
}

// FuncInput adapts a function to Input.
type FuncInput func() core.Buttons

func (f FuncInput) Poll() core.Buttons { return f() }

// Held is an Input that always reports the same buttons.
type Held core.Buttons

func (h Held) Poll() core.Buttons { return core.Buttons(h) }

// NullAudio discards cues.
type NullAudio struct{}

func (NullAudio) Play(audio.Cue)  {}
func (NullAudio) IsPlaying() bool { return false }
func (NullAudio) Tick()           {}

// RecordingAudio sequences cues like the real sink and remembers each Play.
type RecordingAudio struct {
	audio.Sequencer
	Played []audio.Cue
}

func (a *RecordingAudio) Play(c audio.Cue) {
	a.Played = append(a.Played, c)
	a.Sequencer.Play(c)
}

// Count returns how many times c was played.
func (a *RecordingAudio) Count(c audio.Cue) int {
	n := 0
	for _, p := range a.Played {
		if p == c {
			n++
		}
	}
	return n
}

// RecordingTransmitter keeps the last transmitted sprite table.
type RecordingTransmitter struct {
	Last  [256]byte
	Count int
}

func (t *RecordingTransmitter) Transmit(oam *[256]byte) {
	t.Last = *oam
	t.Count++
}
