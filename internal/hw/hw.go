// Package hw declares the hardware capabilities the engine drives. Core logic
// never sees raw register addresses, only these interfaces.
package hw

import (
	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/core"
)

// Display is the tile display controller. WriteTile stores at the cursor and
// advances it by one.
type Display interface {
	SetCursor(addr uint16)
	WriteTile(b byte)
	SetScroll(x, y byte)
	EnableRefreshInterrupt()
	DisableRefreshInterrupt()
}

// Input reads the controller once per frame.
type Input interface {
	Poll() core.Buttons
}

// AudioSink plays one-shot cues and is stepped once per frame.
type AudioSink interface {
	Play(c audio.Cue)
	IsPlaying() bool
	Tick()
}

// SpriteTransmitter bulk-copies a staged sprite table to the display.
type SpriteTransmitter interface {
	Transmit(oam *[256]byte)
}

// WriteBytes sets the cursor and writes a run of bytes directly. It is only
// for use while the refresh interrupt is disabled.
func WriteBytes(d Display, addr uint16, bs ...byte) {
	d.SetCursor(addr)
	for _, b := range bs {
		d.WriteTile(b)
	}
}

// TextTile converts printable ASCII to the tile index of the font sheet.
func TextTile(r byte) byte {
	return r - 32
}

// WriteText draws ASCII text directly at addr.
func WriteText(d Display, addr uint16, s string) {
	d.SetCursor(addr)
	for i := 0; i < len(s); i++ {
		d.WriteTile(TextTile(s[i]))
	}
}
