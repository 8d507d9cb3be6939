// Package video is a software tile display: video memory, a write cursor,
// scroll registers and a sprite attribute copy, rasterized to text cells.
package video

import (
	"sync"
)

// Memory map.
const (
	VRAMSize      = 0x4000
	AddrMask      = VRAMSize - 1
	NametableBase = 0x2000
	PaletteBase   = 0x3F00
	SpritePalette = 0x3F10
)

// Visible nametable size in tiles.
const (
	Columns = 32
	Rows    = 30
)

// PPU implements hw.Display and hw.SpriteTransmitter. Writes come from the
// console's contexts while the front-end takes snapshots, so every access
// holds the mutex.
type PPU struct {
	mu sync.Mutex

	vram    [VRAMSize]byte
	oam     [256]byte
	cursor  uint16
	scrollX byte
	scrollY byte
	enabled bool

	writes    uint64
	transfers uint64
}

// New returns a blank display with the refresh interrupt disabled.
func New() *PPU {
	return &PPU{}
}

// SetCursor latches the address for the next WriteTile.
func (p *PPU) SetCursor(addr uint16) {
	p.mu.Lock()
	p.cursor = addr & AddrMask
	p.mu.Unlock()
}

// WriteTile stores b at the cursor and advances it by one.
func (p *PPU) WriteTile(b byte) {
	p.mu.Lock()
	p.vram[p.cursor] = b
	p.cursor = (p.cursor + 1) & AddrMask
	p.writes++
	p.mu.Unlock()
}

func (p *PPU) SetScroll(x, y byte) {
	p.mu.Lock()
	p.scrollX, p.scrollY = x, y
	p.mu.Unlock()
}

func (p *PPU) EnableRefreshInterrupt() {
	p.mu.Lock()
	p.enabled = true
	p.mu.Unlock()
}

func (p *PPU) DisableRefreshInterrupt() {
	p.mu.Lock()
	p.enabled = false
	p.mu.Unlock()
}

// InterruptEnabled reports the refresh interrupt flag.
func (p *PPU) InterruptEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Transmit copies a sprite table into the display's attribute memory.
func (p *PPU) Transmit(oam *[256]byte) {
	p.mu.Lock()
	p.oam = *oam
	p.transfers++
	p.mu.Unlock()
}

// Read returns the byte at addr.
func (p *PPU) Read(addr uint16) byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vram[addr&AddrMask]
}

// Cursor returns the current write address.
func (p *PPU) Cursor() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Scroll returns the scroll registers.
func (p *PPU) Scroll() (x, y byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrollX, p.scrollY
}

// Counters returns how many tiles were written and sprite tables copied.
func (p *PPU) Counters() (writes, transfers uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes, p.transfers
}

// Frame is a consistent copy of everything the rasterizer needs.
type Frame struct {
	Nametable [Columns * Rows]byte
	Palettes  [32]byte
	OAM       [256]byte
}

// Snapshot copies the visible state under one lock.
func (p *PPU) Snapshot() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	var f Frame
	copy(f.Nametable[:], p.vram[NametableBase:NametableBase+Columns*Rows])
	copy(f.Palettes[:], p.vram[PaletteBase:PaletteBase+32])
	f.OAM = p.oam
	return f
}
