package renderq

import "github.com/vovakirdan/tilearcade/internal/hw"

// DecodeState is the decoder's position inside a run.
type DecodeState uint8

const (
	AwaitLength DecodeState = iota
	AwaitAddressHigh
	AwaitAddressLow
	EmitTile
)

func (s DecodeState) String() string {
	switch s {
	case AwaitLength:
		return "await-length"
	case AwaitAddressHigh:
		return "await-address-high"
	case AwaitAddressLow:
		return "await-address-low"
	case EmitTile:
		return "emit-tile"
	default:
		return "unknown"
	}
}

// Decoder turns the untagged byte stream back into cursor and tile writes.
type Decoder struct {
	state     DecodeState
	remaining byte
	hi        byte
	written   int
}

// Step consumes one byte.
func (d *Decoder) Step(b byte, dst hw.Display) {
	switch d.state {
	case AwaitLength:
		if b == 0 {
			return
		}
		d.remaining = b
		d.state = AwaitAddressHigh
	case AwaitAddressHigh:
		d.hi = b
		d.state = AwaitAddressLow
	case AwaitAddressLow:
		dst.SetCursor(uint16(d.hi)<<8 | uint16(b))
		d.state = EmitTile
	case EmitTile:
		dst.WriteTile(b)
		d.written++
		d.remaining--
		if d.remaining == 0 {
			d.state = AwaitLength
		}
	}
}

// State returns where the decoder is.
func (d *Decoder) State() DecodeState { return d.state }

// Remaining returns the tiles left in the current run.
func (d *Decoder) Remaining() int { return int(d.remaining) }

// Written returns the tiles emitted so far.
func (d *Decoder) Written() int { return d.written }
