// Package renderq is the deferred drawing buffer shared between the frame
// loop (producer) and the refresh interrupt (consumer).
//
// Each run is encoded as {length, address high, address low, tiles...}; the
// consumer sets the cursor once per run and lets the display auto-increment.
package renderq

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/vovakirdan/tilearcade/internal/hw"
)

// DefaultCapacity fits a frame's worth of score digits, tile fixes and a
// line of text.
const DefaultCapacity = 64

// MaxRun is the longest run one length byte can describe.
const MaxRun = 0xFF

const header = 3

var (
	// ErrFull is returned when a push would exceed the buffer.
	ErrFull = errors.New("render queue full")
	// ErrRunTooLong is returned for runs longer than MaxRun tiles.
	ErrRunTooLong = errors.New("run too long")
)

// Queue is a fixed-capacity byte buffer plus a length. The producer appends
// and then Publishes; the consumer only ever reads published bytes.
type Queue struct {
	buf       []byte
	n         int
	published atomic.Uint32
}

// New allocates a queue of the given capacity. The buffer never grows.
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{buf: make([]byte, capacity)}
}

// Cap returns the buffer size in bytes.
func (q *Queue) Cap() int { return len(q.buf) }

// Len returns the bytes written since the last Clear.
func (q *Queue) Len() int { return q.n }

// Published returns the length visible to the consumer.
func (q *Queue) Published() int { return int(q.published.Load()) }

// Clear empties the queue and withdraws anything published. The producer
// calls it before each frame's writes.
func (q *Queue) Clear() {
	q.published.Store(0)
	q.n = 0
}

// Publish makes everything written so far visible to the consumer.
func (q *Queue) Publish() {
	q.published.Store(uint32(q.n))
}

// PushRun appends one run starting at addr. Empty runs are dropped.
func (q *Queue) PushRun(addr uint16, tiles ...byte) error {
	if len(tiles) == 0 {
		return nil
	}
	if len(tiles) > MaxRun {
		return fmt.Errorf("renderq: %d tiles at %#04x: %w", len(tiles), addr, ErrRunTooLong)
	}
	need := header + len(tiles)
	if q.n+need > len(q.buf) {
		return fmt.Errorf("renderq: push %d bytes at %#04x with %d/%d used: %w",
			need, addr, q.n, len(q.buf), ErrFull)
	}
	q.buf[q.n] = byte(len(tiles))
	q.buf[q.n+1] = byte(addr >> 8)
	q.buf[q.n+2] = byte(addr)
	copy(q.buf[q.n+header:], tiles)
	q.n += need
	return nil
}

// PushTile appends a single-tile run.
func (q *Queue) PushTile(addr uint16, b byte) error {
	return q.PushRun(addr, b)
}

// PushText appends printable ASCII as font tiles.
func (q *Queue) PushText(addr uint16, s string) error {
	var tiles [MaxRun]byte
	if len(s) > MaxRun {
		return fmt.Errorf("renderq: text of %d bytes at %#04x: %w", len(s), addr, ErrRunTooLong)
	}
	for i := 0; i < len(s); i++ {
		tiles[i] = hw.TextTile(s[i])
	}
	return q.PushRun(addr, tiles[:len(s)]...)
}

// PushDigits appends v as width zero-padded decimal digits. Digits above
// width are dropped.
func (q *Queue) PushDigits(addr uint16, v uint, width int) error {
	if width <= 0 {
		return nil
	}
	if width > 20 {
		width = 20
	}
	var tiles [20]byte
	for i := width - 1; i >= 0; i-- {
		tiles[i] = hw.TextTile(byte('0' + v%10))
		v /= 10
	}
	return q.PushRun(addr, tiles[:width]...)
}

// Drain replays the published runs into dst in append order and returns the
// number of tiles written. It does not allocate.
func (q *Queue) Drain(dst hw.Display) int {
	n := int(q.published.Load())
	var d Decoder
	for _, b := range q.buf[:n] {
		d.Step(b, dst)
	}
	return d.Written()
}
