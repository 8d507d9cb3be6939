package renderq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilearcade/internal/hw"
)

// counter is a Display that never allocates.
type counter struct {
	cursors, tiles int
}

func (c *counter) SetCursor(uint16)         { c.cursors++ }
func (c *counter) WriteTile(byte)           { c.tiles++ }
func (c *counter) SetScroll(byte, byte)     {}
func (c *counter) EnableRefreshInterrupt()  {}
func (c *counter) DisableRefreshInterrupt() {}

func TestRoundTrip(t *testing.T) {
	q := New(64)
	require.NoError(t, q.PushRun(0x2020, 0x10, 0x11, 0x12))
	require.NoError(t, q.PushTile(0x2100, 0x63))
	require.NoError(t, q.PushRun(0x20ff, 1, 2)) // crosses a low-byte boundary
	q.Publish()

	d := &hw.RecordingDisplay{}
	n := q.Drain(d)

	expected := []hw.Write{
		{Addr: 0x2020, Tile: 0x10},
		{Addr: 0x2021, Tile: 0x11},
		{Addr: 0x2022, Tile: 0x12},
		{Addr: 0x2100, Tile: 0x63},
		{Addr: 0x20ff, Tile: 1},
		{Addr: 0x2100, Tile: 2},
	}
	assert.Equal(t, expected, d.Writes)
	assert.Equal(t, 6, n)
	assert.Equal(t, 3, d.Cursors, "one cursor write per run")
}

func TestEncoding(t *testing.T) {
	q := New(16)
	require.NoError(t, q.PushRun(0x2345, 7, 8))
	assert.Equal(t, []byte{2, 0x23, 0x45, 7, 8}, q.buf[:q.Len()])
}

func TestEmptyDrain(t *testing.T) {
	q := New(8)
	d := &hw.RecordingDisplay{}

	assert.Equal(t, 0, q.Drain(d))
	q.Publish()
	assert.Equal(t, 0, q.Drain(d))
	assert.Empty(t, d.Writes)
	assert.Equal(t, 0, d.Cursors)
}

func TestUnpublishedIsInvisible(t *testing.T) {
	q := New(16)
	require.NoError(t, q.PushTile(0x2000, 1))

	d := &hw.RecordingDisplay{}
	assert.Equal(t, 0, q.Drain(d), "consumer must only see published bytes")

	q.Publish()
	assert.Equal(t, 1, q.Drain(d))
}

func TestClearAfterDrainLeavesNothing(t *testing.T) {
	q := New(16)
	require.NoError(t, q.PushRun(0x2000, 1, 2, 3))
	q.Publish()
	q.Drain(&hw.RecordingDisplay{})

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, q.Published())

	d := &hw.RecordingDisplay{}
	assert.Equal(t, 0, q.Drain(d))

	require.NoError(t, q.PushTile(0x2400, 9))
	q.Publish()
	q.Drain(d)
	assert.Equal(t, []hw.Write{{Addr: 0x2400, Tile: 9}}, d.Writes)
}

func TestFull(t *testing.T) {
	q := New(8)
	require.NoError(t, q.PushRun(0x2000, 1, 2, 3, 4, 5)) // exactly 8 bytes

	err := q.PushTile(0x2000, 6)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFull))
	assert.Equal(t, 8, q.Len(), "a failed push must not write")
}

func TestZeroLengthRunDropped(t *testing.T) {
	q := New(4)
	require.NoError(t, q.PushRun(0x2000))
	require.NoError(t, q.PushText(0x2000, ""))
	assert.Equal(t, 0, q.Len())
}

func TestRunTooLong(t *testing.T) {
	q := New(1024)
	err := q.PushRun(0x2000, make([]byte, MaxRun+1)...)
	assert.True(t, errors.Is(err, ErrRunTooLong))
}

func TestPushTextAndDigits(t *testing.T) {
	q := New(32)
	require.NoError(t, q.PushText(0x202f, " IS DEAD"))
	require.NoError(t, q.PushDigits(0x2020, 7, 3))
	require.NoError(t, q.PushDigits(0x2040, 1234, 3))
	q.Publish()

	d := &hw.RecordingDisplay{}
	q.Drain(d)
	mem := d.Memory()

	assert.Equal(t, byte(' '-32), mem[0x202f])
	assert.Equal(t, byte('D'-32), mem[0x2036])
	assert.Equal(t, []byte{'0' - 32, '0' - 32, '7' - 32}, []byte{mem[0x2020], mem[0x2021], mem[0x2022]})
	assert.Equal(t, []byte{'2' - 32, '3' - 32, '4' - 32}, []byte{mem[0x2040], mem[0x2041], mem[0x2042]})
}

func TestDrainDoesNotAllocate(t *testing.T) {
	q := New(DefaultCapacity)
	require.NoError(t, q.PushDigits(0x2020, 42, 3))
	require.NoError(t, q.PushText(0x202f, " IS DEAD"))
	q.Publish()

	c := &counter{}
	allocs := testing.AllocsPerRun(100, func() {
		q.Drain(c)
	})
	assert.Zero(t, allocs)
}

func TestDecoderStates(t *testing.T) {
	var dec Decoder
	c := &counter{}

	assert.Equal(t, AwaitLength, dec.State())
	dec.Step(2, c)
	assert.Equal(t, AwaitAddressHigh, dec.State())
	dec.Step(0x20, c)
	assert.Equal(t, AwaitAddressLow, dec.State())
	dec.Step(0x00, c)
	assert.Equal(t, EmitTile, dec.State())
	assert.Equal(t, 2, dec.Remaining())
	dec.Step(1, c)
	dec.Step(1, c)
	assert.Equal(t, AwaitLength, dec.State())
	assert.Equal(t, 1, c.cursors)
	assert.Equal(t, 2, c.tiles)
}
