// Package console runs a game on the two execution contexts of the target:
// a cooperative frame loop and a deadline-bound refresh interrupt.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilearcade/internal/audio"
	"github.com/vovakirdan/tilearcade/internal/core"
	"github.com/vovakirdan/tilearcade/internal/hw"
	"github.com/vovakirdan/tilearcade/internal/renderq"
	"github.com/vovakirdan/tilearcade/internal/sprites"
)

// ErrHalted wraps the cause of a fatal stop.
var ErrHalted = errors.New("console halted")

// PanicAddr is where the halt diagnostic is painted.
const PanicAddr uint16 = 0x2020

// FrameContext is what a game sees during one frame.
type FrameContext struct {
	Frame   uint64
	Buttons core.Buttons
	Queue   *renderq.Queue
	Sprites *sprites.Table
	Audio   hw.AudioSink
}

// Game is the per-frame contract the console drives.
type Game interface {
	// Init performs the direct, interrupt-free writes of power-on.
	Init(d hw.Display)
	// Frame advances the simulation and describes what changed.
	Frame(fc *FrameContext) error
}

// Options wires a Console to its hardware.
type Options struct {
	Display       hw.Display
	Input         hw.Input
	Audio         hw.AudioSink
	Transmitter   hw.SpriteTransmitter
	QueueCapacity int
	Logger        *log.Logger
}

// Console owns the shared per-frame state: the render queue, the sprite
// table and its hardware image.
type Console struct {
	display hw.Display
	input   hw.Input
	audio   hw.AudioSink
	tx      hw.SpriteTransmitter
	log     *log.Logger

	queue   *renderq.Queue
	sprites *sprites.Table
	oam     [256]byte

	// busy is set when a frame is owed to the producer and cleared when the
	// producer publishes. The interrupt never touches shared state while set.
	busy   atomic.Bool
	halted atomic.Bool

	frame    uint64
	frames   atomic.Uint64
	vblanks  atomic.Uint64
	overruns atomic.Uint64
	reported uint64
}

// New creates a console. Missing collaborators get inert defaults.
func New(opts Options) *Console {
	c := &Console{
		display: opts.Display,
		input:   opts.Input,
		audio:   opts.Audio,
		tx:      opts.Transmitter,
		log:     opts.Logger,
		queue:   renderq.New(opts.QueueCapacity),
		sprites: sprites.NewTable(),
	}
	if c.input == nil {
		c.input = hw.Held(0)
	}
	if c.audio == nil {
		c.audio = hw.NullAudio{}
	}
	if c.tx == nil {
		c.tx = discardTransmitter{}
	}
	if c.log == nil {
		c.log = log.New(io.Discard)
	}
	c.sprites.OAM(&c.oam)
	return c
}

type discardTransmitter struct{}

func (discardTransmitter) Transmit(*[256]byte) {}

// Init runs the game's power-on writes with the refresh interrupt disabled.
func (c *Console) Init(g Game) {
	c.display.DisableRefreshInterrupt()
	g.Init(c.display)
	c.display.EnableRefreshInterrupt()
	c.log.Debug("initialized", "queue", c.queue.Cap(), "sprites", sprites.Capacity)
}

// VBlank is the refresh interrupt: transmit sprites, drain the queue, reset
// scroll. If the producer still owns the frame it counts an overrun and
// leaves everything alone. It reports whether it drained.
func (c *Console) VBlank() bool {
	if c.halted.Load() {
		return false
	}
	if c.busy.Load() {
		c.overruns.Add(1)
		return false
	}
	c.tx.Transmit(&c.oam)
	c.queue.Drain(c.display)
	c.display.SetScroll(0, 0)
	c.vblanks.Add(1)
	return true
}

// Frame runs one cooperative frame. On error the frame stays owned by the
// producer, so the interrupt keeps off the half-built state.
func (c *Console) Frame(g Game) error {
	c.busy.Store(true)

	buttons := c.input.Poll()
	c.sprites.Clear()
	c.queue.Clear()
	c.audio.Tick()

	fc := FrameContext{
		Frame:   c.frame,
		Buttons: buttons,
		Queue:   c.queue,
		Sprites: c.sprites,
		Audio:   c.audio,
	}
	if err := g.Frame(&fc); err != nil {
		return fmt.Errorf("console: frame %d: %w", c.frame, err)
	}

	c.sprites.OAM(&c.oam)
	c.queue.Publish()
	c.frame++
	c.frames.Add(1)
	c.busy.Store(false)

	if n := c.overruns.Load(); n != c.reported {
		c.log.Warn("refresh interrupt overran the frame", "frame", c.frame, "overruns", n)
		c.reported = n
	}
	return nil
}

// Step is the synchronous path: one interrupt then one frame.
func (c *Console) Step(g Game) error {
	c.VBlank()
	if err := c.Frame(g); err != nil {
		return c.Halt(err)
	}
	return nil
}

// Halt stops the console for good: silence, paint the diagnostic directly,
// and return ErrHalted wrapping cause.
func (c *Console) Halt(cause error) error {
	c.halted.Store(true)
	c.audio.Play(audio.None)
	c.display.DisableRefreshInterrupt()
	hw.WriteText(c.display, PanicAddr, panicText(cause))
	c.display.EnableRefreshInterrupt()
	c.log.Error("halted", "frame", c.frame, "err", cause)
	return fmt.Errorf("%w: %w", ErrHalted, cause)
}

// Halted reports whether Halt has been called.
func (c *Console) Halted() bool {
	return c.halted.Load()
}

const panicWidth = 64

// panicText renders cause as printable upper-case ASCII, two rows at most.
func panicText(cause error) string {
	msg := "PANIC " + strings.ToUpper(cause.Error())
	b := []byte(msg)
	for i, ch := range b {
		if ch < 0x20 || ch > 0x5f {
			b[i] = '?'
		}
	}
	if len(b) > panicWidth {
		b = b[:panicWidth]
	}
	return string(b)
}

// Stats returns the frame counters.
func (c *Console) Stats() core.FrameStats {
	return core.FrameStats{
		Frames:   c.frames.Load(),
		VBlanks:  c.vblanks.Load(),
		Overruns: c.overruns.Load(),
	}
}

// Queue exposes the render queue for inspection.
func (c *Console) Queue() *renderq.Queue { return c.queue }

// Sprites exposes the sprite table for inspection.
func (c *Console) Sprites() *sprites.Table { return c.sprites }
