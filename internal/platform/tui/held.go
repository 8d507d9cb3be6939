package tui

import (
	"sync"

	"github.com/vovakirdan/tilearcade/internal/core"
)

// HeldInput turns key presses into held buttons. Terminals report presses
// and auto-repeat but never releases, so each press holds its button for a
// number of polls and a repeat extends the hold.
type HeldInput struct {
	mu    sync.Mutex
	hold  int
	left  [8]int
	polls uint64
}

// NewHeldInput creates an input that holds each press for frames polls.
func NewHeldInput(frames int) *HeldInput {
	if frames < 1 {
		frames = 1
	}
	return &HeldInput{hold: frames}
}

// Press holds every button in b.
func (h *HeldInput) Press(b core.Buttons) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.left {
		if b.Has(core.Buttons(1 << i)) {
			h.left[i] = h.hold
		}
	}
}

// Release drops every held button.
func (h *HeldInput) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.left = [8]int{}
}

// Poll implements hw.Input: it reports the held buttons and ages them by one.
func (h *HeldInput) Poll() core.Buttons {
	h.mu.Lock()
	defer h.mu.Unlock()
	var b core.Buttons
	for i := range h.left {
		if h.left[i] > 0 {
			b |= core.Buttons(1 << i)
			h.left[i]--
		}
	}
	h.polls++
	return b
}

// Polls returns how many times Poll has been called.
func (h *HeldInput) Polls() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.polls
}
