// Package audio sequences the one-shot sound cues games trigger and renders
// them as pulse-channel audio.
package audio

import (
	"fmt"
	"strings"
)

// Cue identifies a one-shot sound effect.
type Cue uint8

const (
	None Cue = iota
	ChangeScreen
	MenuBoop
	Pause
	Shift
	Rotate
	Lock
	LevelUp
	Burn
	FourLineClear
	Topout
)

var cueNames = [...]string{
	None:          "none",
	ChangeScreen:  "change-screen",
	MenuBoop:      "menu-boop",
	Pause:         "pause",
	Shift:         "shift",
	Rotate:        "rotate",
	Lock:          "lock",
	LevelUp:       "level-up",
	Burn:          "burn",
	FourLineClear: "four-line-clear",
	Topout:        "topout",
}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return fmt.Sprintf("cue(%d)", uint8(c))
}

// Cues lists every playable cue in declaration order.
func Cues() []Cue {
	out := make([]Cue, 0, len(cueNames)-1)
	for c := ChangeScreen; int(c) < len(cueNames); c++ {
		out = append(out, c)
	}
	return out
}

// ParseCue looks a cue up by its String form.
func ParseCue(name string) (Cue, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, cn := range cueNames {
		if cn == n && Cue(i) != None {
			return Cue(i), nil
		}
	}
	return None, fmt.Errorf("audio: unknown cue %q", name)
}

// Pulse is the register image written to the pulse channel for one frame.
type Pulse struct {
	Hi      byte // timer high bits (only the low 3 matter)
	Lo      byte // timer low byte
	DutyVol byte // duty in bits 6-7, constant-volume flag in bit 4, volume in bits 0-3
}

// Timer returns the 11-bit period.
func (p Pulse) Timer() uint16 {
	return uint16(p.Hi&0x07)<<8 | uint16(p.Lo)
}

// Duty returns the high fraction of the waveform.
func (p Pulse) Duty() float64 {
	switch p.DutyVol >> 6 {
	case 0:
		return 0.125
	case 1:
		return 0.25
	case 2:
		return 0.5
	default:
		return 0.75
	}
}

// Volume returns the 4-bit volume scaled to [0, 1].
func (p Pulse) Volume() float64 {
	return float64(p.DutyVol&0x0F) / 15
}

var arpeggio = [...]byte{0xfb, 0xc4, 0x93, 0x67, 0x3f, 0x1c}

// Frame returns the register image for frame off of cue c. ok is false once
// the cue has ended.
func Frame(c Cue, off int) (p Pulse, ok bool) {
	step := func(hi, lo, dv byte) (Pulse, bool) { return Pulse{Hi: hi, Lo: lo, DutyVol: dv}, true }

	switch c {
	case ChangeScreen, Pause:
		switch {
		case off <= 5:
			return step(1, 0x7c, 0b10111111)
		case off <= 10:
			return step(1, 0xc4, 0b10111111)
		case off <= 15:
			return step(0, 0xbf, 0b10111111)
		}
	case MenuBoop:
		if off <= 2 {
			return step(0, 0x90, 0b10110111)
		}
	case Shift:
		if off <= 2 {
			return step(1, 0x7c, 0b10110111)
		}
	case Lock:
		switch {
		case off <= 2:
			return step(5, 0x9d, 0b10110110)
		case off <= 3:
			return step(6, 0xad, 0b10110110)
		}
	case Rotate:
		switch {
		case off <= 1:
			return step(1, 0x7c, 0b10110110)
		case off <= 3:
			return step(2, 0x1a, 0b10110000)
		case off <= 5:
			return step(1, 0x7c, 0b10110110)
		}
	case LevelUp, Burn, FourLineClear:
		if off/4 < len(arpeggio) {
			return step(1, arpeggio[off/4], 0b10111111)
		}
	case Topout:
		switch {
		case off <= 5:
			return step(4, 0x34, 0b10111110)
		case off <= 15:
			return step(4, 0xb8, 0b10111000)
		case off <= 20:
			return step(5, 0x4c, 0b10111110)
		case off <= 25:
			return step(5, 0xf3, 0b10110110)
		}
	}
	return Pulse{}, false
}

// Envelope returns every frame of cue c.
func Envelope(c Cue) []Pulse {
	var out []Pulse
	for off := 0; ; off++ {
		p, ok := Frame(c, off)
		if !ok {
			return out
		}
		out = append(out, p)
	}
}
