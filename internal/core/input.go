package core

import (
	"fmt"
	"strings"
)

// Buttons is the 8-bit controller bitmask returned by an input poll.
type Buttons uint8

const (
	ButtonRight  Buttons = 0x01
	ButtonLeft   Buttons = 0x02
	ButtonDown   Buttons = 0x04
	ButtonUp     Buttons = 0x08
	ButtonStart  Buttons = 0x10
	ButtonSelect Buttons = 0x20
	ButtonB      Buttons = 0x40
	ButtonA      Buttons = 0x80
)

var buttonNames = []struct {
	b    Buttons
	name string
}{
	{ButtonRight, "right"},
	{ButtonLeft, "left"},
	{ButtonDown, "down"},
	{ButtonUp, "up"},
	{ButtonStart, "start"},
	{ButtonSelect, "select"},
	{ButtonB, "b"},
	{ButtonA, "a"},
}

// Has returns true if every bit of mask is held.
func (b Buttons) Has(mask Buttons) bool {
	return b&mask == mask && mask != 0
}

// With returns b with mask held.
func (b Buttons) With(mask Buttons) Buttons {
	return b | mask
}

// String returns a "+"-joined list of held buttons, or "none".
func (b Buttons) String() string {
	if b == 0 {
		return "none"
	}
	var parts []string
	for _, bn := range buttonNames {
		if b&bn.b != 0 {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseButton converts a button name (case-insensitive) to its bit.
func ParseButton(name string) (Buttons, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, bn := range buttonNames {
		if bn.name == n {
			return bn.b, nil
		}
	}
	return 0, fmt.Errorf("core: unknown button %q", name)
}

// ParseButtons converts a list of names into a combined mask.
func ParseButtons(names []string) (Buttons, error) {
	var b Buttons
	for _, n := range names {
		bit, err := ParseButton(n)
		if err != nil {
			return 0, err
		}
		b |= bit
	}
	return b, nil
}
