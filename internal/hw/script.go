package hw

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilearcade/internal/core"
)

// ScriptStep holds buttons for Hold frames starting at frame At.
type ScriptStep struct {
	At      int      `yaml:"at"`
	Hold    int      `yaml:"hold"`
	Buttons []string `yaml:"buttons"`

	mask core.Buttons
}

// Script is the YAML form of a scripted controller.
type Script struct {
	Frames []ScriptStep `yaml:"frames"`
}

// ScriptedInput replays a Script, one Poll per frame.
type ScriptedInput struct {
	steps []ScriptStep
	frame int
}

// NewScriptedInput validates a script and resolves button names.
func NewScriptedInput(s Script) (*ScriptedInput, error) {
	steps := make([]ScriptStep, len(s.Frames))
	for i, st := range s.Frames {
		if st.At < 0 {
			return nil, fmt.Errorf("hw: script step %d: negative frame %d", i, st.At)
		}
		mask, err := core.ParseButtons(st.Buttons)
		if err != nil {
			return nil, fmt.Errorf("hw: script step %d: %w", i, err)
		}
		if st.Hold <= 0 {
			st.Hold = 1
		}
		st.mask = mask
		steps[i] = st
	}
	return &ScriptedInput{steps: steps}, nil
}

// ParseScript reads a YAML script.
func ParseScript(r io.Reader) (*ScriptedInput, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return nil, fmt.Errorf("hw: parse script: %w", err)
	}
	return NewScriptedInput(s)
}

// LoadScript reads a YAML script from a file.
func LoadScript(path string) (*ScriptedInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hw: open script: %w", err)
	}
	defer f.Close()
	return ParseScript(f)
}

// Poll returns the buttons held at the current frame and advances.
func (s *ScriptedInput) Poll() core.Buttons {
	b := s.At(s.frame)
	s.frame++
	return b
}

// At returns the buttons held at frame f without advancing.
func (s *ScriptedInput) At(f int) core.Buttons {
	var b core.Buttons
	for _, st := range s.steps {
		if f >= st.At && f < st.At+st.Hold {
			b |= st.mask
		}
	}
	return b
}

// Len returns the first frame after which no step is active.
func (s *ScriptedInput) Len() int {
	end := 0
	for _, st := range s.steps {
		if e := st.At + st.Hold; e > end {
			end = e
		}
	}
	return end
}
