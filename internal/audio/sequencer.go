package audio

// Sequencer steps one cue per frame. Playing a cue replaces whatever was
// sounding and restarts at frame zero.
type Sequencer struct {
	cue  Cue
	off  int
	last Pulse
}

// NewSequencer creates a silent sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Play starts cue c from its first frame.
func (s *Sequencer) Play(c Cue) {
	s.cue = c
	s.off = 0
}

// IsPlaying reports whether a cue is still sounding.
func (s *Sequencer) IsPlaying() bool {
	return s.cue != None
}

// Current returns the cue in progress.
func (s *Sequencer) Current() Cue {
	return s.cue
}

// Tick advances one frame, latching the register image for that frame.
func (s *Sequencer) Tick() {
	if s.cue == None {
		return
	}
	p, ok := Frame(s.cue, s.off)
	if !ok {
		s.cue = None
		s.last = Pulse{}
		return
	}
	s.last = p
	s.off++
}

// Registers returns the image written by the most recent Tick.
func (s *Sequencer) Registers() Pulse {
	return s.last
}
