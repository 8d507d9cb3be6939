// Package hostspeaker plays sound cues on the host's audio device. It is kept
// apart from package audio so that only the binary links the device driver.
package hostspeaker

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tilearcade/internal/audio"
)

// Speaker is a Sequencer that also plays each cue on the host's sound device.
type Speaker struct {
	*audio.Sequencer
	rate beep.SampleRate
}

// New opens the host audio device.
func New(rate beep.SampleRate) (*Speaker, error) {
	if err := speaker.Init(rate, rate.N(time.Second/30)); err != nil {
		return nil, fmt.Errorf("hostspeaker: init: %w", err)
	}
	return &Speaker{Sequencer: audio.NewSequencer(), rate: rate}, nil
}

// Play restarts the sequencer and replaces whatever the device is playing.
func (s *Speaker) Play(c audio.Cue) {
	s.Sequencer.Play(c)
	speaker.Clear()
	if c != audio.None {
		speaker.Play(audio.Stream(c, s.rate))
	}
}

// Close stops playback.
func (s *Speaker) Close() {
	speaker.Clear()
}
