package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

const (
	// CPUClock is the NTSC CPU frequency driving the pulse timers.
	CPUClock = 1789773.0
	// FrameRate is the display refresh rate; the sequencer steps once per frame.
	FrameRate = 60

	DefaultSampleRate = beep.SampleRate(44100)
)

// Frequency returns the tone a pulse register image produces, or 0 for
// timers below 8, which silence the real channel.
func (p Pulse) Frequency() float64 {
	t := p.Timer()
	if t < 8 {
		return 0
	}
	return CPUClock / (16 * (float64(t) + 1))
}

// pulseStream renders a list of register images, one frame each.
type pulseStream struct {
	frames   []Pulse
	perFrame int
	rate     beep.SampleRate
	pos      int
	phase    float64
}

// Stream renders cue c as a square-wave streamer.
func Stream(c Cue, rate beep.SampleRate) beep.Streamer {
	return &pulseStream{
		frames:   Envelope(c),
		perFrame: rate.N(time.Second / FrameRate),
		rate:     rate,
	}
}

func (s *pulseStream) Stream(samples [][2]float64) (n int, ok bool) {
	total := len(s.frames) * s.perFrame
	for i := range samples {
		if s.pos >= total {
			return i, i > 0
		}
		p := s.frames[s.pos/s.perFrame]

		var val float64
		if f := p.Frequency(); f > 0 {
			if s.phase < p.Duty() {
				val = p.Volume()
			} else {
				val = -p.Volume()
			}
			s.phase += f / float64(s.rate)
			s.phase -= float64(int(s.phase))
		}

		samples[i][0] = val * 0.5
		samples[i][1] = val * 0.5
		s.pos++
	}
	return len(samples), true
}

func (s *pulseStream) Err() error { return nil }

// Duration returns how long cue c sounds.
func Duration(c Cue) time.Duration {
	return time.Duration(len(Envelope(c))) * time.Second / FrameRate
}

// ExportWAV encodes cue c as 16-bit stereo WAV.
func ExportWAV(w io.WriteSeeker, c Cue, rate beep.SampleRate) error {
	if c == None {
		return fmt.Errorf("audio: export: nothing to render for %s", c)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, Stream(c, rate), format); err != nil {
		return fmt.Errorf("audio: export %s: %w", c, err)
	}
	return nil
}
