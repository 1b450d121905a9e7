package host

import (
	"encoding/binary"
	"math"

	"github.com/ebitengine/oto/v3"
)

// ToneSink is the capability the run loop uses to drive the buzzer.
// Start and Stop are edge-triggered: the loop calls them only when the
// machine's tone signal changes.
type ToneSink interface {
	Start()
	Stop()
}

// Muted is a ToneSink that produces no sound.
type Muted struct{}

func (Muted) Start() {}
func (Muted) Stop()  {}

const (
	sampleRate = 44100
	toneHz     = 440
)

// Tone plays a square wave through the default audio device.
type Tone struct {
	player *oto.Player
}

// NewTone opens the audio device. It blocks until the device is ready.
func NewTone() (*Tone, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &Tone{player: ctx.NewPlayer(&square{})}, nil
}

func (t *Tone) Start() { t.player.Play() }
func (t *Tone) Stop()  { t.player.Pause() }

// square generates the buzzer waveform, alternating half-periods of
// +0.5 and -0.5.
type square struct {
	phase float32
}

func (s *square) Read(p []byte) (int, error) {
	n := len(p) &^ 3 // whole float32 samples
	for i := 0; i < n; i += 4 {
		v := float32(0.5)
		if s.phase >= 0.5 {
			v = -0.5
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(v))
		s.phase += toneHz / float32(sampleRate)
		if s.phase >= 1 {
			s.phase--
		}
	}
	return n, nil
}
