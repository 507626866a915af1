// Package audio plays short synthesized cues for simulation events.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/throwsim"
)

const (
	cueVolume = 0.4
	// clearInterval is the pitch ratio between the two notes of the clear
	// cue.
	clearInterval = 0.75
)

// Cues is an EventStore that turns simulation events into sounds: a short
// tone per shot, pitched down for heavier projectiles, and a falling
// two-note cue when projectiles are cleared. Removals are silent.
type Cues struct {
	rate     beep.SampleRate
	tone     float64
	duration time.Duration
	play     func(beep.Streamer)
	log      *slog.Logger
}

// New returns Cues that hand every sound to play.
func New(cfg throwsim.AudioConfig, play func(beep.Streamer), log *slog.Logger) *Cues {
	if log == nil {
		log = slog.Default()
	}
	return &Cues{
		rate:     beep.SampleRate(cfg.SampleRate),
		tone:     cfg.Tone,
		duration: time.Duration(cfg.Millis) * time.Millisecond,
		play:     play,
		log:      log,
	}
}

// Open initializes the speaker at the configured sample rate and returns
// Cues playing through it.
func Open(cfg throwsim.AudioConfig, log *slog.Logger) (*Cues, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("throwsim: audio: %w", err)
	}
	return New(cfg, func(s beep.Streamer) { speaker.Play(s) }, log), nil
}

// Close stops every playing cue.
func (c *Cues) Close() {
	speaker.Clear()
}

// EmitEvent plays the cue for e, if it has one.
func (c *Cues) EmitEvent(e throwsim.SimulationEvent) {
	s, err := c.Sound(e)
	if err != nil {
		c.log.Warn("audio cue", "event", e.Type.String(), "err", err)
		return
	}
	if s != nil {
		c.play(s)
	}
}

// Sound builds the cue for e. It returns nil for events without a cue.
func (c *Cues) Sound(e throwsim.SimulationEvent) (beep.Streamer, error) {
	switch e.Type {
	case throwsim.EventProjectileFired:
		return c.note(c.tone*shotPitch(e.Mass), c.duration)
	case throwsim.EventProjectilesCleared:
		if e.Count == 0 {
			return nil, nil
		}
		hi, err := c.note(c.tone, c.duration)
		if err != nil {
			return nil, err
		}
		lo, err := c.note(c.tone*clearInterval, c.duration)
		if err != nil {
			return nil, err
		}
		return beep.Seq(hi, lo), nil
	}
	return nil, nil
}

// shotPitch scales the tone by the inverse square root of the mass
// relative to 2 kg, clamped to two octaves either way.
func shotPitch(mass float64) float64 {
	if mass <= 0 {
		return 1
	}
	return min(max(math.Sqrt(2/mass), 0.25), 4)
}

func (c *Cues) note(freq float64, d time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(c.rate, freq)
	if err != nil {
		return nil, err
	}
	s := newDecay(beep.Take(c.rate.N(d), tone), c.rate.N(d))
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(cueVolume)}, nil
}

// decay fades a stream linearly to silence over its length.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func newDecay(s beep.Streamer, total int) beep.Streamer {
	return &decay{streamer: s, total: max(total, 1)}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := max(1-float64(d.position)/float64(d.total), 0)
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }
