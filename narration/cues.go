package narration

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ChirpGenerator sweeps between two frequencies with an exponential
// amplitude decay, the building block of all cue sounds
type ChirpGenerator struct {
	sr       beep.SampleRate
	fromFreq float64
	toFreq   float64
	decay    float64
	total    int
	pos      int
	phase    float64
}

// NewChirpGenerator creates a finite chirp of the given duration
func NewChirpGenerator(sr beep.SampleRate, from, to float64, d time.Duration, decay float64) *ChirpGenerator {
	return &ChirpGenerator{
		sr:       sr,
		fromFreq: from,
		toFreq:   to,
		decay:    decay,
		total:    sr.N(d),
	}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.total)
		freq := g.fromFreq + (g.toFreq-g.fromFreq)*t
		amp := 0.3 * math.Exp(-g.decay*t)

		g.phase += freq / float64(g.sr)
		if g.phase >= 1.0 {
			g.phase -= 1.0
		}
		s := amp * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}

// CueFor returns the sound announcing a story beat, nil for beats
// without one
func CueFor(sr beep.SampleRate, beat string) beep.Streamer {
	switch beat {
	case "bite":
		// Sharp downward strike
		return NewChirpGenerator(sr, 320, 60, 250*time.Millisecond, 6)
	case "venom_spread":
		// Low warning rumble
		return NewChirpGenerator(sr, 90, 70, 500*time.Millisecond, 3)
	case "classify":
		// Rising detection sweep
		return NewChirpGenerator(sr, 400, 900, 300*time.Millisecond, 2)
	case "inject":
		return beep.Seq(
			NewChirpGenerator(sr, 700, 700, 90*time.Millisecond, 4),
			NewChirpGenerator(sr, 880, 880, 140*time.Millisecond, 4),
		)
	case "recover":
		// Settling dyad
		return beep.Seq(
			NewChirpGenerator(sr, 523, 523, 160*time.Millisecond, 3),
			NewChirpGenerator(sr, 659, 659, 300*time.Millisecond, 3),
		)
	default:
		return nil
	}
}
