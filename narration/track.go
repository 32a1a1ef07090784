package narration

import (
	"fmt"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Track is the full narration as one finite streamer
type Track struct {
	sr    beep.SampleRate
	lines []*VoiceGenerator
	cur   int
	total int
}

// NewTrack renders the script at the given sample rate
func NewTrack(sr beep.SampleRate, script Script, slow bool) *Track {
	t := &Track{sr: sr}
	for _, line := range script {
		g := NewVoiceGenerator(sr, line, slow)
		t.lines = append(t.lines, g)
		t.total += g.Len()
	}
	return t
}

// Len returns the track length in samples
func (t *Track) Len() int {
	return t.total
}

// Format returns the stream format of the track
func (t *Track) Format() beep.Format {
	return beep.Format{SampleRate: t.sr, NumChannels: 2, Precision: 2}
}

func (t *Track) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && t.cur < len(t.lines) {
		m, _ := t.lines[t.cur].Stream(samples[n:])
		n += m
		if m == 0 {
			t.cur++
		}
	}
	return n, n > 0
}

func (t *Track) Err() error {
	return nil
}

// WriteWAV renders the script and writes it to path
func WriteWAV(path string, sampleRate int, script Script, slow bool) error {
	if sampleRate < 8000 {
		return fmt.Errorf("narration: sample rate %d too low", sampleRate)
	}
	track := NewTrack(beep.SampleRate(sampleRate), script, slow)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("narration: %w", err)
	}
	if err := wav.Encode(out, track, track.Format()); err != nil {
		out.Close()
		return fmt.Errorf("narration: encode: %w", err)
	}
	return out.Close()
}
