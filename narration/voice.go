package narration

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Cadence model. Per-word duration scales with word length; the slow
// setting stretches everything the way the original track was rendered.
const (
	perCharMs  = 55
	wordGapMs  = 70
	lineTailMs = 450
	slowFactor = 1.35

	basePitch = 130.0 // Hz, murmur fundamental
)

func stretch(ms int, slow bool) time.Duration {
	d := time.Duration(ms) * time.Millisecond
	if slow {
		d = time.Duration(float64(d) * slowFactor)
	}
	return d
}

// wordSpan is one voiced word followed by a silent gap, in samples
type wordSpan struct {
	voiced int
	gap    int
	pitch  float64
}

// lineSpans lays out the cadence of one line
func lineSpans(sr beep.SampleRate, line Line, slow bool) []wordSpan {
	words := line.Words()
	spans := make([]wordSpan, 0, len(words))
	for i, w := range words {
		voiced := sr.N(stretch(perCharMs*len(w), slow))
		if min := sr.N(stretch(2*perCharMs, slow)); voiced < min {
			voiced = min
		}
		gap := sr.N(stretch(wordGapMs, slow))
		if i == len(words)-1 {
			gap = sr.N(stretch(lineTailMs, slow))
		}

		// Intonation falls toward the end of the sentence
		t := 0.0
		if len(words) > 1 {
			t = float64(i) / float64(len(words)-1)
		}
		pitch := basePitch * (1.08 - 0.16*t)

		spans = append(spans, wordSpan{voiced: voiced, gap: gap, pitch: pitch})
	}
	return spans
}

// lineLen returns the total sample count of one rendered line
func lineLen(sr beep.SampleRate, line Line, slow bool) int {
	total := 0
	for _, s := range lineSpans(sr, line, slow) {
		total += s.voiced + s.gap
	}
	return total
}

// VoiceGenerator streams one line as a word-cadenced murmur
type VoiceGenerator struct {
	sr    beep.SampleRate
	spans []wordSpan
	total int

	pos   int
	word  int
	wpos  int
	phase float64
	mod   float64
}

// NewVoiceGenerator creates the generator for one script line
func NewVoiceGenerator(sr beep.SampleRate, line Line, slow bool) *VoiceGenerator {
	spans := lineSpans(sr, line, slow)
	total := 0
	for _, s := range spans {
		total += s.voiced + s.gap
	}
	return &VoiceGenerator{sr: sr, spans: spans, total: total}
}

// Len returns the total sample count of the line
func (g *VoiceGenerator) Len() int {
	return g.total
}

func (g *VoiceGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.word >= len(g.spans) {
			return i, i > 0
		}
		span := g.spans[g.word]

		var sample float64
		if g.wpos < span.voiced {
			// Raised-cosine envelope over the word, light vibrato,
			// first harmonics for a voiced timbre
			t := float64(g.wpos) / float64(span.voiced)
			env := 0.5 * (1 - math.Cos(2*math.Pi*t))

			g.mod += 5.5 / float64(g.sr)
			if g.mod >= 1.0 {
				g.mod -= 1.0
			}
			freq := span.pitch * (1 + 0.012*math.Sin(2*math.Pi*g.mod))

			g.phase += freq / float64(g.sr)
			if g.phase >= 1.0 {
				g.phase -= 1.0
			}

			sample = 0.5 * math.Sin(2*math.Pi*g.phase)
			sample += 0.22 * math.Sin(4*math.Pi*g.phase)
			sample += 0.09 * math.Sin(6*math.Pi*g.phase)
			sample *= env * 0.35
		}

		samples[i][0] = sample
		samples[i][1] = sample

		g.pos++
		g.wpos++
		if g.wpos >= span.voiced+span.gap {
			g.word++
			g.wpos = 0
			g.phase = 0
		}
	}
	return len(samples), true
}

func (g *VoiceGenerator) Err() error {
	return nil
}
