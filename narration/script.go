// Package narration synthesizes the demo voice-over and the per-beat
// cue sounds. The voice is not speech: each script line becomes a
// murmured tone contour whose cadence follows the word lengths, which
// is enough to pace the narrative during playback and to export a
// placeholder narration track.
package narration

import "strings"

// Line is one sentence of the voice-over
type Line struct {
	Text string
}

// Script is the ordered voice-over text
type Script []Line

// DefaultScript returns the demo narration
func DefaultScript() Script {
	return Script{
		{Text: "A venomous strike."},
		{Text: "Poison begins spreading silently through the bloodstream."},
		{Text: "But Amrisha is ready."},
		{Text: "The smart, non-invasive wearable detects physiological signs of poisoning."},
		{Text: "Amrisha deploys nanodiamonds into the bloodstream."},
		{Text: "Using quantum sensing, they identify the exact toxin."},
		{Text: "Then, a tailored antidote is delivered from the internal reservoir."},
		{Text: "Venom neutralized. Life preserved."},
		{Text: "Amrisha. Smart. Quantum. Life-saving."},
	}
}

// Words splits the line on whitespace
func (l Line) Words() []string {
	return strings.Fields(l.Text)
}

// Text joins the script back into a single paragraph
func (s Script) Text() string {
	parts := make([]string, len(s))
	for i, l := range s {
		parts[i] = l.Text
	}
	return strings.Join(parts, " ")
}
