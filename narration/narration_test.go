package narration

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(48000)

// drain streams until exhaustion, returning the sample count and peak level
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if a := math.Abs(buf[i][0]); a > peak {
				peak = a
			}
		}
		total += n
		if !ok {
			return total, peak
		}
		if total > int(testRate)*600 {
			t.Fatal("streamer did not terminate")
		}
	}
}

func TestDefaultScript(t *testing.T) {
	script := DefaultScript()
	if len(script) != 9 {
		t.Fatalf("script has %d lines, want 9", len(script))
	}
	text := script.Text()
	for _, phrase := range []string{"venomous strike", "Amrisha", "antidote", "neutralized"} {
		if !strings.Contains(text, phrase) {
			t.Errorf("script text missing %q", phrase)
		}
	}
}

func TestVoiceGeneratorLength(t *testing.T) {
	line := Line{Text: "But Amrisha is ready."}
	g := NewVoiceGenerator(testRate, line, false)

	got, peak := drain(t, g)
	if got != g.Len() {
		t.Errorf("streamed %d samples, Len reports %d", got, g.Len())
	}
	if peak == 0 {
		t.Error("line rendered silent")
	}
	if peak > 1.0 {
		t.Errorf("peak %f clips", peak)
	}
}

func TestSlowStretchesCadence(t *testing.T) {
	line := Line{Text: "Venom neutralized. Life preserved."}
	fast := NewVoiceGenerator(testRate, line, false)
	slow := NewVoiceGenerator(testRate, line, true)
	if slow.Len() <= fast.Len() {
		t.Errorf("slow length %d not longer than normal %d", slow.Len(), fast.Len())
	}
}

func TestTrackLengthIsSumOfLines(t *testing.T) {
	script := DefaultScript()
	track := NewTrack(testRate, script, true)

	want := 0
	for _, line := range script {
		want += lineLen(testRate, line, true)
	}
	if track.Len() != want {
		t.Errorf("track Len = %d, want %d", track.Len(), want)
	}

	got, _ := drain(t, track)
	if got != want {
		t.Errorf("track streamed %d samples, want %d", got, want)
	}

	// Exhausted track reports done
	if n, ok := track.Stream(make([][2]float64, 16)); n != 0 || ok {
		t.Errorf("drained track returned n=%d ok=%v", n, ok)
	}
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "narration.wav")
	script := Script{{Text: "A venomous strike."}}

	if err := WriteWAV(path, 44100, script, false); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	// 16-bit stereo data plus the header
	samples := lineLen(beep.SampleRate(44100), script[0], false)
	dataBytes := int64(samples) * 4
	if info.Size() < dataBytes || info.Size() > dataBytes+512 {
		t.Errorf("wav size %d, want about %d", info.Size(), dataBytes)
	}
}

func TestWriteWAVRejectsLowSampleRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := WriteWAV(path, 4000, DefaultScript(), false); err == nil {
		t.Error("sample rate 4000 accepted")
	}
}

func TestCueMapping(t *testing.T) {
	withCue := []string{"bite", "venom_spread", "classify", "inject", "recover"}
	for _, beat := range withCue {
		cue := CueFor(testRate, beat)
		if cue == nil {
			t.Errorf("beat %q has no cue", beat)
			continue
		}
		n, peak := drain(t, cue)
		if n == 0 || peak == 0 {
			t.Errorf("beat %q cue is silent (%d samples, peak %f)", beat, n, peak)
		}
	}
	for _, beat := range []string{"idle", "approach", "done"} {
		if CueFor(testRate, beat) != nil {
			t.Errorf("beat %q unexpectedly has a cue", beat)
		}
	}
}

// TestPlayerWithoutSpeaker covers the guard path: every entry point is a
// no-op until Initialize succeeds, and Cleanup stays idempotent. The
// speaker-open path needs an audio device and is exercised by `play --sound`
func TestPlayerWithoutSpeaker(t *testing.T) {
	p := NewPlayer(44100)
	p.PlayScript(DefaultScript(), true)
	p.PlayCue("bite")
	if p.mixer.Len() != 0 {
		t.Errorf("uninitialized player queued %d streamers", p.mixer.Len())
	}
	p.Cleanup()
	p.Cleanup()
}

func TestChirpDuration(t *testing.T) {
	g := NewChirpGenerator(testRate, 320, 60, 250*time.Millisecond, 6)
	n, _ := drain(t, g)
	if want := testRate.N(250 * time.Millisecond); n != want {
		t.Errorf("chirp streamed %d samples, want %d", n, want)
	}
}
