package narration

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player routes narration and beat cues to the speaker
type Player struct {
	mu          sync.Mutex
	sr          beep.SampleRate
	mixer       *beep.Mixer
	voice       *beep.Ctrl
	initialized bool
}

// NewPlayer creates an uninitialized player
func NewPlayer(sampleRate int) *Player {
	return &Player{
		sr:    beep.SampleRate(sampleRate),
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlayScript starts the voice-over in the background
func (p *Player) PlayScript(script Script, slow bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	ctrl := &beep.Ctrl{Streamer: NewTrack(p.sr, script, slow)}
	p.voice = ctrl
	p.mixer.Add(ctrl)
}

// PlayCue plays the sound for a story beat, if it has one
func (p *Player) PlayCue(beat string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if cue := CueFor(p.sr, beat); cue != nil {
		p.mixer.Add(cue)
	}
}

// Cleanup silences everything and closes the speaker
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if p.voice != nil {
		p.voice.Paused = true
	}
	p.mixer.Clear()
	speaker.Close()
	p.initialized = false
}
