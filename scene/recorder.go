package scene

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/amrisha/vmath"
)

// Keyframe is one (time, value) waypoint on a channel
// Pose keyframes carry six values (pos xyz, axis xyz), color keyframes four,
// scalar keyframes one; text keyframes carry the string instead
type Keyframe struct {
	T    float64   `toml:"t"`
	V    []float64 `toml:"v,omitempty"`
	Text string    `toml:"text,omitempty"`
}

// Recorder is a Scene backend that collects sampled waypoints per channel
// for export to a keyframe timeline file. Downstream tooling performs its
// own interpolation, so numeric channels are thinned to a sample interval,
// latest write per window. Text channels are discrete and cannot be
// interpolated: they skip thinning and record every value change
type Recorder struct {
	now        float64
	interval   float64
	channels   map[string][]Keyframe
	lastSample map[string]float64
}

// NewRecorder creates a recorder sampling each channel at most once per
// interval seconds; interval <= 0 keeps every write
func NewRecorder(interval float64) *Recorder {
	return &Recorder{
		interval:   interval,
		channels:   make(map[string][]Keyframe),
		lastSample: make(map[string]float64),
	}
}

// Advance moves the recorder clock; the driver calls this once per tick
func (r *Recorder) Advance(dt float64) {
	r.now += dt
}

// Clock returns the recorder's current time in seconds
func (r *Recorder) Clock() float64 {
	return r.now
}

func (r *Recorder) record(channel string, kf Keyframe) {
	kf.T = r.now
	frames := r.channels[channel]

	// Inside a sample window the latest write replaces the pending
	// keyframe instead of being dropped, so a one-shot write landing
	// just after a sample (a beat-entry label) still reaches the export
	if last, ok := r.lastSample[channel]; ok && r.interval > 0 && r.now-last < r.interval {
		frames[len(frames)-1] = kf
		return
	}

	r.channels[channel] = append(frames, kf)
	r.lastSample[channel] = r.now
}

func (r *Recorder) SetPose(id ObjectID, pos, axis vmath.Vec3F) {
	r.record(string(id)+".pose", Keyframe{
		V: []float64{pos.X, pos.Y, pos.Z, axis.X, axis.Y, axis.Z},
	})
}

func (r *Recorder) SetColor(id ObjectID, c Color) {
	r.record(string(id)+".color", Keyframe{
		V: []float64{c.R, c.G, c.B, c.A},
	})
}

func (r *Recorder) SetText(id ObjectID, text string) {
	channel := string(id) + ".text"
	frames := r.channels[channel]
	if len(frames) > 0 && frames[len(frames)-1].Text == text {
		return
	}
	r.channels[channel] = append(frames, Keyframe{T: r.now, Text: text})
}

func (r *Recorder) SetScalar(id ObjectID, name string, value float64) {
	r.record(string(id)+"."+name, Keyframe{V: []float64{value}})
}

// Channel returns the recorded keyframes for a channel, in time order
func (r *Recorder) Channel(name string) []Keyframe {
	return r.channels[name]
}

// ChannelNames returns all recorded channel names, sorted
func (r *Recorder) ChannelNames() []string {
	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// timelineDoc is the exported TOML document shape
type timelineDoc struct {
	Duration float64               `toml:"duration"`
	Channels map[string][]Keyframe `toml:"channels"`
}

// WriteFile marshals all channels to a TOML timeline at path
func (r *Recorder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("timeline export: %w", err)
	}
	defer f.Close()

	doc := timelineDoc{
		Duration: r.now,
		Channels: r.channels,
	}
	if err := toml.NewEncoder(f).Encode(doc); err != nil {
		return fmt.Errorf("timeline encode: %w", err)
	}
	return nil
}
