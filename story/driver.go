// Package story implements the narrative driver: a forward-only beat
// machine plus a particle integrator, stepped on a fixed timestep and
// writing into a scene sink. All state lives on the Driver struct; ticks
// are deterministic for a given config and seed
package story

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/amrisha/asset"
	"github.com/lixenwraith/amrisha/config"
	"github.com/lixenwraith/amrisha/fsm"
	"github.com/lixenwraith/amrisha/particle"
	"github.com/lixenwraith/amrisha/scene"
	"github.com/lixenwraith/amrisha/status"
	"github.com/lixenwraith/amrisha/vmath"
)

// Story beat names, matching the built-in definition
const (
	BeatIdle        = "idle"
	BeatApproach    = "approach"
	BeatBite        = "bite"
	BeatVenomSpread = "venom_spread"
	BeatClassify    = "classify"
	BeatInject      = "inject"
	BeatRecover     = "recover"
)

// Driver owns all narrative state and advances it one tick at a time
type Driver struct {
	cfg     config.Config
	machine *fsm.Machine[*Driver]
	pool    *particle.Pool
	rng     *vmath.FastRand
	sink    scene.Scene

	clock             float64 // simulation seconds since Start
	dt                float64 // current tick size, visible to update actions
	detectionDeadline float64 // simulation-clock deadline set on venom_spread entry
	heartRate         float64
	classification    string

	// Particle slots active on the previous tick; retired slots get one
	// final off-stage write so renderers drop them
	prevActive []bool

	storyDef []byte
	tickHook func(dt float64)
	beatHook func(beat string)

	reg           *status.Registry
	statTicks     *atomic.Int64
	statBeats     *atomic.Int64
	statActive    *atomic.Int64
	statEmitted   *atomic.Int64
	statRetired   *atomic.Int64
	statDropped   *atomic.Int64
	statHeartRate *status.AtomicFloat
	statBeatName  *status.AtomicString
}

// Option customizes driver construction
type Option func(*Driver)

// WithStatus wires run telemetry into a metrics registry
func WithStatus(reg *status.Registry) Option {
	return func(d *Driver) { d.reg = reg }
}

// WithTickHook runs fn after every completed tick, e.g. to advance a
// keyframe recorder clock
func WithTickHook(fn func(dt float64)) Option {
	return func(d *Driver) { d.tickHook = fn }
}

// WithBeatHook runs fn on every beat entry, e.g. to play audio cues
func WithBeatHook(fn func(beat string)) Option {
	return func(d *Driver) { d.beatHook = fn }
}

// WithStoryConfig replaces the built-in story definition
func WithStoryConfig(def []byte) Option {
	return func(d *Driver) { d.storyDef = def }
}

// New builds a driver over cfg writing into sink
// The machine is loaded and validated but not started; call Start
func New(cfg config.Config, sink scene.Scene, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Driver{
		cfg:  cfg,
		sink: sink,
		rng:  vmath.NewFastRand(cfg.Seed),
		pool: particle.NewPool(particle.Config{
			Capacity:    cfg.Particles.PoolCapacity,
			Speed:       cfg.Particles.Speed,
			Lifetime:    cfg.Particles.Lifetime,
			Damping:     cfg.Particles.Damping,
			PosJitter:   0.04,
			DirJitter:   0.2,
			SpeedBandLo: 0.8,
			SpeedBandHi: 1.4,
			LifeBandLo:  0.6,
			LifeBandHi:  1.4,
		}),
		storyDef: []byte(asset.DefaultStoryConfig),
	}
	d.prevActive = make([]bool, cfg.Particles.PoolCapacity)

	for _, opt := range opts {
		opt(d)
	}

	if d.reg != nil {
		d.statTicks = d.reg.Ints.Get("story.ticks")
		d.statBeats = d.reg.Ints.Get("story.beats_entered")
		d.statActive = d.reg.Ints.Get("particles.active")
		d.statEmitted = d.reg.Ints.Get("particles.emitted")
		d.statRetired = d.reg.Ints.Get("particles.retired")
		d.statDropped = d.reg.Ints.Get("particles.dropped")
		d.statHeartRate = d.reg.Floats.Get("vitals.heart_rate")
		d.statBeatName = d.reg.Strings.Get("story.beat")
	}

	m := fsm.NewMachine[*Driver]()
	d.registerGuards(m)
	d.registerActions(m)
	if err := m.LoadConfig(d.storyDef); err != nil {
		return nil, fmt.Errorf("story definition: %w", err)
	}
	d.machine = m

	return d, nil
}

// Start sets up the scene and enters the first beat
func (d *Driver) Start() error {
	d.clock = 0
	d.heartRate = d.cfg.Vitals.BaselineBPM
	d.initScene()
	if err := d.machine.Init(d); err != nil {
		return err
	}
	d.noteBeatEntered()
	return nil
}

// Tick advances the simulation by dt seconds: beat machine first, then the
// particle integrator, then scene synchronization
func (d *Driver) Tick(dt float64) {
	if d.machine.Done() {
		return
	}

	d.clock += dt
	d.dt = dt

	before := d.machine.Active()
	d.machine.Update(d, time.Duration(dt*float64(time.Second)))
	if d.machine.Active() != before {
		d.noteBeatEntered()
	}

	d.pool.Step(dt)
	d.syncParticles()

	if d.statTicks != nil {
		d.statTicks.Add(1)
		d.statActive.Store(int64(d.pool.ActiveCount()))
		emitted, retired, dropped := d.pool.Stats()
		d.statEmitted.Store(emitted)
		d.statRetired.Store(retired)
		d.statDropped.Store(dropped)
	}

	if d.tickHook != nil {
		d.tickHook(dt)
	}
}

// Play runs the fixed-rate loop until the story finishes or ctx cancels
func (d *Driver) Play(ctx context.Context) error {
	dt := d.cfg.Dt()
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	maxTicks := d.cfg.Render.MaxTicks
	ticks := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Tick(dt)
			ticks++
			if d.Done() {
				return nil
			}
			if maxTicks > 0 && ticks >= maxTicks {
				return nil
			}
		}
	}
}

// Done reports whether the story reached its terminal transition
func (d *Driver) Done() bool {
	return d.machine.Done()
}

// Beat returns the active beat name; "idle" before Start, "" when done
func (d *Driver) Beat() string {
	if d.machine.Active() == fsm.StateNone && !d.machine.Done() {
		return BeatIdle
	}
	return d.machine.ActiveName()
}

// Clock returns simulation seconds since Start
func (d *Driver) Clock() float64 {
	return d.clock
}

// Pool exposes the particle pool for renderers and tests
func (d *Driver) Pool() *particle.Pool {
	return d.pool
}

// Classification returns the classify result, "" before classification
func (d *Driver) Classification() string {
	return d.classification
}

// noteBeatEntered records telemetry and fires the beat hook
func (d *Driver) noteBeatEntered() {
	beat := d.machine.ActiveName()
	if beat == "" {
		return
	}
	if d.statBeats != nil {
		d.statBeats.Add(1)
		d.statBeatName.Set(beat)
	}
	if d.beatHook != nil {
		d.beatHook(beat)
	}
}

// syncParticles pushes active slot poses into the scene and parks slots
// that retired since the previous tick
func (d *Driver) syncParticles() {
	seen := make(map[int]bool, d.pool.ActiveCount())
	d.pool.ForEachActive(func(i int, pt *particle.Particle) {
		seen[i] = true
		d.sink.SetPose(scene.Particle(i), pt.Pos, vmath.Vec3F{})
		c := scene.ColorVenom
		c.A = pt.Opacity
		d.sink.SetColor(scene.Particle(i), c)
	})

	for i, was := range d.prevActive {
		if was && !seen[i] {
			d.sink.SetPose(scene.Particle(i), particle.SentinelPos, vmath.Vec3F{})
			d.sink.SetColor(scene.Particle(i), scene.Color{})
		}
		d.prevActive[i] = seen[i]
	}
}
