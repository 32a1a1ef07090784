package particle

import (
	"sync/atomic"

	"github.com/lixenwraith/amrisha/vmath"
)

// SentinelPos is the off-stage parking position for inactive slots
// Renderers treat anything at the sentinel as not present
var SentinelPos = vmath.Vec3F{X: 100, Y: 100, Z: 100}

// lifeEpsilon absorbs accumulated float error in lifetime countdown so a
// particle emitted with life N*dt retires on exactly tick N
const lifeEpsilon = 1e-9

// Particle is one pre-allocated slot in the pool
// Inactive slots keep their memory; "destroyed" means parked at the sentinel
type Particle struct {
	Pos     vmath.Vec3F
	Vel     vmath.Vec3F
	Life    float64 // remaining seconds
	Opacity float64
	Active  bool
}

// Config holds emission and integration parameters
// Band values are multipliers applied to Speed / Lifetime at emission
type Config struct {
	Capacity  int
	Speed     float64 // base speed, units/sec
	Lifetime  float64 // base lifetime, seconds
	Damping   float64 // isotropic velocity decay, 1/sec
	PosJitter float64 // spatial spread around emission origin
	DirJitter float64 // directional spread around target vector

	SpeedBandLo float64
	SpeedBandHi float64
	LifeBandLo  float64
	LifeBandHi  float64
}

// DefaultConfig mirrors the demo's venom particle tuning
func DefaultConfig() Config {
	return Config{
		Capacity:    200,
		Speed:       1.2,
		Lifetime:    3.5,
		Damping:     0.05,
		PosJitter:   0.04,
		DirJitter:   0.2,
		SpeedBandLo: 0.8,
		SpeedBandHi: 1.4,
		LifeBandLo:  0.6,
		LifeBandHi:  1.4,
	}
}

// Pool is a fixed-capacity arena of particle slots
// Emission beyond capacity is silently dropped, never an error
type Pool struct {
	cfg   Config
	slots []Particle

	activeCount int

	// Telemetry, readable from outside the tick routine
	statEmitted atomic.Int64
	statRetired atomic.Int64
	statDropped atomic.Int64
}

func NewPool(cfg Config) *Pool {
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	p := &Pool{
		cfg:   cfg,
		slots: make([]Particle, cfg.Capacity),
	}
	for i := range p.slots {
		p.slots[i].Pos = SentinelPos
	}
	return p
}

func (p *Pool) Capacity() int {
	return p.cfg.Capacity
}

func (p *Pool) ActiveCount() int {
	return p.activeCount
}

// Emit activates up to count inactive slots around origin, aimed along dir
// Returns the number actually emitted; shortfall on pool exhaustion is
// counted as dropped
func (p *Pool) Emit(origin, dir vmath.Vec3F, count int, rng *vmath.FastRand) int {
	if count <= 0 {
		return 0
	}

	emitted := 0
	for i := range p.slots {
		if emitted >= count {
			break
		}
		slot := &p.slots[i]
		if slot.Active {
			continue
		}

		slot.Pos = vmath.Vec3F{
			X: origin.X + rng.Jitter(p.cfg.PosJitter),
			Y: origin.Y + rng.Jitter(p.cfg.PosJitter),
			Z: origin.Z + rng.Jitter(p.cfg.PosJitter),
		}
		jittered := vmath.Vec3F{
			X: dir.X + rng.Jitter(p.cfg.DirJitter),
			Y: dir.Y + rng.Jitter(p.cfg.DirJitter),
			Z: dir.Z + rng.Jitter(p.cfg.DirJitter),
		}
		speed := p.cfg.Speed * rng.Range(p.cfg.SpeedBandLo, p.cfg.SpeedBandHi)
		slot.Vel = vmath.V3FScale(vmath.V3FNormalize(jittered), speed)
		slot.Life = p.cfg.Lifetime * rng.Range(p.cfg.LifeBandLo, p.cfg.LifeBandHi)
		slot.Opacity = 1.0
		slot.Active = true

		emitted++
	}

	p.activeCount += emitted
	p.statEmitted.Add(int64(emitted))
	if emitted < count {
		p.statDropped.Add(int64(count - emitted))
	}
	return emitted
}

// Step advances every active slot by dt: explicit Euler position update,
// isotropic velocity damping, lifetime countdown, opacity recompute,
// retirement at end of life
func (p *Pool) Step(dt float64) {
	for i := range p.slots {
		slot := &p.slots[i]
		if !slot.Active {
			continue
		}

		slot.Pos = vmath.V3FAdd(slot.Pos, vmath.V3FScale(slot.Vel, dt))
		slot.Vel = vmath.V3FDampDt(slot.Vel, p.cfg.Damping, dt)
		slot.Life -= dt
		slot.Opacity = vmath.Clamp01(slot.Life / p.cfg.Lifetime)

		if slot.Life <= lifeEpsilon {
			p.retire(slot)
		}
	}
}

// Drain applies an extra lifetime decay to all active slots, used during
// the recovery beat to clear remaining venom faster
func (p *Pool) Drain(dt, rate float64) {
	for i := range p.slots {
		slot := &p.slots[i]
		if !slot.Active {
			continue
		}
		slot.Life -= dt * rate
		if slot.Life <= lifeEpsilon {
			p.retire(slot)
		}
	}
}

// retire deactivates exactly once: callers only reach it for active slots
func (p *Pool) retire(slot *Particle) {
	slot.Active = false
	slot.Life = 0
	slot.Opacity = 0
	slot.Vel = vmath.Vec3F{}
	slot.Pos = SentinelPos
	p.activeCount--
	p.statRetired.Add(1)
}

// ForEachActive visits active slots in stable index order
func (p *Pool) ForEachActive(fn func(i int, pt *Particle)) {
	for i := range p.slots {
		if p.slots[i].Active {
			fn(i, &p.slots[i])
		}
	}
}

// Slot exposes a slot by handle for tests and renderers
func (p *Pool) Slot(i int) *Particle {
	return &p.slots[i]
}

// Stats returns cumulative emitted, retired, dropped counts
func (p *Pool) Stats() (emitted, retired, dropped int64) {
	return p.statEmitted.Load(), p.statRetired.Load(), p.statDropped.Load()
}
