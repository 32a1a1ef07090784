package story

import (
	"fmt"
	"time"

	"github.com/lixenwraith/amrisha/fsm"
	"github.com/lixenwraith/amrisha/scene"
	"github.com/lixenwraith/amrisha/vmath"
)

// registerGuards populates the machine's guard registry
// Beat durations come from the driver config, so a story definition only
// names the condition, never the number
func (d *Driver) registerGuards(m *fsm.Machine[*Driver]) {
	m.RegisterGuard("ApproachComplete", func(d *Driver, m *fsm.Machine[*Driver]) bool {
		return m.Elapsed() >= d.cfg.Story.ApproachTime
	})
	m.RegisterGuard("BiteComplete", func(d *Driver, m *fsm.Machine[*Driver]) bool {
		return m.Elapsed() >= d.cfg.Story.BiteTime
	})
	m.RegisterGuard("DetectionElapsed", func(d *Driver, m *fsm.Machine[*Driver]) bool {
		return d.clock >= d.detectionDeadline
	})
	m.RegisterGuard("ClassifyComplete", func(d *Driver, m *fsm.Machine[*Driver]) bool {
		return m.Elapsed() >= d.cfg.Story.ClassificationTime
	})
	m.RegisterGuard("InjectComplete", func(d *Driver, m *fsm.Machine[*Driver]) bool {
		return vmath.Progress(m.Elapsed(), d.cfg.Story.InjectionTime) >= 1
	})
	m.RegisterGuard("RecoverComplete", func(d *Driver, m *fsm.Machine[*Driver]) bool {
		return vmath.Progress(m.Elapsed(), d.cfg.Story.RecoveryTime) >= 1
	})

	// For user-supplied story definitions with explicit timings
	m.RegisterGuardFactory("After", func(args map[string]any) (fsm.GuardFunc[*Driver], error) {
		secs, ok := args["seconds"].(float64)
		if !ok {
			return nil, fmt.Errorf("guard After requires float 'seconds'")
		}
		dur := time.Duration(secs * float64(time.Second))
		return func(d *Driver, m *fsm.Machine[*Driver]) bool {
			return m.TimeInState() >= dur
		}, nil
	})
}

// registerActions populates the machine's action registry
func (d *Driver) registerActions(m *fsm.Machine[*Driver]) {
	m.RegisterAction("AnimateApproach", func(d *Driver, _ map[string]any) {
		p := vmath.Progress(d.machine.Elapsed(), d.cfg.Story.ApproachTime)
		headX := SnakeStartX + SnakeTravel*vmath.EaseInOut(p)
		for i := 0; i < SnakeSegments; i++ {
			d.sink.SetPose(scene.SnakeSegment(i), snakeSegmentPos(i, headX), vmath.Vec3F{})
		}
	})

	m.RegisterAction("ShowBite", func(d *Driver, _ map[string]any) {
		d.sink.SetText(scene.ObjScreenLabel, "Bite!")
		d.sink.SetColor(scene.ObjScreenLabel, scene.ColorYellow)
	})

	m.RegisterAction("EmitVenom", func(d *Driver, _ map[string]any) {
		d.sink.SetText(scene.ObjScreenLabel, "Venom injected")
		d.sink.SetColor(scene.ObjScreenLabel, scene.ColorOrange)

		bitePos := vmath.V3FAdd(wristCenter, biteOffset)
		dir := vmath.V3FNormalize(vmath.V3FSub(armPos, bitePos))

		count := int(float64(d.cfg.Particles.EmitCount) * d.dt * d.cfg.Particles.EmitRateFactor)
		if count < 1 {
			count = 1
		}
		d.pool.Emit(bitePos, dir, count, d.rng)
	})

	m.RegisterAction("ScheduleDetection", func(d *Driver, _ map[string]any) {
		d.detectionDeadline = d.clock + d.cfg.Story.DetectionDelay
		d.sink.SetText(scene.ObjScreenLabel, "Analyzing...")
		d.sink.SetColor(scene.ObjScreenLabel, scene.ColorCyan)
	})

	m.RegisterAction("RaiseVitals", func(d *Driver, _ map[string]any) {
		p := vmath.Progress(d.machine.Elapsed(), d.cfg.Story.DetectionDelay)
		d.setHeartRate(d.cfg.Vitals.BaselineBPM + d.cfg.Vitals.IncidentBPM*vmath.EaseInOut(p))
	})

	m.RegisterAction("ShowClassifying", func(d *Driver, _ map[string]any) {
		d.sink.SetText(scene.ObjScreenLabel, "Classifying")
		d.sink.SetColor(scene.ObjScreenLabel, scene.ColorMagenta)
	})

	m.RegisterAction("RevealInjector", func(d *Driver, _ map[string]any) {
		d.classification = d.cfg.Story.Classification
		d.sink.SetText(scene.ObjScreenLabel, "Venom detected: "+d.classification)
		d.sink.SetColor(scene.ObjScreenLabel, scene.ColorRed)
		d.sink.SetColor(scene.ObjNeedle, scene.Color{R: 1, G: 1, B: 1, A: 0.95})
	})

	m.RegisterAction("AnimateInjection", func(d *Driver, _ map[string]any) {
		p := vmath.Progress(d.machine.Elapsed(), d.cfg.Story.InjectionTime)
		s := vmath.EaseInOut(p)

		depth := NeedleTravel * s
		pos := vmath.V3FAdd(wristCenter, needleOffset)
		pos.X -= depth
		d.sink.SetPose(scene.ObjNeedle, pos, vmath.Vec3F{X: -depth})

		remaining := CartridgeLength * (1 - s)
		if remaining < CartridgeFloor {
			remaining = CartridgeFloor
		}
		d.sink.SetPose(scene.ObjCartridge, vmath.V3FAdd(wristCenter, cartridgeOffset), vmath.Vec3F{X: remaining})
	})

	m.RegisterAction("BeginRecovery", func(d *Driver, _ map[string]any) {
		d.sink.SetText(scene.ObjScreenLabel, "Antidote delivered")
		d.sink.SetColor(scene.ObjScreenLabel, scene.ColorGreen)
	})

	m.RegisterAction("AnimateRecovery", func(d *Driver, _ map[string]any) {
		d.pool.Drain(d.dt, d.cfg.Particles.RecoveryDrainRate)

		p := vmath.Progress(d.machine.Elapsed(), d.cfg.Story.RecoveryTime)
		d.setHeartRate(d.cfg.Vitals.BaselineBPM + (1-p)*d.cfg.Vitals.IncidentBPM)
	})

	m.RegisterAction("ShowStable", func(d *Driver, _ map[string]any) {
		d.sink.SetText(scene.ObjScreenLabel, "Stable")
		d.sink.SetColor(scene.ObjScreenLabel, scene.ColorWhite)
		d.sink.SetPose(scene.ObjNeedle, vmath.V3FAdd(wristCenter, needleOffset), vmath.Vec3F{})
		d.sink.SetColor(scene.ObjNeedle, scene.Color{R: 1, G: 1, B: 1, A: 0})
	})
}
