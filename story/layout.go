package story

import (
	"github.com/lixenwraith/amrisha/scene"
	"github.com/lixenwraith/amrisha/vmath"
)

// Scene layout, in arm-scene units: X along the arm, Y up, Z toward viewer
// Values match the demo staging; they are presentation, not configuration
const (
	SnakeSegments = 10
	SnakeSpacing  = 0.22
	SnakeStartX   = -6.0
	SnakeTravel   = 5.9
	SnakeBaseY    = -0.55
	SnakeBaseZ    = 0.02

	NeedleTravel    = 0.22
	CartridgeLength = 0.6
	CartridgeFloor  = 0.05
)

var (
	armPos  = vmath.Vec3F{X: -0.5, Y: -0.6, Z: 0}
	armAxis = vmath.Vec3F{X: 3.2, Y: 0, Z: 0}

	wristCenter = vmath.Vec3F{X: 1.1, Y: -0.55, Z: 0}

	watchBodyOffset   = vmath.Vec3F{X: 0.18, Y: 0.12, Z: 0}
	watchScreenOffset = vmath.Vec3F{X: 0.18, Y: 0.12, Z: 0.15}
	cartridgeOffset   = vmath.Vec3F{X: 0.4, Y: 0, Z: 0}
	needleOffset      = vmath.Vec3F{X: 0.85, Y: -0.05, Z: 0}
	chipOffset        = vmath.Vec3F{X: 0.0, Y: 0.18, Z: 0.12}
	biteOffset        = vmath.Vec3F{X: 0.2, Y: 0.05, Z: 0.06}
)

// snakeSegmentPos returns segment i's position for a given head travel x
func snakeSegmentPos(i int, headX float64) vmath.Vec3F {
	return vmath.Vec3F{
		X: headX + float64(i)*SnakeSpacing,
		Y: SnakeBaseY + snakeWiggle(i),
		Z: SnakeBaseZ,
	}
}

// snakeWiggle gives each segment a small fixed vertical offset so the body
// reads as a curve instead of a rod
func snakeWiggle(i int) float64 {
	// sin(i) sampled at integers, scaled down
	table := [...]float64{0, 0.841, 0.909, 0.141, -0.757, -0.959, -0.279, 0.657, 0.989, 0.412}
	return table[i%len(table)] * 0.03
}

// initScene pushes every static object's starting pose, color and text
func (d *Driver) initScene() {
	s := d.sink

	s.SetPose(scene.ObjGround, vmath.Vec3F{X: 0, Y: -0.9, Z: 0}, vmath.Vec3F{X: 10, Y: 0.1, Z: 6})
	s.SetColor(scene.ObjGround, scene.Color{R: 0.1, G: 0.1, B: 0.1, A: 0.8})

	s.SetPose(scene.ObjArm, armPos, armAxis)
	s.SetColor(scene.ObjArm, scene.ColorSkin)

	s.SetPose(scene.ObjWatchBody, vmath.V3FAdd(wristCenter, watchBodyOffset), vmath.Vec3F{X: 0.7, Y: 0.3, Z: 0.28})
	s.SetColor(scene.ObjWatchBody, scene.Color{R: 0.25, G: 0.25, B: 0.25, A: 1})

	s.SetPose(scene.ObjWatchScreen, vmath.V3FAdd(wristCenter, watchScreenOffset), vmath.Vec3F{X: 0.58, Y: 0.22, Z: 0.02})
	s.SetColor(scene.ObjWatchScreen, scene.Color{R: 0, G: 0, B: 0, A: 1})

	s.SetPose(scene.ObjCartridge, vmath.V3FAdd(wristCenter, cartridgeOffset), vmath.Vec3F{X: CartridgeLength})
	s.SetColor(scene.ObjCartridge, scene.Color{R: 0.1, G: 0.9, B: 0.9, A: 0.9})

	// Needle starts retracted and invisible
	s.SetPose(scene.ObjNeedle, vmath.V3FAdd(wristCenter, needleOffset), vmath.Vec3F{})
	s.SetColor(scene.ObjNeedle, scene.Color{R: 1, G: 1, B: 1, A: 0})

	s.SetPose(scene.ObjChip, vmath.V3FAdd(wristCenter, chipOffset), vmath.Vec3F{X: 0.12, Y: 0.08, Z: 0.04})
	s.SetColor(scene.ObjChip, scene.Color{R: 0.1, G: 0.2, B: 0.9, A: 1})

	s.SetText(scene.ObjScreenLabel, "IDLE")
	s.SetColor(scene.ObjScreenLabel, scene.ColorWhite)

	for i := 0; i < SnakeSegments; i++ {
		s.SetPose(scene.SnakeSegment(i), snakeSegmentPos(i, SnakeStartX), vmath.Vec3F{})
		s.SetColor(scene.SnakeSegment(i), scene.ColorSnake)
	}

	d.setHeartRate(d.cfg.Vitals.BaselineBPM)
}
