// Package scene defines the narrow capability surface the narrative driver
// writes to. The driver treats a Scene as a write-only sink and never reads
// state back; renderers interpolate nothing, they draw what they were told.
package scene

import (
	"fmt"

	"github.com/lixenwraith/amrisha/vmath"
)

// ObjectID names a scene object across all backends
type ObjectID string

const (
	ObjGround      ObjectID = "ground"
	ObjArm         ObjectID = "arm"
	ObjWatchBody   ObjectID = "watch_body"
	ObjWatchScreen ObjectID = "watch_screen"
	ObjCartridge   ObjectID = "cartridge"
	ObjNeedle      ObjectID = "needle"
	ObjChip        ObjectID = "chip"
	ObjScreenLabel ObjectID = "screen_label"
	ObjHeartBar    ObjectID = "hr_bar"
	ObjHeartLabel  ObjectID = "hr_label"
)

// SnakeSegment returns the ObjectID of the i-th snake body sphere
func SnakeSegment(i int) ObjectID {
	return ObjectID(fmt.Sprintf("snake.%d", i))
}

// Particle returns the ObjectID of the i-th particle pool slot
func Particle(i int) ObjectID {
	return ObjectID(fmt.Sprintf("particle.%d", i))
}

// Color is linear RGBA in [0, 1]; A doubles as opacity
type Color struct {
	R, G, B, A float64
}

var (
	ColorWhite   = Color{1, 1, 1, 1}
	ColorYellow  = Color{1, 0.9, 0.1, 1}
	ColorOrange  = Color{1, 0.55, 0.1, 1}
	ColorCyan    = Color{0.1, 0.9, 0.9, 1}
	ColorMagenta = Color{0.9, 0.2, 0.9, 1}
	ColorRed     = Color{0.9, 0.1, 0.1, 1}
	ColorGreen   = Color{0.1, 0.9, 0.2, 1}
	ColorSkin    = Color{1.0, 0.86, 0.72, 1}
	ColorSnake   = Color{0.36, 0.22, 0.12, 1}
	ColorVenom   = Color{0.8, 0.0, 0.0, 0.95}
)

// Scene is the renderer capability interface
// Axis carries direction plus extent, used for needle travel and
// cartridge depletion
type Scene interface {
	SetPose(id ObjectID, pos, axis vmath.Vec3F)
	SetColor(id ObjectID, c Color)
	SetText(id ObjectID, text string)
	SetScalar(id ObjectID, name string, value float64)
}

// Null discards everything; the driver unit tests run against it
type Null struct{}

func (Null) SetPose(ObjectID, vmath.Vec3F, vmath.Vec3F) {}
func (Null) SetColor(ObjectID, Color)                   {}
func (Null) SetText(ObjectID, string)                   {}
func (Null) SetScalar(ObjectID, string, float64)        {}

// Tee fans writes out to several sinks, e.g. live terminal plus recorder
func Tee(sinks ...Scene) Scene {
	return tee(sinks)
}

type tee []Scene

func (t tee) SetPose(id ObjectID, pos, axis vmath.Vec3F) {
	for _, s := range t {
		s.SetPose(id, pos, axis)
	}
}

func (t tee) SetColor(id ObjectID, c Color) {
	for _, s := range t {
		s.SetColor(id, c)
	}
}

func (t tee) SetText(id ObjectID, text string) {
	for _, s := range t {
		s.SetText(id, text)
	}
}

func (t tee) SetScalar(id ObjectID, name string, value float64) {
	for _, s := range t {
		s.SetScalar(id, name, value)
	}
}
