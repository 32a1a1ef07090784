// Package render provides the scene backends: a live tcell terminal view
// and an offline PNG frame compositor. Both keep a retained object store
// fed through the scene.Scene interface and draw from it on demand
package render

import (
	"strings"

	"github.com/lixenwraith/amrisha/scene"
	"github.com/lixenwraith/amrisha/vmath"
)

// Object is the retained state of one scene object
type Object struct {
	ID    scene.ObjectID
	Pos   vmath.Vec3F
	Axis  vmath.Vec3F
	Color scene.Color
	Text  string

	Scalars map[string]float64
}

// Store retains the last written state per object
// Mutated only from the tick goroutine, drawn from the same goroutine
type Store struct {
	objects map[scene.ObjectID]*Object
}

func NewStore() *Store {
	return &Store{objects: make(map[scene.ObjectID]*Object)}
}

func (s *Store) obj(id scene.ObjectID) *Object {
	o, ok := s.objects[id]
	if !ok {
		o = &Object{ID: id, Scalars: make(map[string]float64)}
		s.objects[id] = o
	}
	return o
}

func (s *Store) SetPose(id scene.ObjectID, pos, axis vmath.Vec3F) {
	o := s.obj(id)
	o.Pos = pos
	o.Axis = axis
}

func (s *Store) SetColor(id scene.ObjectID, c scene.Color) {
	s.obj(id).Color = c
}

func (s *Store) SetText(id scene.ObjectID, text string) {
	s.obj(id).Text = text
}

func (s *Store) SetScalar(id scene.ObjectID, name string, value float64) {
	s.obj(id).Scalars[name] = value
}

// Get returns the retained object, nil if never written
func (s *Store) Get(id scene.ObjectID) *Object {
	return s.objects[id]
}

// Particles visits every retained particle slot object
func (s *Store) Particles(fn func(o *Object)) {
	for id, o := range s.objects {
		if strings.HasPrefix(string(id), "particle.") {
			fn(o)
		}
	}
}

// SnakeSegmentCount returns how many snake segments have been written
func (s *Store) SnakeSegmentCount() int {
	n := 0
	for id := range s.objects {
		if strings.HasPrefix(string(id), "snake.") {
			n++
		}
	}
	return n
}
