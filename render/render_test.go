package render

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/amrisha/scene"
	"github.com/lixenwraith/amrisha/vmath"
)

func TestStoreRetainsWrites(t *testing.T) {
	s := NewStore()

	s.SetPose(scene.ObjArm, vmath.Vec3F{X: 1, Y: 2}, vmath.Vec3F{X: 3})
	s.SetColor(scene.ObjArm, scene.Color{R: 0.5, A: 1})
	s.SetText(scene.ObjScreenLabel, "Bite!")
	s.SetScalar(scene.ObjHeartBar, "value", 0.4)

	arm := s.Get(scene.ObjArm)
	if arm == nil {
		t.Fatal("arm object missing after write")
	}
	if arm.Pos.X != 1 || arm.Pos.Y != 2 || arm.Axis.X != 3 {
		t.Errorf("pose not retained: %+v", arm)
	}
	if arm.Color.R != 0.5 {
		t.Errorf("color not retained: %+v", arm.Color)
	}

	if got := s.Get(scene.ObjScreenLabel).Text; got != "Bite!" {
		t.Errorf("text = %q, want Bite!", got)
	}
	if got := s.Get(scene.ObjHeartBar).Scalars["value"]; got != 0.4 {
		t.Errorf("scalar = %v, want 0.4", got)
	}
	if s.Get(scene.ObjNeedle) != nil {
		t.Error("Get returned object that was never written")
	}
}

func TestStorePartialWritesMerge(t *testing.T) {
	s := NewStore()

	s.SetPose(scene.ObjNeedle, vmath.Vec3F{X: 1}, vmath.Vec3F{Y: 1})
	s.SetColor(scene.ObjNeedle, scene.Color{A: 0.95})

	o := s.Get(scene.ObjNeedle)
	if o.Pos.X != 1 || o.Color.A != 0.95 {
		t.Errorf("later write clobbered earlier fields: %+v", o)
	}
}

func TestStoreParticleIteration(t *testing.T) {
	s := NewStore()

	s.SetPose(scene.Particle(0), vmath.Vec3F{X: 1}, vmath.Vec3F{})
	s.SetPose(scene.Particle(7), vmath.Vec3F{X: 2}, vmath.Vec3F{})
	s.SetPose(scene.ObjArm, vmath.Vec3F{X: 3}, vmath.Vec3F{})

	count := 0
	s.Particles(func(o *Object) { count++ })
	if count != 2 {
		t.Errorf("particle iteration visited %d objects, want 2", count)
	}
}

func TestStoreSnakeSegmentCount(t *testing.T) {
	s := NewStore()
	if s.SnakeSegmentCount() != 0 {
		t.Errorf("empty store reports %d segments", s.SnakeSegmentCount())
	}
	for i := 0; i < 10; i++ {
		s.SetPose(scene.SnakeSegment(i), vmath.Vec3F{X: float64(i)}, vmath.Vec3F{})
	}
	if s.SnakeSegmentCount() != 10 {
		t.Errorf("segment count = %d, want 10", s.SnakeSegmentCount())
	}
}

func TestFramesWritesSequence(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFrames(filepath.Join(dir, "frames"), 320, 180)
	if err != nil {
		t.Fatalf("NewFrames: %v", err)
	}

	f.SetPose(scene.ObjArm, vmath.Vec3F{X: -0.4, Y: -0.2}, vmath.Vec3F{X: 3.2})
	f.SetColor(scene.ObjArm, scene.Color{R: 0.9, G: 0.75, B: 0.6, A: 1})
	f.SetText(scene.ObjScreenLabel, "Analyzing...")
	f.SetColor(scene.ObjScreenLabel, scene.Color{R: 1, G: 1, B: 1, A: 1})
	f.SetScalar(scene.ObjHeartBar, "value", 0.3)

	for i := 0; i < 3; i++ {
		if err := f.Flush(); err != nil {
			t.Fatalf("flush %d: %v", i, err)
		}
	}
	if f.Count() != 3 {
		t.Errorf("Count = %d, want 3", f.Count())
	}

	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, "frames", []string{"frame_0000.png", "frame_0001.png", "frame_0002.png"}[i])
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("frame %d missing: %v", i, err)
		}
		if info.Size() == 0 {
			t.Errorf("frame %d is empty", i)
		}
	}
}

func TestFramesRejectsBadSize(t *testing.T) {
	if _, err := NewFrames(t.TempDir(), 0, 100); err == nil {
		t.Error("zero width accepted")
	}
}

func newSimTerminal(t *testing.T) *Terminal {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen: %v", err)
	}
	screen.SetSize(80, 24)
	term := newTestTerminal(screen)
	term.width, term.height = 80, 24
	t.Cleanup(term.Fini)
	return term
}

func TestTerminalProjectionBounds(t *testing.T) {
	term := newSimTerminal(t)

	x, y, ok := term.project(vmath.Vec3F{X: worldXMin, Y: worldYMax})
	if !ok || x != 0 || y != hudRows {
		t.Errorf("top-left corner projected to (%d,%d,%v)", x, y, ok)
	}

	if _, _, ok := term.project(particleSentinel()); ok {
		t.Error("off-stage position projected onto screen")
	}
	if _, _, ok := term.project(vmath.Vec3F{X: worldXMin - 5}); ok {
		t.Error("out-of-window position projected onto screen")
	}
}

func particleSentinel() vmath.Vec3F {
	return vmath.Vec3F{X: 100, Y: 100, Z: 100}
}

func TestTerminalDrawDoesNotPanic(t *testing.T) {
	term := newSimTerminal(t)

	term.SetPose(scene.ObjArm, vmath.Vec3F{X: -0.4, Y: -0.2}, vmath.Vec3F{X: 3.2})
	term.SetColor(scene.ObjArm, scene.Color{R: 0.9, G: 0.75, B: 0.6, A: 1})
	for i := 0; i < 10; i++ {
		term.SetPose(scene.SnakeSegment(i), vmath.Vec3F{X: -2 - 0.22*float64(i), Y: -0.75}, vmath.Vec3F{})
		term.SetColor(scene.SnakeSegment(i), scene.Color{R: 0.1, G: 0.45, B: 0.15, A: 1})
	}
	term.SetPose(scene.Particle(3), vmath.Vec3F{X: -0.5, Y: 0.1}, vmath.Vec3F{})
	term.SetColor(scene.Particle(3), scene.Color{R: 0.8, A: 0.6})
	term.SetText(scene.ObjScreenLabel, "Venom detected: neurotoxic")
	term.SetColor(scene.ObjScreenLabel, scene.Color{R: 1, G: 0.2, B: 0.2, A: 1})
	term.SetText(scene.ObjHeartLabel, "Heart rate: 95 bpm")
	term.SetScalar(scene.ObjHeartBar, "value", 0.45)

	term.Draw()
	term.Draw()
}

// TestTerminalResizeDuringDraw hammers resize events from a second
// goroutine while drawing, the same split the live playback loop runs with
func TestTerminalResizeDuringDraw(t *testing.T) {
	term := newSimTerminal(t)
	term.SetPose(scene.ObjArm, vmath.Vec3F{X: -0.4, Y: -0.2}, vmath.Vec3F{X: 3.2})
	term.SetColor(scene.ObjArm, scene.Color{R: 0.9, G: 0.75, B: 0.6, A: 1})
	term.SetText(scene.ObjHeartLabel, "Heart rate: 75 bpm")
	term.SetScalar(scene.ObjHeartBar, "value", 0.3)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			term.HandleEvent(tcell.NewEventResize(40+i%40, 12+i%12))
		}
	}()
	for i := 0; i < 200; i++ {
		term.Draw()
	}
	wg.Wait()
}

func TestTerminalQuitKeys(t *testing.T) {
	term := newSimTerminal(t)

	tests := []struct {
		ev   tcell.Event
		want bool
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), false},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
		{tcell.NewEventResize(100, 40), true},
	}
	for _, tc := range tests {
		if got := term.HandleEvent(tc.ev); got != tc.want {
			t.Errorf("HandleEvent(%T) = %v, want %v", tc.ev, got, tc.want)
		}
	}
}
