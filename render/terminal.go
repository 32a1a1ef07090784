package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/amrisha/scene"
	"github.com/lixenwraith/amrisha/vmath"
)

// World window projected onto the terminal grid
// X spans snake start through the wearable, Y the arm and its surroundings
const (
	worldXMin = -6.6
	worldXMax = 2.6
	worldYMin = -1.6
	worldYMax = 1.4

	hudRows     = 2 // vitals and screen label rows above the scene
	barCells    = 20
	sentinelCut = 50 // objects beyond this are parked off-stage
)

// Terminal is the live playback backend on a tcell screen
type Terminal struct {
	*Store

	screen tcell.Screen

	// mu guards the cell geometry: resize events land on the input
	// goroutine while Draw runs on the tick goroutine
	mu     sync.Mutex
	width  int
	height int

	events chan tcell.Event
}

// NewTerminal initializes the tcell screen
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	t := &Terminal{
		Store:  NewStore(),
		screen: screen,
		events: make(chan tcell.Event, 100),
	}
	t.width, t.height = screen.Size()

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			t.events <- ev
		}
	}()

	return t, nil
}

// newTestTerminal wires a provided screen, used by tests with a simulation
// screen instead of a real TTY
func newTestTerminal(screen tcell.Screen) *Terminal {
	t := &Terminal{
		Store:  NewStore(),
		screen: screen,
		events: make(chan tcell.Event, 100),
	}
	t.width, t.height = screen.Size()
	return t
}

// Events returns the input event channel
func (t *Terminal) Events() <-chan tcell.Event {
	return t.events
}

// HandleEvent processes one input event; false means quit
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			return false
		}
	case *tcell.EventResize:
		w, h := t.screen.Size()
		t.mu.Lock()
		t.width, t.height = w, h
		t.mu.Unlock()
		t.screen.Sync()
	}
	return true
}

// Fini releases the terminal
func (t *Terminal) Fini() {
	t.screen.Fini()
}

// project maps world coordinates to a terminal cell
func (t *Terminal) project(p vmath.Vec3F) (int, int, bool) {
	if p.X > sentinelCut || p.Y > sentinelCut {
		return 0, 0, false
	}

	sceneRows := t.height - hudRows
	if sceneRows < 1 || t.width < 1 {
		return 0, 0, false
	}

	fx := (p.X - worldXMin) / (worldXMax - worldXMin)
	fy := (worldYMax - p.Y) / (worldYMax - worldYMin)

	x := int(fx * float64(t.width-1))
	y := hudRows + int(fy*float64(sceneRows-1))

	if x < 0 || x >= t.width || y < hudRows || y >= t.height {
		return 0, 0, false
	}
	return x, y, true
}

func styleFor(c scene.Color) tcell.Style {
	// Fold opacity into brightness; the terminal has no alpha channel
	r := int32(vmath.Clamp01(c.R*c.A) * 255)
	g := int32(vmath.Clamp01(c.G*c.A) * 255)
	b := int32(vmath.Clamp01(c.B*c.A) * 255)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(r, g, b))
}

func (t *Terminal) put(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < t.width && y >= 0 && y < t.height {
		t.screen.SetContent(x, y, r, nil, style)
	}
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		t.put(x+i, y, r, style)
	}
}

// drawSpan draws a horizontal run of cells between two world points
func (t *Terminal) drawSpan(from, to vmath.Vec3F, r rune, style tcell.Style) {
	x0, y0, ok0 := t.project(from)
	x1, _, ok1 := t.project(to)
	if !ok0 || !ok1 {
		return
	}
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		t.put(x, y0, r, style)
	}
}

// Draw renders the retained scene and the HUD
func (t *Terminal) Draw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()

	// Ground reference line
	if _, gy, ok := t.project(vmath.Vec3F{X: 0, Y: -0.9}); ok {
		dim := tcell.StyleDefault.Foreground(tcell.NewRGBColor(60, 60, 60))
		for x := 0; x < t.width; x++ {
			t.put(x, gy, '.', dim)
		}
	}

	if arm := t.Get(scene.ObjArm); arm != nil {
		t.drawSpan(arm.Pos, vmath.V3FAdd(arm.Pos, arm.Axis), '═', styleFor(arm.Color))
	}

	if cart := t.Get(scene.ObjCartridge); cart != nil {
		t.drawSpan(cart.Pos, vmath.V3FAdd(cart.Pos, cart.Axis), '▭', styleFor(cart.Color))
	}

	if needle := t.Get(scene.ObjNeedle); needle != nil && needle.Color.A > 0 {
		t.drawSpan(needle.Pos, vmath.V3FAdd(needle.Pos, needle.Axis), '─', styleFor(needle.Color))
	}

	for _, id := range []scene.ObjectID{scene.ObjWatchBody, scene.ObjWatchScreen, scene.ObjChip} {
		if o := t.Get(id); o != nil {
			if x, y, ok := t.project(o.Pos); ok {
				t.put(x, y, '▣', styleFor(o.Color))
			}
		}
	}

	for i := t.SnakeSegmentCount() - 1; i >= 0; i-- {
		o := t.Get(scene.SnakeSegment(i))
		if o == nil {
			continue
		}
		if x, y, ok := t.project(o.Pos); ok {
			r := 'o'
			if i == 0 {
				r = '@'
			}
			t.put(x, y, r, styleFor(o.Color))
		}
	}

	t.Particles(func(o *Object) {
		if o.Color.A <= 0 {
			return
		}
		if x, y, ok := t.project(o.Pos); ok {
			t.put(x, y, '·', styleFor(o.Color))
		}
	})

	t.drawHUD()
	t.screen.Show()
}

func (t *Terminal) drawHUD() {
	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	if hr := t.Get(scene.ObjHeartLabel); hr != nil {
		t.drawText(1, 0, hr.Text, white)
	}
	if bar := t.Get(scene.ObjHeartBar); bar != nil {
		// Bar value is the demo's 0.02..0.9 band; normalize to cells
		filled := int(vmath.Clamp01(bar.Scalars["value"]/0.9) * barCells)
		red := tcell.StyleDefault.Foreground(tcell.ColorRed)
		for i := 0; i < barCells; i++ {
			r := '░'
			style := white
			if i < filled {
				r = '█'
				style = red
			}
			t.put(1+i, 1, r, style)
		}
	}

	if label := t.Get(scene.ObjScreenLabel); label != nil && label.Text != "" {
		x := t.width - len(label.Text) - 2
		if x < 0 {
			x = 0
		}
		t.drawText(x, 0, label.Text, styleFor(label.Color))
	}
}
