package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/amrisha/scene"
	"github.com/lixenwraith/amrisha/vmath"
)

// Frames is the offline backend writing one PNG per flushed frame
type Frames struct {
	*Store

	dir    string
	width  int
	height int
	index  int
}

// NewFrames creates the output directory and a compositor sized in pixels
func NewFrames(dir string, width, height int) (*Frames, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("frame size %dx%d invalid", width, height)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}
	return &Frames{
		Store:  NewStore(),
		dir:    dir,
		width:  width,
		height: height,
	}, nil
}

// Count returns how many frames have been written
func (f *Frames) Count() int {
	return f.index
}

// Flush composites the retained scene into frame_NNNN.png
func (f *Frames) Flush() error {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.composite(img)

	path := filepath.Join(f.dir, fmt.Sprintf("frame_%04d.png", f.index))
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	f.index++
	return nil
}

func (f *Frames) project(p vmath.Vec3F) (int, int, bool) {
	if p.X > sentinelCut || p.Y > sentinelCut {
		return 0, 0, false
	}
	fx := (p.X - worldXMin) / (worldXMax - worldXMin)
	fy := (worldYMax - p.Y) / (worldYMax - worldYMin)
	return int(fx * float64(f.width-1)), int(fy * float64(f.height-1)), true
}

func toNRGBA(c scene.Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(vmath.Clamp01(c.R) * 255),
		G: uint8(vmath.Clamp01(c.G) * 255),
		B: uint8(vmath.Clamp01(c.B) * 255),
		A: uint8(vmath.Clamp01(c.A) * 255),
	}
}

// blend draws src over dst at x,y honoring source alpha
func blend(img *image.RGBA, x, y int, src color.NRGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	if src.A == 0 {
		return
	}
	dst := img.RGBAAt(x, y)
	a := uint32(src.A)
	inv := 255 - a
	img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(src.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(src.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(src.B)*a + uint32(dst.B)*inv) / 255),
		A: 255,
	})
}

func fillDisc(img *image.RGBA, cx, cy, r int, c color.NRGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				blend(img, cx+dx, cy+dy, c)
			}
		}
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			blend(img, x, y, c)
		}
	}
}

func drawLabel(img *image.RGBA, x, y int, text string, c color.NRGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func (f *Frames) composite(img *image.RGBA) {
	// Backdrop and ground plane
	fillRect(img, 0, 0, f.width-1, f.height-1, color.NRGBA{R: 16, G: 18, B: 22, A: 255})
	if _, gy, ok := f.project(vmath.Vec3F{X: 0, Y: -0.9}); ok {
		fillRect(img, 0, gy, f.width-1, f.height-1, color.NRGBA{R: 28, G: 32, B: 36, A: 255})
	}

	thick := f.height / 120
	if thick < 1 {
		thick = 1
	}

	if arm := f.Get(scene.ObjArm); arm != nil {
		x0, y0, ok0 := f.project(arm.Pos)
		x1, _, ok1 := f.project(vmath.V3FAdd(arm.Pos, arm.Axis))
		if ok0 && ok1 {
			fillRect(img, x0, y0-3*thick, x1, y0+3*thick, toNRGBA(arm.Color))
		}
	}

	for _, id := range []scene.ObjectID{scene.ObjWatchBody, scene.ObjWatchScreen, scene.ObjChip} {
		o := f.Get(id)
		if o == nil {
			continue
		}
		if x, y, ok := f.project(o.Pos); ok {
			r := 4 * thick
			if id != scene.ObjWatchBody {
				r = 2 * thick
			}
			fillRect(img, x-r, y-r, x+r, y+r, toNRGBA(o.Color))
		}
	}

	if cart := f.Get(scene.ObjCartridge); cart != nil {
		x0, y0, ok0 := f.project(cart.Pos)
		x1, _, ok1 := f.project(vmath.V3FAdd(cart.Pos, cart.Axis))
		if ok0 && ok1 {
			fillRect(img, x0, y0-thick, x1, y0+thick, toNRGBA(cart.Color))
		}
	}

	if needle := f.Get(scene.ObjNeedle); needle != nil && needle.Color.A > 0 {
		x0, y0, ok0 := f.project(needle.Pos)
		x1, _, ok1 := f.project(vmath.V3FAdd(needle.Pos, needle.Axis))
		if ok0 && ok1 {
			fillRect(img, x0, y0, x1, y0+thick-1, toNRGBA(needle.Color))
		}
	}

	for i := f.SnakeSegmentCount() - 1; i >= 0; i-- {
		o := f.Get(scene.SnakeSegment(i))
		if o == nil {
			continue
		}
		if x, y, ok := f.project(o.Pos); ok {
			r := 3 * thick
			if i == 0 {
				r = 4 * thick
			}
			fillDisc(img, x, y, r, toNRGBA(o.Color))
		}
	}

	f.Particles(func(o *Object) {
		if o.Color.A <= 0 {
			return
		}
		if x, y, ok := f.project(o.Pos); ok {
			fillDisc(img, x, y, thick, toNRGBA(o.Color))
		}
	})

	f.compositeHUD(img)
}

func (f *Frames) compositeHUD(img *image.RGBA) {
	white := color.NRGBA{R: 230, G: 230, B: 230, A: 255}

	if hr := f.Get(scene.ObjHeartLabel); hr != nil {
		drawLabel(img, 10, 16, hr.Text, white)
	}
	if bar := f.Get(scene.ObjHeartBar); bar != nil {
		w := int(vmath.Clamp01(bar.Scalars["value"]/0.9) * 140)
		fillRect(img, 10, 22, 150, 30, color.NRGBA{R: 60, G: 60, B: 60, A: 255})
		if w > 0 {
			fillRect(img, 10, 22, 10+w, 30, color.NRGBA{R: 220, G: 40, B: 40, A: 255})
		}
	}
	if label := f.Get(scene.ObjScreenLabel); label != nil && label.Text != "" {
		x := f.width - 7*len(label.Text) - 10
		if x < 10 {
			x = 10
		}
		drawLabel(img, x, 16, label.Text, toNRGBA(label.Color))
	}
}
