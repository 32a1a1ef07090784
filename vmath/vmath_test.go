package vmath

import (
	"math"
	"testing"
)

// TestEaseInOutEndpoints verifies f(0)=0, f(1)=1, f(0.5)=0.5
func TestEaseInOutEndpoints(t *testing.T) {
	if got := EaseInOut(0); got != 0 {
		t.Errorf("EaseInOut(0) = %f, want 0", got)
	}
	if got := EaseInOut(1); got != 1 {
		t.Errorf("EaseInOut(1) = %f, want 1", got)
	}
	if got := EaseInOut(0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("EaseInOut(0.5) = %f, want 0.5", got)
	}
}

// TestEaseInOutSymmetry verifies f(1-x) = 1-f(x)
func TestEaseInOutSymmetry(t *testing.T) {
	for x := 0.0; x <= 1.0; x += 0.01 {
		a := EaseInOut(1 - x)
		b := 1 - EaseInOut(x)
		if math.Abs(a-b) > 1e-12 {
			t.Fatalf("symmetry broken at x=%f: f(1-x)=%f, 1-f(x)=%f", x, a, b)
		}
	}
}

// TestEaseInOutClamps verifies out-of-range inputs are clamped
func TestEaseInOutClamps(t *testing.T) {
	if got := EaseInOut(-0.5); got != 0 {
		t.Errorf("EaseInOut(-0.5) = %f, want 0", got)
	}
	if got := EaseInOut(1.5); got != 1 {
		t.Errorf("EaseInOut(1.5) = %f, want 1", got)
	}
}

// TestProgressMonotonic verifies progress is non-decreasing and reaches
// exactly 1 within ceil(D/dt) ticks
func TestProgressMonotonic(t *testing.T) {
	durations := []float64{2.0, 0.6, 1.2, 0.8, 3.0}
	dt := 1.0 / 50.0

	for _, d := range durations {
		ticks := int(math.Ceil(d / dt))
		elapsed := 0.0
		prev := 0.0
		for i := 0; i < ticks; i++ {
			elapsed += dt
			p := Progress(elapsed, d)
			if p < prev {
				t.Fatalf("duration %f: progress decreased %f -> %f", d, prev, p)
			}
			prev = p
		}
		if prev != 1 {
			t.Errorf("duration %f: progress after %d ticks = %f, want 1", d, ticks, prev)
		}
	}
}

func TestProgressDegenerateDuration(t *testing.T) {
	if got := Progress(0.5, 0); got != 1 {
		t.Errorf("Progress with zero duration = %f, want 1", got)
	}
	if got := Progress(-1, 2); got != 0 {
		t.Errorf("Progress with negative elapsed = %f, want 0", got)
	}
}

func TestV3FNormalize(t *testing.T) {
	v := V3FNormalize(Vec3F{3, 4, 0})
	if math.Abs(V3FMag(v)-1) > 1e-12 {
		t.Errorf("normalized magnitude = %f, want 1", V3FMag(v))
	}

	zero := V3FNormalize(Vec3F{})
	if zero != (Vec3F{}) {
		t.Errorf("normalizing zero vector = %+v, want zero", zero)
	}
}

func TestV3FDampDt(t *testing.T) {
	v := Vec3F{10, 0, 0}
	damped := V3FDampDt(v, 0.05, 0.02)
	want := 10 * (1 - 0.05*0.02)
	if math.Abs(damped.X-want) > 1e-12 {
		t.Errorf("damped X = %f, want %f", damped.X, want)
	}

	// Huge rate*dt must floor at zero, never flip sign
	flipped := V3FDampDt(v, 100, 1)
	if flipped.X != 0 {
		t.Errorf("over-damped X = %f, want 0", flipped.X)
	}
}

func TestFastRandDeterminism(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatal("same seed produced different sequences")
		}
	}
}

func TestFastRandRange(t *testing.T) {
	r := NewFastRand(7)
	for i := 0; i < 1000; i++ {
		v := r.Range(0.8, 1.4)
		if v < 0.8 || v >= 1.4 {
			t.Fatalf("Range(0.8, 1.4) produced %f", v)
		}
	}
}
