package vmath

import (
	"math"
)

// Clamp constrains v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 constrains v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp linearly interpolates between a and b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Progress returns min(1, elapsed/duration)
// Duration <= 0 counts as already complete
func Progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	if elapsed >= duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return elapsed / duration
}

// EaseInOut is the cosine smoothing curve 0.5*(1-cos(pi*t))
// Zero slope at both endpoints, so animated quantities arrive and
// depart beat boundaries without velocity discontinuities
func EaseInOut(t float64) float64 {
	t = Clamp01(t)
	return 0.5 * (1 - math.Cos(math.Pi*t))
}

// --- Randomness ---

// FastRand is a xorshift64 generator, deterministic per seed
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Jitter returns a value in [-spread/2, spread/2)
func (r *FastRand) Jitter(spread float64) float64 {
	return (r.Float64() - 0.5) * spread
}
