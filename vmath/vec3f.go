package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector
// Scene coordinates: X along the arm, Y up, Z toward the viewer
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FLerp interpolates componentwise between a and b by t
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// V3FDampDt applies frame-rate independent isotropic damping: v * (1 - rate*dt)
// rate: decay per second, dt: seconds. Linear approximation valid for dt << 1s
func V3FDampDt(v Vec3F, rate, dt float64) Vec3F {
	decay := 1.0 - rate*dt
	if decay < 0 {
		decay = 0
	}
	return V3FScale(v, decay)
}
