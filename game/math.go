package game

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis.
var Up = mgl64.Vec3{0, 1, 0}

// WrapAngle wraps an angle in radians into the range [-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Vec64To32 converts a 64-bit vector to a 32-bit one.
func Vec64To32(vec3 mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(vec3[0]), float32(vec3[1]), float32(vec3[2])}
}

// Quat64To32 converts a 64-bit quaternion to a 32-bit one.
func Quat64To32(q mgl64.Quat) mgl32.Quat {
	return mgl32.Quat{W: float32(q.W), V: Vec64To32(q.V)}
}

// YawOf32 returns the rotation around the world up axis described by a quaternion that only rotates
// around that axis.
func YawOf32(q mgl32.Quat) float32 {
	return 2 * math32.Atan2(q.V.Y(), q.W)
}

// ValidDelta returns true if dt is a usable frame time: positive and finite.
func ValidDelta(dt float64) bool {
	return dt > 0 && !math.IsInf(dt, 1)
}
