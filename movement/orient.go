package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
)

// OrientationSmoother turns an avatar's facing towards a target facing by a bounded angle per frame.
type OrientationSmoother struct {
	// MaxStep is the largest angle, in radians, a single step turns by.
	MaxStep float64
	// Steps is the number of steps taken per frame.
	Steps int
}

// NewOrientationSmoother ...
func NewOrientationSmoother(maxStep float64, steps int) OrientationSmoother {
	return OrientationSmoother{MaxStep: maxStep, Steps: max(steps, 1)}
}

// Smooth returns current rotated towards target by up to Steps×MaxStep radians.
func (o OrientationSmoother) Smooth(current, target mgl64.Quat) mgl64.Quat {
	for range max(o.Steps, 1) {
		current = RotateTowards(current, target, o.MaxStep)
	}
	return current
}

// TargetFacing returns the facing of an avatar at avatar, seen from a camera at camera, that moves in the
// direction offset from the camera's view. The facing is a rotation around the world up axis.
func TargetFacing(avatar, camera mgl64.Vec3, offset float64) mgl64.Quat {
	angle := math.Atan2(camera.X()-avatar.X(), camera.Z()-avatar.Z())
	return mgl64.QuatRotate(angle+math.Pi+offset, game.Up)
}

// RotateTowards rotates current towards target along the shortest arc by at most step radians. Target is
// returned as is once it is within reach.
func RotateTowards(current, target mgl64.Quat, step float64) mgl64.Quat {
	dot := current.Dot(target)
	if dot < 0 {
		target, dot = target.Scale(-1), -dot
	}
	angle := 2 * math.Acos(math.Min(dot, 1))
	if angle <= step || angle < 1e-12 {
		return target
	}
	return mgl64.QuatSlerp(current, target, step/angle).Normalize()
}

// Yaw returns the angle, in radians within [-π, π], that a rotation around the world up axis turns by.
func Yaw(q mgl64.Quat) float64 {
	return game.WrapAngle(2 * math.Atan2(q.V.Y(), q.W))
}

// AvatarPosition returns the position of an avatar's model from its capsule: horizontally at the capsule's
// axis and vertically half the capsule's height above its lowest point.
func AvatarPosition(c collision.Capsule) mgl64.Vec3 {
	return mgl64.Vec3{c.Start.X(), c.Start.Y() - c.Radius + c.Height()/2, c.Start.Z()}
}
