package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/input"
)

// State is the locomotion state of a single avatar. It is a plain value: Step returns an updated copy and
// never mutates the state passed to it.
type State struct {
	Gait Gait

	Speed        float64
	MaxSpeed     float64
	Acceleration float64

	FallingAcceleration float64
	FallingSpeed        float64

	// OnGround is written by collision resolution at the end of every frame and read by the next Step.
	OnGround bool
}

// Input is everything Step reads from outside the locomotion state for one frame.
type Input struct {
	Keys input.KeyState
	// DirectionOffset is the resolved angle between the camera's forward direction and the direction of
	// movement.
	DirectionOffset float64
	// CameraForward is the direction the camera looks in.
	CameraForward mgl64.Vec3
}

// Step advances the locomotion state by one frame of dt seconds and returns the new state along with the
// displacement the avatar's capsule must be translated by. A non-positive or non-finite dt leaves the state
// untouched and produces no displacement.
func Step(s State, in Input, dt float64, opts Options) (State, mgl64.Vec3) {
	if !game.ValidDelta(dt) {
		return s, mgl64.Vec3{}
	}

	s.Gait = SelectGait(in.Keys)
	switch s.Gait {
	case GaitRun:
		s.MaxSpeed, s.Acceleration = opts.RunMaxSpeed, opts.Acceleration
	case GaitWalk:
		s.MaxSpeed, s.Acceleration = opts.WalkMaxSpeed, opts.Acceleration
	default:
		s.MaxSpeed = 0
		if opts.IdleStop == IdleStopInstant {
			s.Speed, s.Acceleration = 0, 0
		}
	}
	s.Speed = nextSpeed(s.Speed, s.MaxSpeed, s.Acceleration, opts.DecelerationMultiplier)

	if s.OnGround {
		s.FallingAcceleration, s.FallingSpeed = 0, 0
	} else if opts.Gravity == GravityTime {
		s.FallingAcceleration = opts.GravityAcceleration
		s.FallingSpeed += opts.GravityAcceleration * dt
	} else {
		s.FallingAcceleration += game.FallAccelerationStep
		s.FallingSpeed += s.FallingAcceleration * s.FallingAcceleration
	}

	dir := WalkDirection(in.CameraForward, s.OnGround, in.DirectionOffset)
	velocity := mgl64.Vec3{dir.X() * s.Speed, dir.Y() * s.FallingSpeed, dir.Z() * s.Speed}
	return s, velocity.Mul(dt)
}

// nextSpeed accelerates speed towards maxSpeed, or decelerates it at a multiple of the acceleration once it
// has reached or passed maxSpeed. The result never crosses maxSpeed and never becomes negative.
func nextSpeed(speed, maxSpeed, acceleration, decelerationMultiplier float64) float64 {
	if speed < maxSpeed {
		return math.Min(speed+acceleration, maxSpeed)
	}
	return math.Max(speed-acceleration*decelerationMultiplier, math.Max(maxSpeed, 0))
}

// WalkDirection returns the unit direction the avatar moves in: the camera's forward direction flattened
// onto the ground when grounded, or tilted downwards when airborne, rotated around the world up axis by the
// direction offset. The zero vector is returned if forward gives no usable direction.
func WalkDirection(forward mgl64.Vec3, onGround bool, offset float64) mgl64.Vec3 {
	dir := forward
	if onGround {
		dir[1] = 0
	} else {
		dir[1] = -1
	}
	l := dir.Len()
	if l < 1e-9 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}
	}
	return mgl64.QuatRotate(offset, game.Up).Rotate(dir.Mul(1 / l))
}
