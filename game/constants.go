package game

import "math"

const (
	WalkMaxSpeed           = 80.0
	RunMaxSpeed            = 350.0
	DefaultAcceleration    = 3.0
	DecelerationMultiplier = 2.0

	// FallAccelerationStep is added to the falling acceleration every airborne frame when gravity is
	// accumulated per frame.
	FallAccelerationStep = 1.0

	// DefaultGravity is the gravitational acceleration, in world units per second squared, used when gravity is
	// integrated over elapsed time. World units are roughly centimetres.
	DefaultGravity = 980.0

	CrossfadeDuration = 0.5

	// MaxTurnStep is the largest rotation, in radians, the avatar's facing may turn towards its target in a
	// single smoothing step.
	MaxTurnStep = 5 * math.Pi / 180

	DefaultTurnSteps = 1
)

const (
	ClipIdle = "Idle"
	ClipWalk = "Walk"
	ClipRun  = "Run"
)

// RequiredClips returns the animation clip names that must be present in every loaded clip set.
func RequiredClips() []string {
	return []string{ClipIdle, ClipWalk, ClipRun}
}
