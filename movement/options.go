package movement

import (
	"fmt"

	"github.com/oomph-ac/locomotion/game"
)

const (
	// IdleStopDecay keeps the last acceleration when every key is released, so the avatar slows down at
	// the deceleration rate before coming to a stop.
	IdleStopDecay = "decay"
	// IdleStopInstant zeroes the speed, max speed and acceleration the moment every key is released.
	IdleStopInstant = "instant"

	// GravityFrame accumulates falling speed once per frame regardless of the elapsed time: the falling
	// acceleration grows by one every airborne frame and its square is added to the falling speed.
	GravityFrame = "frame"
	// GravityTime integrates a constant gravitational acceleration over the elapsed time.
	GravityTime = "time"
)

// Options holds the tunables of the locomotion simulation.
type Options struct {
	WalkMaxSpeed           float64 `toml:"walk_max_speed"`
	RunMaxSpeed            float64 `toml:"run_max_speed"`
	Acceleration           float64 `toml:"acceleration"`
	DecelerationMultiplier float64 `toml:"deceleration_multiplier"`
	IdleStop               string  `toml:"idle_stop"`
	Gravity                string  `toml:"gravity"`
	GravityAcceleration    float64 `toml:"gravity_acceleration"`
}

// DefaultOptions returns the options the avatar moves with out of the box.
func DefaultOptions() Options {
	return Options{
		WalkMaxSpeed:           game.WalkMaxSpeed,
		RunMaxSpeed:            game.RunMaxSpeed,
		Acceleration:           game.DefaultAcceleration,
		DecelerationMultiplier: game.DecelerationMultiplier,
		IdleStop:               IdleStopDecay,
		Gravity:                GravityFrame,
		GravityAcceleration:    game.DefaultGravity,
	}
}

// Validate returns an error if any of the options is out of range.
func (o Options) Validate() error {
	if o.WalkMaxSpeed < 0 || o.RunMaxSpeed < 0 {
		return fmt.Errorf("max speeds must not be negative (walk=%v, run=%v)", o.WalkMaxSpeed, o.RunMaxSpeed)
	}
	if o.Acceleration <= 0 {
		return fmt.Errorf("acceleration must be positive, got %v", o.Acceleration)
	}
	if o.DecelerationMultiplier <= 0 {
		return fmt.Errorf("deceleration multiplier must be positive, got %v", o.DecelerationMultiplier)
	}
	if o.IdleStop != IdleStopDecay && o.IdleStop != IdleStopInstant {
		return fmt.Errorf("unknown idle stop mode %q", o.IdleStop)
	}
	switch o.Gravity {
	case GravityFrame:
	case GravityTime:
		if o.GravityAcceleration <= 0 {
			return fmt.Errorf("gravity acceleration must be positive, got %v", o.GravityAcceleration)
		}
	default:
		return fmt.Errorf("unknown gravity mode %q", o.Gravity)
	}
	return nil
}
