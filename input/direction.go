package input

import "math"

// Offset returns the angle, in radians, between the camera's forward direction and the direction the held
// movement keys ask the avatar to move in. Positive angles turn left. When several directions are held the
// precedence is w > s > a > d, so w+s moves forward and a+d moves left. The bool is false if no movement key
// is held, in which case no direction is implied.
func Offset(keys KeyState) (float64, bool) {
	switch {
	case keys.Pressed(KeyW):
		if keys.Pressed(KeyA) {
			return math.Pi / 4, true
		} else if keys.Pressed(KeyD) {
			return -math.Pi / 4, true
		}
		return 0, true
	case keys.Pressed(KeyS):
		if keys.Pressed(KeyA) {
			return math.Pi/4 + math.Pi/2, true
		} else if keys.Pressed(KeyD) {
			return -math.Pi/4 - math.Pi/2, true
		}
		return math.Pi, true
	case keys.Pressed(KeyA):
		return math.Pi / 2, true
	case keys.Pressed(KeyD):
		return -math.Pi / 2, true
	}
	return 0, false
}

// DirectionResolver resolves the direction offset of held keys and remembers the last one, so that an
// avatar keeps facing the way it last moved once every key is released.
type DirectionResolver struct {
	last float64
}

// Resolve returns the direction offset for the keys passed, or the previously resolved offset if no
// movement key is held.
func (r *DirectionResolver) Resolve(keys KeyState) float64 {
	if offset, ok := Offset(keys); ok {
		r.last = offset
	}
	return r.last
}

// Last returns the most recently resolved offset.
func (r *DirectionResolver) Last() float64 {
	return r.last
}
