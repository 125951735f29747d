package player

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is an orbit camera following an avatar.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
}

// Forward returns the unit direction the camera looks in.
func (c Camera) Forward() mgl64.Vec3 {
	d := c.Target.Sub(c.Position)
	if l := d.Len(); l > 0 {
		return d.Mul(1 / l)
	}
	return mgl64.Vec3{0, 0, -1}
}

// Follow moves the camera horizontally by the distance an avatar moved from prev to next and re-centres its
// target on the avatar.
func (c *Camera) Follow(prev, next mgl64.Vec3) {
	c.Position[0] -= prev.X() - next.X()
	c.Position[2] -= prev.Z() - next.Z()
	c.Target = next
}
