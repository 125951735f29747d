package player

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/movement"
)

// Snapshot is the state of a player's avatar at the end of a frame: everything a renderer needs to draw it.
type Snapshot struct {
	Frame uint64

	Position mgl64.Vec3
	Rotation mgl64.Quat
	Yaw      float64

	Gait         movement.Gait
	Speed        float64
	FallingSpeed float64
	OnGround     bool
	Collided     bool

	Capsule collision.Capsule
	Camera  Camera
	// Bounds is the avatar model's bounding box in world space.
	Bounds cube.BBox
}

// Matrix returns the model matrix of the avatar.
func (s Snapshot) Matrix() mgl32.Mat4 {
	pos := game.Vec64To32(s.Position)
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(game.Quat64To32(s.Rotation).Mat4())
}

// RenderYaw returns the yaw of the avatar in single precision.
func (s Snapshot) RenderYaw() float32 {
	return game.YawOf32(game.Quat64To32(s.Rotation))
}

// boundsAt returns a box of the size passed with its centre at pos.
func boundsAt(pos mgl64.Vec3, size mgl32.Vec3) cube.BBox {
	c, half := game.Vec64To32(pos), size.Mul(0.5)
	min, max := c.Sub(half), c.Add(half)
	return cube.Box(min[0], min[1], min[2], max[0], max[1], max[2])
}
