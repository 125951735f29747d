package collision

import "github.com/go-gl/mathgl/mgl64"

// Skin is the correction depth at or below which a capsule counts as separated from the geometry it
// touches. Capsules resting exactly on a surface are therefore not colliding with it.
const Skin = 1e-9

// Result is the minimum translation that separates a capsule from the geometry it penetrates.
type Result struct {
	// Normal is the unit direction to push the capsule in.
	Normal mgl64.Vec3
	// Depth is how far the capsule must be pushed along Normal. It is always positive.
	Depth float64
}

// Correction returns Normal scaled by Depth.
func (r Result) Correction() mgl64.Vec3 {
	return r.Normal.Mul(r.Depth)
}
