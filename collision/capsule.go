package collision

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Capsule is a swept sphere: every point within Radius of the segment between Start and End.
type Capsule struct {
	Start, End mgl64.Vec3
	Radius     float64
}

// NewCapsule returns a capsule from its two endpoints and radius.
func NewCapsule(start, end mgl64.Vec3, radius float64) Capsule {
	return Capsule{Start: start, End: end, Radius: radius}
}

// CapsuleFromBounds returns an upright capsule whose lowest point is at feet, sized from the height and
// depth of an avatar's bounding box. The radius is half the depth; if the box is shorter than it is deep
// the capsule collapses to a sphere.
func CapsuleFromBounds(feet mgl64.Vec3, height, depth float64) Capsule {
	r := depth / 2
	top := math.Max(height-r, r)
	return Capsule{
		Start:  feet.Add(mgl64.Vec3{0, r, 0}),
		End:    feet.Add(mgl64.Vec3{0, top, 0}),
		Radius: r,
	}
}

// Translate returns the capsule moved by v.
func (c Capsule) Translate(v mgl64.Vec3) Capsule {
	c.Start = c.Start.Add(v)
	c.End = c.End.Add(v)
	return c
}

// Center returns the midpoint of the capsule's axis.
func (c Capsule) Center() mgl64.Vec3 {
	return c.Start.Add(c.End).Mul(0.5)
}

// Height returns the total vertical extent of an upright capsule, including both hemispherical caps.
func (c Capsule) Height() float64 {
	return c.End.Y() - c.Start.Y() + c.Radius*2
}

// BBox returns the smallest axis aligned box containing the capsule.
func (c Capsule) BBox() cube.BBox {
	return cube.Box(
		math.Min(c.Start.X(), c.End.X())-c.Radius,
		math.Min(c.Start.Y(), c.End.Y())-c.Radius,
		math.Min(c.Start.Z(), c.End.Z())-c.Radius,
		math.Max(c.Start.X(), c.End.X())+c.Radius,
		math.Max(c.Start.Y(), c.End.Y())+c.Radius,
		math.Max(c.Start.Z(), c.End.Z())+c.Radius,
	)
}

// IntersectsBox reports whether the capsule's bounds overlap the box passed.
func (c Capsule) IntersectsBox(b cube.BBox) bool {
	return c.BBox().IntersectsWith(b)
}

// Valid returns true if the capsule has a positive, finite radius and finite endpoints.
func (c Capsule) Valid() bool {
	if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
		return false
	}
	for _, v := range [2]mgl64.Vec3{c.Start, c.End} {
		for _, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	}
	return true
}
