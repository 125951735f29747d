package world

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/locomotion/collision"
)

// Mesh is a named piece of static collision geometry.
type Mesh struct {
	Name      string
	Triangles []collision.Triangle
}

// PlaneMesh returns a horizontal rectangle of width (along x) by depth (along z) centred on center, facing up.
func PlaneMesh(name string, center mgl64.Vec3, width, depth float64) Mesh {
	x0, x1 := center.X()-width/2, center.X()+width/2
	z0, z1 := center.Z()-depth/2, center.Z()+depth/2
	y := center.Y()
	return Mesh{Name: name, Triangles: []collision.Triangle{
		{A: mgl64.Vec3{x0, y, z0}, B: mgl64.Vec3{x0, y, z1}, C: mgl64.Vec3{x1, y, z0}},
		{A: mgl64.Vec3{x1, y, z0}, B: mgl64.Vec3{x0, y, z1}, C: mgl64.Vec3{x1, y, z1}},
	}}
}

// BoxMesh returns the twelve triangles of an axis aligned box, all facing outwards.
func BoxMesh(name string, min, max mgl64.Vec3) Mesh {
	corner := func(x, y, z int) mgl64.Vec3 {
		c := min
		if x == 1 {
			c[0] = max[0]
		}
		if y == 1 {
			c[1] = max[1]
		}
		if z == 1 {
			c[2] = max[2]
		}
		return c
	}
	faces := [6][4]mgl64.Vec3{
		{corner(0, 0, 0), corner(0, 1, 0), corner(0, 1, 1), corner(0, 0, 1)}, // -x
		{corner(1, 0, 0), corner(1, 0, 1), corner(1, 1, 1), corner(1, 1, 0)}, // +x
		{corner(0, 0, 0), corner(0, 0, 1), corner(1, 0, 1), corner(1, 0, 0)}, // -y
		{corner(0, 1, 0), corner(1, 1, 0), corner(1, 1, 1), corner(0, 1, 1)}, // +y
		{corner(0, 0, 0), corner(1, 0, 0), corner(1, 1, 0), corner(0, 1, 0)}, // -z
		{corner(0, 0, 1), corner(0, 1, 1), corner(1, 1, 1), corner(1, 0, 1)}, // +z
	}
	center := min.Add(max).Mul(0.5)
	m := Mesh{Name: name, Triangles: make([]collision.Triangle, 0, 12)}
	for _, f := range faces {
		m.Triangles = append(m.Triangles,
			facingAway(collision.Triangle{A: f[0], B: f[1], C: f[2]}, center),
			facingAway(collision.Triangle{A: f[0], B: f[2], C: f[3]}, center),
		)
	}
	return m
}

// facingAway flips the winding of t if its normal points towards center.
func facingAway(t collision.Triangle, center mgl64.Vec3) collision.Triangle {
	n, ok := t.Normal()
	if !ok {
		return t
	}
	centroid := t.A.Add(t.B).Add(t.C).Mul(1.0 / 3)
	if n.Dot(centroid.Sub(center)) < 0 {
		t.B, t.C = t.C, t.B
	}
	return t
}
