package collision

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is a single face of static collision geometry. Its front face is the side its normal,
// (B-A)×(C-A), points to.
type Triangle struct {
	A, B, C mgl64.Vec3
}

// Normal returns the unit normal of the triangle. The bool is false for degenerate triangles.
func (t Triangle) Normal() (mgl64.Vec3, bool) {
	n := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	l := n.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}, false
	}
	return n.Mul(1 / l), true
}

// ContainsPoint reports whether the projection of p onto the triangle's plane lies inside the triangle.
func (t Triangle) ContainsPoint(p mgl64.Vec3) bool {
	v0, v1, v2 := t.C.Sub(t.A), t.B.Sub(t.A), p.Sub(t.A)

	dot00, dot01, dot02 := v0.Dot(v0), v0.Dot(v1), v0.Dot(v2)
	dot11, dot12 := v1.Dot(v1), v1.Dot(v2)

	denom := dot00*dot11 - dot01*dot01
	if denom == 0 {
		return false
	}
	inv := 1 / denom
	u := (dot11*dot02 - dot01*dot12) * inv
	v := (dot00*dot12 - dot01*dot02) * inv
	return u >= 0 && v >= 0 && u+v <= 1
}

// BBox returns the bounding box of the triangle.
func (t Triangle) BBox() cube.BBox {
	return cube.Box(
		math.Min(t.A.X(), math.Min(t.B.X(), t.C.X())),
		math.Min(t.A.Y(), math.Min(t.B.Y(), t.C.Y())),
		math.Min(t.A.Z(), math.Min(t.B.Z(), t.C.Z())),
		math.Max(t.A.X(), math.Max(t.B.X(), t.C.X())),
		math.Max(t.A.Y(), math.Max(t.B.Y(), t.C.Y())),
		math.Max(t.A.Z(), math.Max(t.B.Z(), t.C.Z())),
	)
}

// IntersectsBox reports whether the triangle overlaps the box, using the separating axis test over the three
// box axes, the nine edge cross products and the triangle normal.
func (t Triangle) IntersectsBox(b cube.BBox) bool {
	center := b.Min().Add(b.Max()).Mul(0.5)
	extents := b.Max().Sub(b.Min()).Mul(0.5)

	v0, v1, v2 := t.A.Sub(center), t.B.Sub(center), t.C.Sub(center)
	edges := [3]mgl64.Vec3{v1.Sub(v0), v2.Sub(v1), v0.Sub(v2)}
	boxAxes := [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	var axes [13]mgl64.Vec3
	i := 0
	for _, a := range boxAxes {
		for _, e := range edges {
			axes[i] = a.Cross(e)
			i++
		}
	}
	axes[9], axes[10], axes[11] = boxAxes[0], boxAxes[1], boxAxes[2]
	axes[12] = edges[0].Cross(edges[1])

	for _, axis := range axes {
		if axis.LenSqr() < 1e-18 {
			continue
		}
		p0, p1, p2 := v0.Dot(axis), v1.Dot(axis), v2.Dot(axis)
		r := extents[0]*math.Abs(axis[0]) + extents[1]*math.Abs(axis[1]) + extents[2]*math.Abs(axis[2])
		if math.Max(-math.Max(p0, math.Max(p1, p2)), math.Min(p0, math.Min(p1, p2))) > r {
			return false
		}
	}
	return true
}

// intersectCapsule tests a capsule against the triangle and returns the correction that separates them. If
// edges is false, only contacts with the face of the triangle are reported.
func (t Triangle) intersectCapsule(c Capsule, edges bool) (Result, bool) {
	n, ok := t.Normal()
	if !ok {
		return Result{}, false
	}
	constant := -n.Dot(t.A)
	d1 := n.Dot(c.Start) + constant - c.Radius
	d2 := n.Dot(c.End) + constant - c.Radius
	if (d1 > 0 && d2 > 0) || (d1 < -c.Radius && d2 < -c.Radius) {
		return Result{}, false
	}

	delta := 0.0
	if denom := math.Abs(d1) + math.Abs(d2); denom > 0 {
		delta = math.Abs(d1 / denom)
	}
	if p := c.Start.Add(c.End.Sub(c.Start).Mul(delta)); t.ContainsPoint(p) {
		return Result{Normal: n, Depth: math.Abs(math.Min(d1, d2))}, true
	}
	if !edges {
		return Result{}, false
	}

	r2 := c.Radius * c.Radius
	for _, edge := range [3][2]mgl64.Vec3{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
		onAxis, onEdge := closestSegmentPoints(c.Start, c.End, edge[0], edge[1])
		diff := onAxis.Sub(onEdge)
		distSqr := diff.LenSqr()
		if distSqr >= r2 {
			continue
		}
		dist := math.Sqrt(distSqr)
		normal := n
		if dist > 1e-12 {
			normal = diff.Mul(1 / dist)
		}
		return Result{Normal: normal, Depth: c.Radius - dist}, true
	}
	return Result{}, false
}
