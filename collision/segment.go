package collision

import "github.com/go-gl/mathgl/mgl64"

// closestSegmentPoints returns the closest pair of points between segment p1-q1 and segment p2-q2.
func closestSegmentPoints(p1, q1, p2, q2 mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	const epsilon = 1e-12

	d1, d2, r := q1.Sub(p1), q2.Sub(p2), p1.Sub(p2)
	a, e, f := d1.Dot(d1), d2.Dot(d2), d2.Dot(r)

	var s, t float64
	switch {
	case a <= epsilon && e <= epsilon:
		return p1, p2
	case a <= epsilon:
		t = mgl64.Clamp(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e <= epsilon {
			s = mgl64.Clamp(-c/a, 0, 1)
			break
		}
		b := d1.Dot(d2)
		if denom := a*e - b*b; denom != 0 {
			s = mgl64.Clamp((b*f-c*e)/denom, 0, 1)
		}
		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = mgl64.Clamp(-c/a, 0, 1)
		} else if t > 1 {
			t = 1
			s = mgl64.Clamp((b-c)/a, 0, 1)
		}
	}
	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t))
}
