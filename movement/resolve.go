package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/locomotion/collision"
)

// GroundProbe is how far below a capsule Resolve looks for ground the capsule rests on without penetrating.
const GroundProbe = 1e-3

// Querier answers capsule intersection queries against static geometry. *collision.Index implements it.
type Querier interface {
	Intersect(c collision.Capsule) (collision.Result, bool)
}

// Resolve pushes the capsule out of any geometry it penetrates and reports whether it is on the ground. A
// capsule that was pushed out of something is on the ground. A miss does not by itself clear the flag: a
// capsule that penetrates nothing but rests on an upward facing surface within GroundProbe below it, such
// as one pushed out of the floor the frame before, stays on the ground. Only a capsule with nothing under it
// is airborne. The correction applied, if any, is returned along with the moved capsule.
func Resolve(q Querier, c collision.Capsule) (moved collision.Capsule, onGround bool, res collision.Result, hit bool) {
	if res, hit = q.Intersect(c); hit {
		return c.Translate(res.Correction()), true, res, true
	}
	probe, ok := q.Intersect(c.Translate(mgl64.Vec3{0, -GroundProbe, 0}))
	return c, ok && probe.Normal.Y() > 0, collision.Result{}, false
}
