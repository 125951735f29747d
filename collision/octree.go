package collision

import (
	"math"
	"slices"
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/worker"
)

const (
	// maxTrianglesPerLeaf is the number of triangles a node may hold before it is split into octants.
	maxTrianglesPerLeaf = 8
	// maxDepth is the deepest a node may be split.
	maxDepth = 16
	// boundsPadding is added to each side of the root bounds so geometry on the boundary is always inside.
	boundsPadding = 0.01
	// maxResolvePasses caps the face and edge sweeps of a single query.
	maxResolvePasses = 4
)

// Index is a static octree over collision triangles. It is built once and never modified afterwards, so it
// may be queried from any number of goroutines.
type Index struct {
	triangles []Triangle
	root      *node
	bounds    cube.BBox
}

type node struct {
	box      cube.BBox
	ids      []int32
	children []*node
}

// Build builds an index over the triangles passed. Degenerate triangles are kept but never collide. The
// octants of the root are split concurrently.
func Build(triangles []Triangle) *Index {
	idx := &Index{triangles: slices.Clone(triangles)}
	if len(idx.triangles) == 0 {
		return idx
	}
	assert.IsTrue(len(idx.triangles) <= math.MaxInt32, "too many triangles for index: %d", len(idx.triangles))

	idx.bounds = boundsOf(idx.triangles).Grow(boundsPadding)
	ids := make([]int32, len(idx.triangles))
	for i := range ids {
		ids[i] = int32(i)
	}
	idx.root = &node{box: idx.bounds, ids: ids}
	if len(ids) <= maxTrianglesPerLeaf {
		return idx
	}

	var (
		wg       sync.WaitGroup
		panicMu  sync.Mutex
		panicked any
	)
	for _, child := range idx.distribute(idx.root) {
		if len(child.ids) <= maxTrianglesPerLeaf {
			continue
		}
		wg.Add(1)
		worker.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicMu.Lock()
					panicked = r
					panicMu.Unlock()
				}
			}()
			idx.split(child, 1)
		})
	}
	wg.Wait()
	if panicked != nil {
		panic(panicked)
	}
	return idx
}

// split distributes the triangles of n into its octants and keeps splitting octants that hold too many.
func (idx *Index) split(n *node, depth int) {
	for _, child := range idx.distribute(n) {
		if len(child.ids) > maxTrianglesPerLeaf && depth < maxDepth {
			idx.split(child, depth+1)
		}
	}
}

// distribute moves the triangles of n into every octant they intersect, pruning empty octants, and
// returns the octants kept.
func (idx *Index) distribute(n *node) []*node {
	half := n.box.Max().Sub(n.box.Min()).Mul(0.5)
	octants := make([]*node, 0, 8)
	for x := 0.0; x < 2; x++ {
		for y := 0.0; y < 2; y++ {
			for z := 0.0; z < 2; z++ {
				min := n.box.Min().Add(mgl64.Vec3{x * half[0], y * half[1], z * half[2]})
				max := min.Add(half)
				octants = append(octants, &node{box: cube.Box(min[0], min[1], min[2], max[0], max[1], max[2])})
			}
		}
	}
	mid := n.box.Min().Add(half)
	for _, id := range n.ids {
		t := idx.triangles[id]
		placed := false
		for _, o := range octants {
			if t.IntersectsBox(o.box) {
				o.ids = append(o.ids, id)
				placed = true
			}
		}
		if !placed {
			// Rounding may leave a triangle on the parent's boundary touching none of the octants, so it
			// goes to the octant holding its centroid.
			c := t.A.Add(t.B).Add(t.C).Mul(1.0 / 3)
			i := 0
			if c[0] >= mid[0] {
				i += 4
			}
			if c[1] >= mid[1] {
				i += 2
			}
			if c[2] >= mid[2] {
				i++
			}
			octants[i].ids = append(octants[i].ids, id)
		}
	}
	n.ids = nil
	n.children = slices.DeleteFunc(octants, func(o *node) bool {
		return len(o.ids) == 0
	})
	assert.IsTrue(len(n.children) > 0, "octree node lost all of its triangles while splitting")
	return n.children
}

// Intersect returns the translation that separates the capsule from every triangle it penetrates. The bool is
// false if the capsule does not penetrate any geometry deeper than Skin. Candidate triangles are tested in the
// order they were passed to Build, each against the capsule already moved out of the previous ones, so the
// result is deterministic for a given index. A capsule buried behind one-sided geometry may need more than
// maxResolvePasses sweeps, in which case the partial correction is returned.
func (idx *Index) Intersect(c Capsule) (Result, bool) {
	if idx.root == nil || !c.Valid() {
		return Result{}, false
	}
	s := getScratch()
	defer putScratch(s)

	// Face contacts are resolved before edge contacts. Otherwise the shared edges inside a flat surface could
	// push the capsule sideways before the face under it had a chance to lift it clear. A push out of one
	// triangle can leave the capsule in another at concave corners, so sweeps repeat until one is clean. Each
	// sweep also gathers the candidates around where the capsule has been moved to.
	moved, hit := c, false
	for range maxResolvePasses {
		idx.collect(idx.root, moved.BBox(), s)
		slices.Sort(s.ids)

		swept := false
		for _, edges := range [2]bool{false, true} {
			for _, id := range s.ids {
				if r, ok := idx.triangles[id].intersectCapsule(moved, edges); ok && r.Depth > Skin {
					moved = moved.Translate(r.Correction())
					swept = true
				}
			}
		}
		if !swept {
			break
		}
		hit = true
	}
	if !hit {
		return Result{}, false
	}
	v := moved.Center().Sub(c.Center())
	depth := v.Len()
	if depth <= Skin {
		return Result{}, false
	}
	return Result{Normal: v.Mul(1 / depth), Depth: depth}, true
}

func (idx *Index) collect(n *node, bounds cube.BBox, s *scratch) {
	if !bounds.IntersectsWith(n.box) {
		return
	}
	for _, id := range n.ids {
		if _, ok := s.seen[id]; !ok {
			s.seen[id] = struct{}{}
			s.ids = append(s.ids, id)
		}
	}
	for _, child := range n.children {
		idx.collect(child, bounds, s)
	}
}

// Len returns the number of triangles in the index.
func (idx *Index) Len() int {
	return len(idx.triangles)
}

// Bounds returns the box enclosing every triangle in the index.
func (idx *Index) Bounds() cube.BBox {
	return idx.bounds
}

// Triangle returns the triangle with the index passed, in the order passed to Build.
func (idx *Index) Triangle(i int) Triangle {
	return idx.triangles[i]
}

// Stats returns the number of nodes and leaves in the tree and its depth.
func (idx *Index) Stats() (nodes, leaves, depth int) {
	var walk func(n *node, d int)
	walk = func(n *node, d int) {
		nodes++
		depth = max(depth, d)
		if len(n.children) == 0 {
			leaves++
		}
		for _, child := range n.children {
			walk(child, d+1)
		}
	}
	if idx.root != nil {
		walk(idx.root, 0)
	}
	return
}

func boundsOf(triangles []Triangle) cube.BBox {
	min, max := triangles[0].A, triangles[0].A
	for _, t := range triangles {
		for _, v := range [3]mgl64.Vec3{t.A, t.B, t.C} {
			for i := range 3 {
				min[i] = math.Min(min[i], v[i])
				max[i] = math.Max(max[i], v[i])
			}
		}
	}
	return cube.Box(min[0], min[1], min[2], max[0], max[1], max[2])
}
