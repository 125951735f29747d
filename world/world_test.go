package world

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/oerror"
)

func TestBuildSealsWorld(t *testing.T) {
	w := New(nil)
	if _, err := w.Index(); !errors.Is(err, oerror.ErrIndexNotBuilt) {
		t.Fatalf("expected ErrIndexNotBuilt before building, got %v", err)
	}
	if err := w.Register(PlaneMesh("ground", mgl64.Vec3{}, 100, 100)); err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	idx, err := w.Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if idx.Len() != 2 || !w.Sealed() {
		t.Fatalf("expected a sealed index of 2 triangles, got %d (sealed=%v)", idx.Len(), w.Sealed())
	}
	if err := w.Register(BoxMesh("late", mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})); !errors.Is(err, oerror.ErrIndexSealed) {
		t.Fatalf("expected ErrIndexSealed when registering after build, got %v", err)
	}
	if _, err := w.Build(); !errors.Is(err, oerror.ErrIndexSealed) {
		t.Fatalf("expected ErrIndexSealed when building twice, got %v", err)
	}
	if got, _ := w.Index(); got != idx {
		t.Fatalf("expected Index to return the built index")
	}
}

func TestChecksumIsDeterministic(t *testing.T) {
	build := func(s Scene) uint64 {
		w := New(nil)
		if err := w.RegisterScene(s); err != nil {
			t.Fatalf("unexpected register error: %v", err)
		}
		if _, err := w.Build(); err != nil {
			t.Fatalf("unexpected build error: %v", err)
		}
		return w.Checksum()
	}
	a, b := build(DefaultScene()), build(DefaultScene())
	if a == 0 || a != b {
		t.Fatalf("expected equal, non-zero checksums, got %x and %x", a, b)
	}
	moved := DefaultScene()
	moved.Obstacles[0].Max[1] = 101
	if build(moved) == a {
		t.Fatalf("expected a different checksum for different geometry")
	}
}

func TestBoxMeshFacesOutwards(t *testing.T) {
	min, max := mgl64.Vec3{-1, 0, -2}, mgl64.Vec3{3, 4, 2}
	m := BoxMesh("box", min, max)
	if len(m.Triangles) != 12 {
		t.Fatalf("expected 12 triangles, got %d", len(m.Triangles))
	}
	center := min.Add(max).Mul(0.5)
	for i, tri := range m.Triangles {
		n, ok := tri.Normal()
		if !ok {
			t.Fatalf("triangle %d is degenerate", i)
		}
		centroid := tri.A.Add(tri.B).Add(tri.C).Mul(1.0 / 3)
		if n.Dot(centroid.Sub(center)) <= 0 {
			t.Fatalf("triangle %d faces inwards: normal %v", i, n)
		}
	}
}

func TestCapsuleRestsOnCrate(t *testing.T) {
	w := New(nil)
	if err := w.RegisterScene(DefaultScene()); err != nil {
		t.Fatalf("unexpected register error: %v", err)
	}
	idx, err := w.Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	// The default crate's top is at y=100; sink a capsule 4 units into it.
	c := collision.CapsuleFromBounds(mgl64.Vec3{180, 96, 10}, 180, 20)
	r, ok := idx.Intersect(c)
	if !ok {
		t.Fatalf("expected the capsule to collide with the crate")
	}
	if r.Normal.Sub(mgl64.Vec3{0, 1, 0}).Len() > 1e-9 || math.Abs(r.Depth-4) > 1e-9 {
		t.Fatalf("expected a push of 4 upwards, got %+v", r)
	}
}

func TestParseScene(t *testing.T) {
	s, err := ParseScene([]byte(`
ground:
  center: [0, 0, 0]
  width: 200
  depth: 100
obstacles:
  - name: wall
    min: [10, 0, -5]
    max: [12, 50, 5]
triangles:
  - name: ramp
    a: [0, 0, 0]
    b: [0, 0, 10]
    c: [10, 5, 0]
spawn: [0, 40, 0]
`))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if s.Spawn != (Vec{0, 40, 0}) || s.Ground.Width != 200 {
		t.Fatalf("unexpected scene %+v", s)
	}
	meshes := s.Meshes()
	if len(meshes) != 3 || meshes[0].Name != "ground" || meshes[1].Name != "wall" || meshes[2].Name != "ramp" {
		t.Fatalf("unexpected meshes %+v", meshes)
	}
	if len(meshes[2].Triangles) != 1 {
		t.Fatalf("expected one ramp triangle, got %d", len(meshes[2].Triangles))
	}

	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	again, err := ParseScene(data)
	if err != nil {
		t.Fatalf("unexpected error parsing marshalled scene: %v", err)
	}
	if len(again.Meshes()) != len(meshes) {
		t.Fatalf("expected the marshalled scene to keep its meshes")
	}
}

func TestParseSceneRejectsInvalidShapes(t *testing.T) {
	for name, doc := range map[string]string{
		"flat ground":     "ground: {width: 0, depth: 10}\n",
		"inverted box":    "obstacles: [{name: bad, min: [0, 0, 0], max: [1, -1, 1]}]\n",
		"degenerate face": "triangles: [{name: line, a: [0, 0, 0], b: [1, 1, 1], c: [2, 2, 2]}]\n",
		"malformed yaml":  "ground: [\n",
	} {
		if _, err := ParseScene([]byte(doc)); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}
