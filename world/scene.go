package world

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/locomotion/collision"
	"gopkg.in/yaml.v3"
)

// Vec is a point in a scene file, written as a three element sequence.
type Vec [3]float64

// Vec3 ...
func (v Vec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

// Scene describes the static collision geometry of a level and where avatars spawn.
type Scene struct {
	Ground    *Ground   `yaml:"ground,omitempty"`
	Obstacles []Box     `yaml:"obstacles,omitempty"`
	Triangles []RawFace `yaml:"triangles,omitempty"`
	Spawn     Vec       `yaml:"spawn"`
}

// Ground is a flat, upward facing rectangle.
type Ground struct {
	Center Vec     `yaml:"center"`
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
}

// Box is an axis aligned obstacle.
type Box struct {
	Name string `yaml:"name"`
	Min  Vec    `yaml:"min"`
	Max  Vec    `yaml:"max"`
}

// RawFace is a single triangle, such as part of a ramp. Its front face is given by the winding of A, B and C.
type RawFace struct {
	Name string `yaml:"name"`
	A    Vec    `yaml:"a"`
	B    Vec    `yaml:"b"`
	C    Vec    `yaml:"c"`
}

// DefaultScene returns a 1000x1000 ground plane with a few crates, a low step and a ramp. Avatars spawn
// above the centre of the ground.
func DefaultScene() Scene {
	return Scene{
		Ground: &Ground{Width: 1000, Depth: 1000},
		Obstacles: []Box{
			{Name: "crate", Min: Vec{150, 0, -50}, Max: Vec{250, 100, 50}},
			{Name: "tall_crate", Min: Vec{-250, 0, -250}, Max: Vec{-150, 200, -150}},
			{Name: "step", Min: Vec{-200, 0, 100}, Max: Vec{-100, 30, 200}},
		},
		Triangles: []RawFace{
			{Name: "ramp", A: Vec{100, 0, 200}, B: Vec{100, 0, 300}, C: Vec{250, 60, 200}},
			{Name: "ramp", A: Vec{250, 60, 200}, B: Vec{100, 0, 300}, C: Vec{250, 60, 300}},
		},
		Spawn: Vec{0, 100, 0},
	}
}

// ParseScene decodes a scene from YAML and validates it.
func ParseScene(data []byte) (Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("decode scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// LoadScene reads and parses the scene file at path.
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(data)
}

// Marshal encodes the scene as YAML.
func (s Scene) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Validate checks that every shape in the scene has a positive size.
func (s Scene) Validate() error {
	if g := s.Ground; g != nil && (g.Width <= 0 || g.Depth <= 0) {
		return fmt.Errorf("ground must have a positive size, got %vx%v", g.Width, g.Depth)
	}
	for _, b := range s.Obstacles {
		for i := range 3 {
			if b.Max[i] <= b.Min[i] {
				return fmt.Errorf("obstacle %q: max %v must exceed min %v on every axis", b.Name, b.Max, b.Min)
			}
		}
	}
	for _, f := range s.Triangles {
		if _, ok := (collision.Triangle{A: f.A.Vec3(), B: f.B.Vec3(), C: f.C.Vec3()}).Normal(); !ok {
			return fmt.Errorf("triangle %q is degenerate", f.Name)
		}
	}
	return nil
}

// Meshes returns the collision meshes of the scene: the ground first, then obstacles, then loose triangles
// grouped by name in the order the names first appear.
func (s Scene) Meshes() []Mesh {
	var meshes []Mesh
	if g := s.Ground; g != nil {
		meshes = append(meshes, PlaneMesh("ground", g.Center.Vec3(), g.Width, g.Depth))
	}
	for _, b := range s.Obstacles {
		meshes = append(meshes, BoxMesh(b.Name, b.Min.Vec3(), b.Max.Vec3()))
	}
	byName := make(map[string]int)
	for _, f := range s.Triangles {
		i, ok := byName[f.Name]
		if !ok {
			i = len(meshes)
			byName[f.Name] = i
			meshes = append(meshes, Mesh{Name: f.Name})
		}
		meshes[i].Triangles = append(meshes[i].Triangles, collision.Triangle{A: f.A.Vec3(), B: f.B.Vec3(), C: f.C.Vec3()})
	}
	return meshes
}
