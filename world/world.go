package world

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// World holds the static collision geometry of a level. Geometry is registered during setup and then built
// into a spatial index exactly once. After that the world is sealed: the index is shared, read-only state and
// no geometry may be added or removed.
type World struct {
	log *logrus.Logger

	meshes    []Mesh
	index     *collision.Index
	checksum  uint64
	triangles int

	deadlock.RWMutex
}

// New returns an empty, unsealed world. A nil logger discards all output.
func New(log *logrus.Logger) *World {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &World{log: log}
}

// Register adds a mesh to the world. It returns oerror.ErrIndexSealed once the index has been built.
func (w *World) Register(m Mesh) error {
	w.Lock()
	defer w.Unlock()

	if w.index != nil {
		return fmt.Errorf("register mesh %q: %w", m.Name, oerror.ErrIndexSealed)
	}
	w.meshes = append(w.meshes, Mesh{Name: m.Name, Triangles: slices.Clone(m.Triangles)})
	w.triangles += len(m.Triangles)
	return nil
}

// RegisterScene registers every mesh of the scene passed.
func (w *World) RegisterScene(s Scene) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("register scene: %w", err)
	}
	for _, m := range s.Meshes() {
		if err := w.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Build builds the spatial index from every registered mesh and seals the world. It may only be called once.
func (w *World) Build() (*collision.Index, error) {
	w.Lock()
	defer w.Unlock()

	if w.index != nil {
		return nil, fmt.Errorf("build index: %w", oerror.ErrIndexSealed)
	}
	triangles := make([]collision.Triangle, 0, w.triangles)
	for _, m := range w.meshes {
		triangles = append(triangles, m.Triangles...)
	}

	start := time.Now()
	w.index = collision.Build(triangles)
	w.checksum = checksum(triangles)

	nodes, leaves, depth := w.index.Stats()
	w.log.WithFields(logrus.Fields{
		"meshes":    len(w.meshes),
		"triangles": len(triangles),
		"nodes":     nodes,
		"leaves":    leaves,
		"depth":     depth,
		"checksum":  fmt.Sprintf("%016x", w.checksum),
		"took":      time.Since(start),
	}).Info("built collision index")
	return w.index, nil
}

// Index returns the built spatial index, or oerror.ErrIndexNotBuilt if Build was not yet called.
func (w *World) Index() (*collision.Index, error) {
	w.RLock()
	defer w.RUnlock()

	if w.index == nil {
		return nil, oerror.ErrIndexNotBuilt
	}
	return w.index, nil
}

// Sealed returns true if the index has been built.
func (w *World) Sealed() bool {
	w.RLock()
	defer w.RUnlock()
	return w.index != nil
}

// Checksum returns a hash of every triangle in the built index, in registration order. Two worlds built
// from the same geometry have the same checksum. It is zero before the index is built.
func (w *World) Checksum() uint64 {
	w.RLock()
	defer w.RUnlock()
	return w.checksum
}

// Meshes returns the names of the registered meshes and their triangle counts.
func (w *World) Meshes() map[string]int {
	w.RLock()
	defer w.RUnlock()

	counts := make(map[string]int, len(w.meshes))
	for _, m := range w.meshes {
		counts[m.Name] += len(m.Triangles)
	}
	return counts
}

// Bounds returns the bounds of the built index.
func (w *World) Bounds() cube.BBox {
	w.RLock()
	defer w.RUnlock()

	if w.index == nil {
		return cube.BBox{}
	}
	return w.index.Bounds()
}

func checksum(triangles []collision.Triangle) uint64 {
	h := xxh3.New()
	buf := make([]byte, 8)
	for _, t := range triangles {
		for _, v := range [3][3]float64{t.A, t.B, t.C} {
			for _, f := range v {
				binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
				_, _ = h.Write(buf)
			}
		}
	}
	return h.Sum64()
}
