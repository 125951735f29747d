package movement

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/sasha-s/go-deadlock"
)

// Frame is the outcome of advancing one avatar by a single frame.
type Frame struct {
	// State is the locomotion state after the frame, including the grounded flag set by collision.
	State State
	// Displacement is the translation the simulation asked for, before collision.
	Displacement mgl64.Vec3
	// Correction is the push-out applied after the displacement. It is only set if Collided is true.
	Correction collision.Result
	Collided   bool
	// Capsule is the avatar's capsule at the end of the frame.
	Capsule collision.Capsule
	// Delta is how far the capsule actually moved during the frame.
	Delta mgl64.Vec3
}

type avatar struct {
	capsule collision.Capsule
	state   State
}

// Controller integrates the movement of avatars against static geometry. Each avatar's capsule and locomotion
// state are held by the controller, keyed by the avatar's id. Different avatars may be advanced from
// different goroutines, but a single avatar must only be advanced by one goroutine at a time.
type Controller struct {
	opts  Options
	world Querier

	avatars map[uuid.UUID]*avatar
	mu      deadlock.RWMutex
}

// NewController returns a controller resolving collisions against the querier passed.
func NewController(world Querier, opts Options) *Controller {
	return &Controller{
		opts:    opts,
		world:   world,
		avatars: make(map[uuid.UUID]*avatar),
	}
}

// Options returns the options avatars are simulated with.
func (c *Controller) Options() Options {
	return c.opts
}

// Attach starts simulating the capsule passed under the id passed. The avatar starts airborne with no speed.
func (c *Controller) Attach(id uuid.UUID, capsule collision.Capsule) error {
	if !capsule.Valid() {
		return fmt.Errorf("attach avatar %s: %w", id, oerror.ErrInvalidDimensions)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.avatars[id]; ok {
		return fmt.Errorf("attach avatar %s: %w", id, oerror.ErrAvatarExists)
	}
	c.avatars[id] = &avatar{capsule: capsule}
	return nil
}

// Detach stops simulating the avatar with the id passed. It returns false if no such avatar was attached.
func (c *Controller) Detach(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.avatars[id]; !ok {
		return false
	}
	delete(c.avatars, id)
	return true
}

// Capsule returns the current capsule of an avatar.
func (c *Controller) Capsule(id uuid.UUID) (collision.Capsule, bool) {
	a, ok := c.avatar(id)
	if !ok {
		return collision.Capsule{}, false
	}
	return a.capsule, true
}

// State returns the current locomotion state of an avatar.
func (c *Controller) State(id uuid.UUID) (State, bool) {
	a, ok := c.avatar(id)
	if !ok {
		return State{}, false
	}
	return a.state, true
}

// Len returns the number of attached avatars.
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.avatars)
}

// Advance runs one frame for an avatar: the locomotion state is stepped, the capsule is translated by the
// resulting displacement and then pushed out of any geometry it penetrates, which also decides whether the
// avatar is on the ground for the next frame. A non-positive or non-finite dt leaves the avatar untouched.
func (c *Controller) Advance(id uuid.UUID, in Input, dt float64) (Frame, error) {
	a, ok := c.avatar(id)
	if !ok {
		return Frame{}, fmt.Errorf("advance avatar %s: %w", id, oerror.ErrUnknownAvatar)
	}

	if !game.ValidDelta(dt) {
		return Frame{State: a.state, Capsule: a.capsule}, nil
	}
	state, displacement := Step(a.state, in, dt, c.opts)
	before := a.capsule
	moved, onGround, res, hit := Resolve(c.world, before.Translate(displacement))
	state.OnGround = onGround

	a.state, a.capsule = state, moved
	return Frame{
		State:        state,
		Displacement: displacement,
		Correction:   res,
		Collided:     hit,
		Capsule:      moved,
		Delta:        moved.Start.Sub(before.Start),
	}, nil
}

func (c *Controller) avatar(id uuid.UUID) (*avatar, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.avatars[id]
	return a, ok
}
