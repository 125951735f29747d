package player

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/oomph-ac/locomotion/animation"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/input"
	"github.com/oomph-ac/locomotion/movement"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/utils"
	"github.com/sirupsen/logrus"
)

// Asset is what the asset loader hands over once an avatar's model and animation clips are loaded.
type Asset struct {
	// Bounds is the bounding box of the avatar model. Its height and depth size the collision capsule.
	Bounds cube.BBox
	// Actions maps animation clip names to their playable actions.
	Actions animation.Map
	// Mixer advances the playback of Actions.
	Mixer animation.Mixer
}

// Player is a player-controlled avatar. It is driven by a single goroutine: key events and ticks must not be
// delivered concurrently.
type Player struct {
	id  uuid.UUID
	log *logrus.Logger
	// Dbg writes debug notifications for the subsystems enabled in the settings.
	Dbg *Debugger

	keys      input.KeyState
	direction input.DirectionResolver

	controller *movement.Controller
	smoother   movement.OrientationSmoother
	animOpts   animation.Options
	anims      *animation.StateMachine

	spawn    mgl64.Vec3
	camera   Camera
	position mgl64.Vec3
	facing   mgl64.Quat
	size     mgl32.Vec3

	loaded  bool
	frame   uint64
	history *utils.CircularQueue[Snapshot]
}

// New returns a player whose avatar will be simulated by the controller passed and placed with its feet at
// spawn once loaded. A nil logger discards all output.
func New(log *logrus.Logger, controller *movement.Controller, spawn mgl64.Vec3, s settings.Settings) *Player {
	if log == nil {
		log = nopLogger()
	}
	p := &Player{
		id:  uuid.New(),
		log: log,
		Dbg: NewDebugger(log),

		controller: controller,
		smoother:   movement.NewOrientationSmoother(s.MaxTurnStep(), s.Orientation.StepsPerFrame),
		animOpts: animation.Options{
			FadeDuration: s.Animation.FadeDuration,
			Initial:      game.ClipIdle,
			Required:     s.Animation.RequiredClips,
		},

		spawn: spawn,
		camera: Camera{
			Position: mgl64.Vec3(s.Camera.Position),
			Target:   mgl64.Vec3(s.Camera.Target),
		},
		facing:  mgl64.QuatIdent(),
		history: utils.NewCircularQueue[Snapshot](s.History),
	}
	p.Dbg.Enable(DebugModeMovementSim, s.Debug.Movement)
	p.Dbg.Enable(DebugModeCollision, s.Debug.Collision)
	p.Dbg.Enable(DebugModeAnimation, s.Debug.Animation)
	return p
}

// ID returns the id of the player's avatar.
func (p *Player) ID() uuid.UUID {
	return p.id
}

// Log returns the logger of the player.
func (p *Player) Log() *logrus.Logger {
	return p.log
}

// HandleKey updates the held keys from a key-down or key-up event. Keys that do not drive locomotion are
// ignored and false is returned.
func (p *Player) HandleKey(name string, down bool) bool {
	k, ok := input.ParseKey(name)
	if !ok {
		p.log.Debugf("ignoring key %q", name)
		return false
	}
	p.keys.Set(k, down)
	return true
}

// Keys returns the currently held keys.
func (p *Player) Keys() input.KeyState {
	return p.keys
}

// Camera returns the camera following the avatar.
func (p *Player) Camera() Camera {
	return p.camera
}

// Load finishes setting up the avatar from its loaded assets. The animation clip set is validated before
// anything else: a *oerror.MissingClipError is returned, and the avatar stays unloaded, if a required clip is
// absent. The collision capsule is sized from the model bounds, with its radius half the model's depth.
func (p *Player) Load(a Asset) error {
	if p.loaded {
		return fmt.Errorf("load avatar %s: already loaded", p.id)
	}
	if err := animation.Validate(a.Actions, append(slices.Clone(p.animOpts.Required), p.animOpts.Initial)...); err != nil {
		p.log.WithError(err).Errorf("avatar %s cannot be loaded", p.id)
		return fmt.Errorf("load avatar %s: %w", p.id, err)
	}

	size := a.Bounds.Max().Sub(a.Bounds.Min())
	height, depth := float64(size.Y()), float64(size.Z())
	if !(height > 0) || !(depth > 0) {
		return fmt.Errorf("load avatar %s: model bounds %v: %w", p.id, size, oerror.ErrInvalidDimensions)
	}
	capsule := collision.CapsuleFromBounds(p.spawn, height, depth)

	anims, err := animation.New(a.Mixer, a.Actions, p.animOpts, p.log)
	if err != nil {
		return fmt.Errorf("load avatar %s: %w", p.id, err)
	}
	if err := p.controller.Attach(p.id, capsule); err != nil {
		return fmt.Errorf("load avatar %s: %w", p.id, err)
	}

	p.anims = anims
	p.size = size
	p.position = movement.AvatarPosition(capsule)
	p.loaded = true
	p.log.WithFields(logrus.Fields{
		"avatar":  p.id,
		"radius":  capsule.Radius,
		"height":  capsule.Height(),
		"spawn":   p.spawn,
		"clips":   a.Actions.Keys(),
		"history": p.history.Cap(),
	}).Info("avatar loaded")
	return nil
}

// Loaded returns true once Load succeeded.
func (p *Player) Loaded() bool {
	return p.loaded
}

// Animation returns the animation state machine of the avatar, or nil before it is loaded.
func (p *Player) Animation() *animation.StateMachine {
	return p.anims
}

// Tick runs one frame of dt seconds: the held keys resolve to a direction, the avatar's locomotion is stepped
// and its capsule moved and pushed out of the world, the avatar and camera follow the capsule, the avatar
// turns towards its direction of movement and the animation matching its gait is crossfaded in and advanced.
// Tick does nothing and returns false before the avatar is loaded, or if dt is not a positive, finite number.
func (p *Player) Tick(dt float64) (Snapshot, bool) {
	if !p.loaded {
		return Snapshot{}, false
	}
	if !game.ValidDelta(dt) {
		p.log.Debugf("skipping frame with degenerate delta %v", dt)
		return Snapshot{}, false
	}

	offset := p.direction.Resolve(p.keys)
	f, err := p.controller.Advance(p.id, movement.Input{
		Keys:            p.keys,
		DirectionOffset: offset,
		CameraForward:   p.camera.Forward(),
	}, dt)
	if err != nil {
		p.log.WithError(err).Error("unable to advance avatar")
		return Snapshot{}, false
	}
	p.frame++

	p.Dbg.Notify(DebugModeMovementSim, true, "frame=%d gait=%s speed=%.4f fallingSpeed=%.4f offset=%.4f displacement=%v",
		p.frame, f.State.Gait, f.State.Speed, f.State.FallingSpeed, offset, f.Displacement)
	p.Dbg.Notify(DebugModeCollision, f.Collided, "push-out normal=%v depth=%.6f", f.Correction.Normal, f.Correction.Depth)
	p.Dbg.Notify(DebugModeCollision, true, "onGround=%v capsuleStart=%v", f.State.OnGround, f.Capsule.Start)

	prev := p.position
	p.position = movement.AvatarPosition(f.Capsule)
	p.camera.Follow(prev, p.position)

	p.facing = p.smoother.Smooth(p.facing, movement.TargetFacing(p.position, p.camera.Position, offset))

	prevAnim := p.anims.Current()
	if p.anims.Transition(f.State.Gait.String()) {
		p.Dbg.Notify(DebugModeAnimation, true, "animation %s -> %s", prevAnim, p.anims.Current())
	}
	p.anims.Advance(dt)

	snap := Snapshot{
		Frame:        p.frame,
		Position:     p.position,
		Rotation:     p.facing,
		Yaw:          movement.Yaw(p.facing),
		Gait:         f.State.Gait,
		Speed:        f.State.Speed,
		FallingSpeed: f.State.FallingSpeed,
		OnGround:     f.State.OnGround,
		Collided:     f.Collided,
		Capsule:      f.Capsule,
		Camera:       p.camera,
		Bounds:       boundsAt(p.position, p.size),
	}
	if p.history.Cap() > 0 {
		_ = p.history.Append(snap)
	}
	return snap, true
}

// Frame returns the number of frames simulated so far.
func (p *Player) Frame() uint64 {
	return p.frame
}

// History returns the retained snapshots, oldest first.
func (p *Player) History() []Snapshot {
	return p.history.Slice()
}

// Close detaches the avatar from its controller.
func (p *Player) Close() error {
	if !p.loaded {
		return nil
	}
	p.loaded = false
	if !p.controller.Detach(p.id) {
		return errors.New("avatar was not attached")
	}
	return nil
}
