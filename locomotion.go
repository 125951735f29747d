package locomotion

import (
	"fmt"
	"io"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/google/uuid"
	"github.com/oomph-ac/locomotion/animation"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/movement"
	"github.com/oomph-ac/locomotion/player"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/world"
	"github.com/samber/lo"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Runtime is a world with its collision index built and the players moving through it.
type Runtime struct {
	log      *logrus.Logger
	settings settings.Settings

	scene      world.Scene
	world      *world.World
	controller *movement.Controller

	playerMu deadlock.Mutex
	players  map[uuid.UUID]*player.Player
}

// New loads the scene named in the settings, or the default scene if none is named, and builds its collision
// index. A nil logger discards all output.
func New(log *logrus.Logger, s settings.Settings) (*Runtime, error) {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	scene := world.DefaultScene()
	if path := s.World.ScenePath; path != "" {
		var err error
		if scene, err = world.LoadScene(path); err != nil {
			return nil, err
		}
		log.Infof("loaded scene from %s", path)
	}

	w := world.New(log)
	if err := w.RegisterScene(scene); err != nil {
		return nil, err
	}
	idx, err := w.Build()
	if err != nil {
		return nil, err
	}
	return &Runtime{
		log:        log,
		settings:   s,
		scene:      scene,
		world:      w,
		controller: movement.NewController(idx, s.Movement),
		players:    make(map[uuid.UUID]*player.Player),
	}, nil
}

// DefaultClips returns the locomotion clips avatars are loaded with when no clips are supplied.
func DefaultClips() []animation.Clip {
	return []animation.Clip{
		{Name: game.ClipIdle, Duration: 2},
		{Name: game.ClipWalk, Duration: 1},
		{Name: game.ClipRun, Duration: 0.7},
	}
}

// NewPlayer returns a player spawned at the scene's spawn point, loaded with a software mixer playing the
// clips passed, or DefaultClips if none are.
func (r *Runtime) NewPlayer(clips ...animation.Clip) (*player.Player, error) {
	if len(clips) == 0 {
		clips = DefaultClips()
	}
	p := player.New(r.log, r.controller, r.scene.Spawn.Vec3(), r.settings)

	mixer := animation.NewSoftMixer()
	a := r.settings.Avatar
	w, h, d := float32(a.Width), float32(a.Height), float32(a.Depth)
	if err := p.Load(player.Asset{
		Bounds:  cube.Box(-w/2, 0, -d/2, w/2, h, d/2),
		Actions: mixer.Actions(clips...),
		Mixer:   mixer,
	}); err != nil {
		return nil, err
	}

	r.playerMu.Lock()
	r.players[p.ID()] = p
	r.playerMu.Unlock()
	return p, nil
}

// RemovePlayer closes the player and stops tracking it.
func (r *Runtime) RemovePlayer(p *player.Player) error {
	r.playerMu.Lock()
	delete(r.players, p.ID())
	r.playerMu.Unlock()
	return p.Close()
}

// Players returns every player currently in the runtime.
func (r *Runtime) Players() []*player.Player {
	r.playerMu.Lock()
	defer r.playerMu.Unlock()
	return lo.Values(r.players)
}

// World returns the world of the runtime.
func (r *Runtime) World() *world.World {
	return r.world
}

// Scene returns the scene the world was built from.
func (r *Runtime) Scene() world.Scene {
	return r.scene
}

// Settings returns the settings the runtime was created with.
func (r *Runtime) Settings() settings.Settings {
	return r.settings
}

// Controller returns the movement controller shared by every player.
func (r *Runtime) Controller() *movement.Controller {
	return r.controller
}

// Log returns the logger of the runtime.
func (r *Runtime) Log() *logrus.Logger {
	return r.log
}
