package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/movement"
	"github.com/pelletier/go-toml"
)

// Settings contains everything about the simulation that can be configured from the settings file.
type Settings struct {
	Movement    movement.Options `toml:"movement"`
	Orientation Orientation      `toml:"orientation"`
	Animation   Animation        `toml:"animation"`
	Camera      Camera           `toml:"camera"`
	Avatar      Avatar           `toml:"avatar"`
	Debug       Debug            `toml:"debug"`
	World       World            `toml:"world"`
	Session     Session          `toml:"session"`
	// History is the number of frame snapshots each player retains.
	History int `toml:"history"`
}

// Orientation configures how quickly avatars turn to face the way they move.
type Orientation struct {
	MaxTurnStepDegrees float64 `toml:"max_turn_step_degrees"`
	StepsPerFrame      int     `toml:"steps_per_frame"`
}

// Animation configures the animation state machine.
type Animation struct {
	FadeDuration  float64  `toml:"fade_duration"`
	RequiredClips []string `toml:"required_clips"`
}

// Camera is the initial placement of the camera following an avatar.
type Camera struct {
	Position [3]float64 `toml:"position"`
	Target   [3]float64 `toml:"target"`
}

// Avatar is the size of the avatar model's bounding box.
type Avatar struct {
	Height float64 `toml:"height"`
	Depth  float64 `toml:"depth"`
	Width  float64 `toml:"width"`
}

// Debug toggles debug notifications per subsystem.
type Debug struct {
	Movement  bool `toml:"movement"`
	Collision bool `toml:"collision"`
	Animation bool `toml:"animation"`
}

// World configures the static collision geometry.
type World struct {
	// ScenePath is the path of a YAML scene file. The built-in scene is used if it is empty.
	ScenePath string `toml:"scene_path"`
}

// Session configures remote sessions.
type Session struct {
	// FrameRate is the number of frames simulated per second.
	FrameRate int `toml:"frame_rate"`
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Movement = movement.DefaultOptions()

	s.Orientation.MaxTurnStepDegrees = mgl64.RadToDeg(game.MaxTurnStep)
	s.Orientation.StepsPerFrame = game.DefaultTurnSteps

	s.Animation.FadeDuration = game.CrossfadeDuration
	s.Animation.RequiredClips = game.RequiredClips()

	s.Camera.Position = [3]float64{0, 100, 500}
	s.Camera.Target = [3]float64{0, 100, 0}

	s.Avatar.Height = 180
	s.Avatar.Depth = 40
	s.Avatar.Width = 60

	s.Session.FrameRate = 60
	s.History = 120
	return s
}

// Validate returns an error if any setting is out of range.
func (s Settings) Validate() error {
	if err := s.Movement.Validate(); err != nil {
		return fmt.Errorf("movement: %w", err)
	}
	if s.Orientation.MaxTurnStepDegrees <= 0 || s.Orientation.StepsPerFrame <= 0 {
		return fmt.Errorf("orientation: turn step and steps per frame must be positive")
	}
	if s.Animation.FadeDuration < 0 {
		return fmt.Errorf("animation: fade duration must not be negative")
	}
	if s.Avatar.Height <= 0 || s.Avatar.Depth <= 0 || s.Avatar.Width <= 0 {
		return fmt.Errorf("avatar: dimensions must be positive")
	}
	if s.Camera.Position == s.Camera.Target {
		return fmt.Errorf("camera: position and target must differ")
	}
	if s.Session.FrameRate <= 0 {
		return fmt.Errorf("session: frame rate must be positive")
	}
	if s.History < 0 {
		return fmt.Errorf("history must not be negative")
	}
	return nil
}

// MaxTurnStep returns the largest angle, in radians, an avatar turns by in one smoothing step.
func (s Settings) MaxTurnStep() float64 {
	return mgl64.DegToRad(s.Orientation.MaxTurnStepDegrees)
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return errors.New("settings file already exists")
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist. Settings
// missing from the file keep their default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Settings{}, errors.New("settings file doesn't exist")
	} else if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %w", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	if err = settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// LoadOrCreate loads the settings file at path, first writing the default settings to it if it does not exist.
func LoadOrCreate(path string) (Settings, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := SaveDefault(path); err != nil {
			return Settings{}, err
		}
	}
	return Load(path)
}
