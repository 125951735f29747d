package animation

import (
	"fmt"
	"io"
	"slices"

	"github.com/oomph-ac/locomotion/game"
	"github.com/sirupsen/logrus"
)

// Options configures a StateMachine.
type Options struct {
	// FadeDuration is how long, in seconds, the outgoing action fades out and the incoming action fades in.
	FadeDuration float64
	// Initial is the state the machine starts in.
	Initial string
	// Required are the clip names that must be present in the action map.
	Required []string
}

// DefaultOptions returns the crossfade duration and clip set of the locomotion gaits, starting in Idle.
func DefaultOptions() Options {
	return Options{
		FadeDuration: game.CrossfadeDuration,
		Initial:      game.ClipIdle,
		Required:     game.RequiredClips(),
	}
}

// StateMachine keeps exactly one action of an avatar current and crossfades between actions when the
// avatar's state changes.
type StateMachine struct {
	log *logrus.Logger

	mixer   Mixer
	actions Map
	fade    float64

	current string
}

// New validates the action map and returns a state machine with the initial action playing. A
// *oerror.MissingClipError is returned if a required clip, or the initial one, is absent.
func New(mixer Mixer, actions Map, opts Options, log *logrus.Logger) (*StateMachine, error) {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if mixer == nil {
		return nil, fmt.Errorf("animation state machine requires a mixer")
	}
	if opts.Initial == "" {
		opts.Initial = game.ClipIdle
	}
	if err := Validate(actions, append(slices.Clone(opts.Required), opts.Initial)...); err != nil {
		log.WithError(err).Error("animation clip set is incomplete")
		return nil, err
	}

	m := &StateMachine{
		log:     log,
		mixer:   mixer,
		actions: actions,
		fade:    opts.FadeDuration,
		current: opts.Initial,
	}
	initial, _ := actions.Get(opts.Initial)
	initial.Play()
	log.WithFields(logrus.Fields{"clips": actions.Keys(), "initial": opts.Initial}).Info("animation clips validated")
	return m, nil
}

// Current returns the name of the current action.
func (m *StateMachine) Current() string {
	return m.current
}

// Transition makes the named action current. If it already is, nothing happens. Otherwise the current action
// fades out, and the named action is rewound, faded in and played. It returns true if a transition took place.
func (m *StateMachine) Transition(name string) bool {
	if name == m.current {
		return false
	}
	next, ok := m.actions.Get(name)
	if !ok {
		m.log.Warnf("no animation clip named %q, staying in %q", name, m.current)
		return false
	}
	prev, _ := m.actions.Get(m.current)

	prev.FadeOut(m.fade)
	next.Reset()
	next.FadeIn(m.fade)
	next.Play()

	m.log.Debugf("animation %s -> %s", m.current, name)
	m.current = name
	return true
}

// Advance advances the animation clock by dt seconds.
func (m *StateMachine) Advance(dt float64) {
	m.mixer.Update(dt)
}

// Update transitions to the named action and then advances the animation clock by dt seconds. It returns
// true if a transition took place.
func (m *StateMachine) Update(name string, dt float64) bool {
	changed := m.Transition(name)
	m.Advance(dt)
	return changed
}
