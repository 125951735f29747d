package animation

import (
	"math"
	"slices"
)

// Clip is a named animation of a fixed duration in seconds.
type Clip struct {
	Name     string
	Duration float64
}

// SoftMixer is a Mixer that tracks the local time and blend weight of looping clip actions without sampling
// any keyframes. It is enough for hosts that only need to know which clip plays, how far into it, and how
// strongly.
type SoftMixer struct {
	actions []*ClipAction
	time    float64
}

// NewSoftMixer ...
func NewSoftMixer() *SoftMixer {
	return &SoftMixer{}
}

// Action returns the action of the clip passed, creating it the first time a clip is requested.
func (m *SoftMixer) Action(c Clip) *ClipAction {
	for _, a := range m.actions {
		if a.clip.Name == c.Name {
			return a
		}
	}
	a := &ClipAction{clip: c, weight: 1}
	m.actions = append(m.actions, a)
	return a
}

// Actions returns an action map with one action per clip, in the order passed.
func (m *SoftMixer) Actions(clips ...Clip) Map {
	actions := NewMap()
	for _, c := range clips {
		actions.Set(c.Name, m.Action(c))
	}
	return actions
}

// Update advances every playing action by dt seconds. Non-positive and non-finite values are ignored.
func (m *SoftMixer) Update(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	m.time += dt
	for _, a := range m.actions {
		a.update(dt)
	}
}

// Time returns the total time the mixer has advanced by.
func (m *SoftMixer) Time() float64 {
	return m.time
}

// Weights returns the effective weight of every action that currently contributes to the pose, keyed by clip
// name.
func (m *SoftMixer) Weights() map[string]float64 {
	weights := make(map[string]float64, len(m.actions))
	for _, a := range m.actions {
		if w := a.Weight(); w > 0 {
			weights[a.clip.Name] = w
		}
	}
	return weights
}

// Dominant returns the name of the action with the highest effective weight, or an empty string if no action
// contributes to the pose. Ties go to the action created first.
func (m *SoftMixer) Dominant() string {
	var (
		name string
		best float64
	)
	for _, a := range slices.Backward(m.actions) {
		if w := a.Weight(); w > 0 && w >= best {
			name, best = a.clip.Name, w
		}
	}
	return name
}

// ClipAction is the Action of a single clip played by a SoftMixer. Clips loop once they reach their end.
type ClipAction struct {
	clip Clip

	playing bool
	time    float64
	weight  float64

	fading             bool
	fadeFrom, fadeTo   float64
	fadeTime, fadeSpan float64
}

// Play ...
func (a *ClipAction) Play() {
	a.playing = true
}

// Reset ...
func (a *ClipAction) Reset() {
	a.time = 0
	a.fading = false
}

// FadeIn ...
func (a *ClipAction) FadeIn(d float64) {
	a.scheduleFade(d, 0, 1)
}

// FadeOut ...
func (a *ClipAction) FadeOut(d float64) {
	a.scheduleFade(d, 1, 0)
}

func (a *ClipAction) scheduleFade(d, from, to float64) {
	if !(d > 0) {
		a.fading = false
		a.weight = to
		if to == 0 {
			a.playing = false
		}
		return
	}
	a.fading = true
	a.fadeFrom, a.fadeTo = from, to
	a.fadeTime, a.fadeSpan = 0, d
	a.weight = from
}

// Playing returns true if the action is playing.
func (a *ClipAction) Playing() bool {
	return a.playing
}

// Time returns the local time of the action within its clip.
func (a *ClipAction) Time() float64 {
	return a.time
}

// Weight returns the effective blend weight of the action, which is zero if it is not playing.
func (a *ClipAction) Weight() float64 {
	if !a.playing {
		return 0
	}
	return a.weight
}

// Fading returns true while a fade is in progress.
func (a *ClipAction) Fading() bool {
	return a.fading
}

func (a *ClipAction) update(dt float64) {
	if !a.playing {
		return
	}
	a.time += dt
	if d := a.clip.Duration; d > 0 {
		a.time = math.Mod(a.time, d)
	}
	if !a.fading {
		return
	}
	a.fadeTime += dt
	if a.fadeTime >= a.fadeSpan {
		a.fading = false
		a.weight = a.fadeTo
		if a.fadeTo == 0 {
			a.playing = false
		}
		return
	}
	a.weight = a.fadeFrom + (a.fadeTo-a.fadeFrom)*a.fadeTime/a.fadeSpan
}
