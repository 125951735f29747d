package animation

import (
	"slices"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/samber/lo"
)

// Action is a playable animation clip bound to an avatar.
type Action interface {
	// Play starts playing the action.
	Play()
	// Reset rewinds the action to its start and stops any fade in progress.
	Reset()
	// FadeIn ramps the weight of the action up from zero over d seconds.
	FadeIn(d float64)
	// FadeOut ramps the weight of the action down to zero over d seconds.
	FadeOut(d float64)
}

// Mixer advances the playback of every action it owns.
type Mixer interface {
	Update(dt float64)
}

// Map maps clip names to their actions, in the order the clips were loaded.
type Map = *orderedmap.OrderedMap[string, Action]

// NewMap returns an empty action map.
func NewMap() Map {
	return orderedmap.NewOrderedMap[string, Action]()
}

// Validate returns a *oerror.MissingClipError listing every required clip name absent from the map, or nil
// if all of them are present.
func Validate(actions Map, required ...string) error {
	var names []string
	if actions != nil {
		names = actions.Keys()
	}
	missing := lo.Uniq(lo.Filter(required, func(name string, _ int) bool {
		return !slices.Contains(names, name)
	}))
	if len(missing) > 0 {
		return &oerror.MissingClipError{Missing: missing}
	}
	return nil
}
