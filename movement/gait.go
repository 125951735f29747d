package movement

import (
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/input"
)

// Gait is the locomotion mode selected from the held keys each frame.
type Gait uint8

const (
	GaitIdle Gait = iota
	GaitWalk
	GaitRun
)

// SelectGait returns Run if a movement key is held together with shift, Walk if only movement keys are held
// and Idle otherwise.
func SelectGait(keys input.KeyState) Gait {
	switch {
	case keys.Running():
		return GaitRun
	case keys.Moving():
		return GaitWalk
	}
	return GaitIdle
}

// String returns the name of the animation clip played for the gait.
func (g Gait) String() string {
	switch g {
	case GaitWalk:
		return game.ClipWalk
	case GaitRun:
		return game.ClipRun
	}
	return game.ClipIdle
}
