package input

import (
	"strings"

	"github.com/samber/lo"
)

// Key is a key that drives avatar locomotion.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyShift

	keyCount
)

var keyNames = map[string]Key{
	"w":     KeyW,
	"a":     KeyA,
	"s":     KeyS,
	"d":     KeyD,
	"shift": KeyShift,
}

var movementKeys = []Key{KeyW, KeyA, KeyS, KeyD}

// ParseKey returns the Key for a key name as reported by an input device. Names are case-insensitive, so both
// "W" and "w" resolve to KeyW. The bool is false for any key that does not drive locomotion.
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[strings.ToLower(name)]
	return k, ok
}

// String ...
func (k Key) String() string {
	for name, key := range keyNames {
		if key == k {
			return name
		}
	}
	return "unknown"
}

// KeyState holds the pressed state of every locomotion key. The zero value has no keys pressed.
type KeyState struct {
	pressed [keyCount]bool
}

// Press marks the named key as held. It returns false if the key is not a locomotion key, in which case
// the state is left untouched.
func (s *KeyState) Press(name string) bool {
	return s.setNamed(name, true)
}

// Release marks the named key as released. It returns false if the key is not a locomotion key.
func (s *KeyState) Release(name string) bool {
	return s.setNamed(name, false)
}

func (s *KeyState) setNamed(name string, down bool) bool {
	k, ok := ParseKey(name)
	if !ok {
		return false
	}
	s.Set(k, down)
	return true
}

// Set sets the pressed state of a key.
func (s *KeyState) Set(k Key, down bool) {
	if k >= keyCount {
		return
	}
	s.pressed[k] = down
}

// Reset releases every key.
func (s *KeyState) Reset() {
	s.pressed = [keyCount]bool{}
}

// Pressed returns true if the key is held.
func (s KeyState) Pressed(k Key) bool {
	return k < keyCount && s.pressed[k]
}

// Moving returns true if any of the movement keys (w, a, s, d) is held.
func (s KeyState) Moving() bool {
	return lo.SomeBy(movementKeys, s.Pressed)
}

// Running returns true if a movement key is held together with shift.
func (s KeyState) Running() bool {
	return s.Moving() && s.Pressed(KeyShift)
}

// Held returns the held keys in declaration order.
func (s KeyState) Held() []Key {
	return lo.Filter([]Key{KeyW, KeyA, KeyS, KeyD, KeyShift}, func(k Key, _ int) bool {
		return s.Pressed(k)
	})
}
