package oerror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIndexSealed is returned when collision geometry is registered, or the index is built, after the
	// spatial index has already been built.
	ErrIndexSealed = errors.New("spatial index already built")
	// ErrIndexNotBuilt is returned when a query needs the spatial index before it was built.
	ErrIndexNotBuilt = errors.New("spatial index not built")
	// ErrAvatarExists is returned when a capsule is attached under an id that already has one.
	ErrAvatarExists = errors.New("avatar already attached")
	// ErrUnknownAvatar is returned when an avatar id has no capsule attached.
	ErrUnknownAvatar = errors.New("unknown avatar")
	// ErrInvalidDimensions is returned when avatar bounds cannot produce a capsule.
	ErrInvalidDimensions = errors.New("invalid avatar dimensions")
)

// Error is a general purpose error raised by internal invariants.
type Error struct {
	Err string
}

// New returns a new Error with the message formatted from the arguments passed.
func New(format string, args ...any) *Error {
	if len(args) == 0 {
		return &Error{Err: format}
	}
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}

// MissingClipError is a configuration error: the loaded animation clip set lacks one or more clips that the
// animation state machine requires. It is detected once after assets load and is fatal for that avatar.
type MissingClipError struct {
	Missing []string
}

func (e *MissingClipError) Error() string {
	return fmt.Sprintf("missing required animation clips: %s", strings.Join(e.Missing, ", "))
}
