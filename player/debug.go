package player

import (
	"github.com/sirupsen/logrus"
)

const (
	DebugModeMovementSim = iota
	DebugModeCollision
	DebugModeAnimation

	debugModeCount
)

var debugModeNames = map[string]int{
	"movement":  DebugModeMovementSim,
	"collision": DebugModeCollision,
	"animation": DebugModeAnimation,
}

// ParseDebugMode returns the debug mode with the name passed.
func ParseDebugMode(name string) (int, bool) {
	mode, ok := debugModeNames[name]
	return mode, ok
}

// Debugger writes per-frame debug notifications for the subsystems that have debugging enabled.
type Debugger struct {
	log   *logrus.Logger
	modes [debugModeCount]bool
}

// NewDebugger returns a debugger writing to the logger passed with every mode disabled.
func NewDebugger(log *logrus.Logger) *Debugger {
	return &Debugger{log: log}
}

// Enable enables or disables a debug mode.
func (d *Debugger) Enable(mode int, enabled bool) {
	if mode >= 0 && mode < debugModeCount {
		d.modes[mode] = enabled
	}
}

// Toggle flips a debug mode.
func (d *Debugger) Toggle(mode int) {
	d.Enable(mode, !d.Enabled(mode))
}

// Enabled returns true if the debug mode is enabled.
func (d *Debugger) Enabled(mode int) bool {
	return mode >= 0 && mode < debugModeCount && d.modes[mode]
}

// Notify logs the formatted message at debug level if the mode is enabled and cond is true.
func (d *Debugger) Notify(mode int, cond bool, format string, args ...any) {
	if !cond || !d.Enabled(mode) {
		return
	}
	d.log.Debugf(format, args...)
}
