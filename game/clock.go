package game

import "time"

// FrameClock supplies the elapsed time between frames.
type FrameClock struct {
	last    time.Time
	started bool
}

// Tick records a new frame at now and returns the seconds elapsed since the previous frame. The first tick
// returns 0, as there is no previous frame to measure against.
func (c *FrameClock) Tick(now time.Time) float64 {
	if !c.started {
		c.started, c.last = true, now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return dt
}

// Reset forgets the previous frame so that the next tick returns 0.
func (c *FrameClock) Reset() {
	c.started = false
	c.last = time.Time{}
}
