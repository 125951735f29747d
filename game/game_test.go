package game

import (
	"math"
	"testing"
	"time"
)

func TestWrapAngle(t *testing.T) {
	for _, tc := range []struct{ in, out float64 }{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	} {
		if got := WrapAngle(tc.in); math.Abs(got-tc.out) > 1e-9 {
			t.Fatalf("WrapAngle(%v): expected %v, got %v", tc.in, tc.out, got)
		}
	}
}

func TestValidDelta(t *testing.T) {
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if ValidDelta(dt) {
			t.Fatalf("expected %v to be rejected", dt)
		}
	}
	if !ValidDelta(1.0 / 60) {
		t.Fatalf("expected 1/60 to be accepted")
	}
}

func TestFrameClock(t *testing.T) {
	var c FrameClock
	start := time.Unix(100, 0)
	if dt := c.Tick(start); dt != 0 {
		t.Fatalf("expected the first tick to return 0, got %v", dt)
	}
	if dt := c.Tick(start.Add(250 * time.Millisecond)); dt != 0.25 {
		t.Fatalf("expected 0.25s, got %v", dt)
	}
	c.Reset()
	if dt := c.Tick(start.Add(time.Hour)); dt != 0 {
		t.Fatalf("expected the tick after a reset to return 0, got %v", dt)
	}
}
