package input

import (
	"math"
	"testing"
)

func keysFromMask(mask int) KeyState {
	var keys KeyState
	keys.Set(KeyW, mask&1 != 0)
	keys.Set(KeyA, mask&2 != 0)
	keys.Set(KeyS, mask&4 != 0)
	keys.Set(KeyD, mask&8 != 0)
	return keys
}

func expectedOffset(mask int) (float64, bool) {
	w, a, s, d := mask&1 != 0, mask&2 != 0, mask&4 != 0, mask&8 != 0
	switch {
	case w && a:
		return math.Pi / 4, true
	case w && d:
		return -math.Pi / 4, true
	case w:
		return 0, true
	case s && a:
		return 3 * math.Pi / 4, true
	case s && d:
		return -3 * math.Pi / 4, true
	case s:
		return math.Pi, true
	case a:
		return math.Pi / 2, true
	case d:
		return -math.Pi / 2, true
	}
	return 0, false
}

func TestOffsetAllCombinations(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		want, wantOK := expectedOffset(mask)
		got, ok := Offset(keysFromMask(mask))
		if ok != wantOK {
			t.Fatalf("mask %04b: expected ok=%v, got %v", mask, wantOK, ok)
		}
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("mask %04b: expected %.4f, got %.4f", mask, want, got)
		}
	}
}

func TestResolverPersistsLastOffset(t *testing.T) {
	var r DirectionResolver
	if got := r.Resolve(KeyState{}); got != 0 {
		t.Fatalf("expected 0 before any movement, got %v", got)
	}
	for mask := 1; mask < 16; mask++ {
		want, _ := expectedOffset(mask)
		if got := r.Resolve(keysFromMask(mask)); math.Abs(got-want) > 1e-12 {
			t.Fatalf("mask %04b: expected %v, got %v", mask, want, got)
		}
		want = r.Last()
		// Releasing every key keeps the last direction, and doing so repeatedly changes nothing.
		for i := 0; i < 3; i++ {
			if got := r.Resolve(KeyState{}); got != want {
				t.Fatalf("mask %04b: expected persisted %v, got %v", mask, want, got)
			}
		}
		if r.Last() != want {
			t.Fatalf("expected Last()=%v, got %v", want, r.Last())
		}
	}
}

func TestOffsetIgnoresShift(t *testing.T) {
	keys := keysFromMask(2)
	keys.Set(KeyShift, true)
	if got, _ := Offset(keys); got != math.Pi/2 {
		t.Fatalf("expected shift not to change the offset, got %v", got)
	}
}
