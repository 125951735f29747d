package input

import "testing"

func TestKeyStateIgnoresUnknownKeys(t *testing.T) {
	var keys KeyState
	if keys.Press("q") {
		t.Fatalf("expected q to be ignored")
	}
	if keys.Moving() || keys.Running() {
		t.Fatalf("unknown key changed state: %v", keys.Held())
	}
	if !keys.Press("W") {
		t.Fatalf("expected upper case W to be recognised")
	}
	if !keys.Pressed(KeyW) {
		t.Fatalf("expected w to be held")
	}
}

func TestKeyStateRunningNeedsMovement(t *testing.T) {
	var keys KeyState
	keys.Press("Shift")
	if keys.Running() {
		t.Fatalf("shift alone must not count as running")
	}
	keys.Press("d")
	if !keys.Running() {
		t.Fatalf("expected d+shift to count as running")
	}
	keys.Release("shift")
	if keys.Running() || !keys.Moving() {
		t.Fatalf("expected walking after releasing shift, held=%v", keys.Held())
	}
	keys.Reset()
	if len(keys.Held()) != 0 {
		t.Fatalf("expected no held keys after reset, got %v", keys.Held())
	}
}
