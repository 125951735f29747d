package animation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/oomph-ac/locomotion/oerror"
)

// mockAction records every call made to it.
type mockAction struct {
	calls []string
}

func (a *mockAction) Play()             { a.calls = append(a.calls, "play") }
func (a *mockAction) Reset()            { a.calls = append(a.calls, "reset") }
func (a *mockAction) FadeIn(d float64)  { a.calls = append(a.calls, "fadeIn", fmtDuration(d)) }
func (a *mockAction) FadeOut(d float64) { a.calls = append(a.calls, "fadeOut", fmtDuration(d)) }

func fmtDuration(d float64) string {
	if d == 0.5 {
		return "0.5"
	}
	return "other"
}

type mockMixer struct {
	updates []float64
}

func (m *mockMixer) Update(dt float64) { m.updates = append(m.updates, dt) }

func newMockMachine(t *testing.T) (*StateMachine, map[string]*mockAction, *mockMixer) {
	actions, mocks := NewMap(), map[string]*mockAction{}
	for _, name := range []string{"Idle", "Walk", "Run"} {
		mocks[name] = &mockAction{}
		actions.Set(name, mocks[name])
	}
	mixer := &mockMixer{}
	m, err := New(mixer, actions, DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m, mocks, mixer
}

func TestStartsPlayingIdle(t *testing.T) {
	m, mocks, _ := newMockMachine(t)
	if m.Current() != "Idle" {
		t.Fatalf("expected to start in Idle, got %s", m.Current())
	}
	if !reflect.DeepEqual(mocks["Idle"].calls, []string{"play"}) || len(mocks["Walk"].calls) != 0 {
		t.Fatalf("expected only Idle to be played, got %v and %v", mocks["Idle"].calls, mocks["Walk"].calls)
	}
}

func TestIdleToWalkCrossfades(t *testing.T) {
	m, mocks, _ := newMockMachine(t)
	mocks["Idle"].calls = nil

	if !m.Transition("Walk") {
		t.Fatalf("expected a transition to take place")
	}
	if !reflect.DeepEqual(mocks["Idle"].calls, []string{"fadeOut", "0.5"}) {
		t.Fatalf("expected exactly one fadeOut(0.5) on Idle, got %v", mocks["Idle"].calls)
	}
	if !reflect.DeepEqual(mocks["Walk"].calls, []string{"reset", "fadeIn", "0.5", "play"}) {
		t.Fatalf("expected reset, fadeIn(0.5) and play on Walk, got %v", mocks["Walk"].calls)
	}
	if len(mocks["Run"].calls) != 0 {
		t.Fatalf("expected Run to be untouched, got %v", mocks["Run"].calls)
	}
}

func TestSameStateIsNoop(t *testing.T) {
	m, mocks, _ := newMockMachine(t)
	m.Transition("Walk")
	for _, a := range mocks {
		a.calls = nil
	}
	if m.Transition("Walk") {
		t.Fatalf("expected Walk -> Walk not to transition")
	}
	for name, a := range mocks {
		if len(a.calls) != 0 {
			t.Fatalf("expected no calls on %s, got %v", name, a.calls)
		}
	}
}

func TestUnknownStateIsIgnored(t *testing.T) {
	m, mocks, _ := newMockMachine(t)
	mocks["Idle"].calls = nil
	if m.Transition("Jump") || m.Current() != "Idle" || len(mocks["Idle"].calls) != 0 {
		t.Fatalf("expected an unknown state to be ignored")
	}
}

func TestClockAlwaysAdvances(t *testing.T) {
	m, _, mixer := newMockMachine(t)
	m.Update("Idle", 0.1)
	m.Update("Walk", 0.2)
	m.Update("Walk", 0.3)
	if !reflect.DeepEqual(mixer.updates, []float64{0.1, 0.2, 0.3}) {
		t.Fatalf("expected the mixer to advance every frame, got %v", mixer.updates)
	}
}

func TestMissingClipsAreAConfigurationError(t *testing.T) {
	actions := NewMap()
	actions.Set("Walk", &mockAction{})
	actions.Set("Dance", &mockAction{})

	_, err := New(&mockMixer{}, actions, DefaultOptions(), nil)
	var missing *oerror.MissingClipError
	if !errors.As(err, &missing) {
		t.Fatalf("expected a MissingClipError, got %v", err)
	}
	if !reflect.DeepEqual(missing.Missing, []string{"Idle", "Run"}) {
		t.Fatalf("expected Idle and Run to be reported missing, got %v", missing.Missing)
	}
	if err.Error() != "missing required animation clips: Idle, Run" {
		t.Fatalf("unexpected error message %q", err.Error())
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(nil, "Idle"); err == nil {
		t.Fatalf("expected a nil map to miss every clip")
	}
	actions := NewMap()
	actions.Set("Idle", &mockAction{})
	if err := Validate(actions, "Idle"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
