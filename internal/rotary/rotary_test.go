package rotary

import (
	"testing"
	"time"

	"github.com/modulove/A-RYTH-MATIK/internal/gpio"
	"github.com/modulove/A-RYTH-MATIK/internal/logic"
)

// stepClock returns start, start+step, start+2*step, ... on successive calls.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	n := 0
	return func() time.Time {
		t := start.Add(time.Duration(n) * step)
		n++
		return t
	}
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Pins are active low: false = active.
func newTestEncoder(a, b, sw []bool, step time.Duration) *Encoder {
	return New(
		&gpio.FakeInput{Samples: a},
		&gpio.FakeInput{Samples: b},
		&gpio.FakeInput{Samples: sw},
		Config{},
		stepClock(epoch, step),
	)
}

func TestRotateClockwise(t *testing.T) {
	// A goes active while B is still idle.
	e := newTestEncoder(
		[]bool{true, false, false, true},
		[]bool{true, true, false, true},
		[]bool{true},
		10*time.Millisecond,
	)

	want := []int{logic.RawUnchanged, logic.RawClockwise, logic.RawUnchanged, logic.RawUnchanged}
	for i, w := range want {
		if got := e.Rotate(); got != w {
			t.Errorf("sample %d: expected %d, got %d", i, w, got)
		}
	}
}

func TestRotateCounterClockwise(t *testing.T) {
	// B is already active when A goes active.
	e := newTestEncoder(
		[]bool{true, true, false, true},
		[]bool{true, false, false, true},
		[]bool{true},
		10*time.Millisecond,
	)

	want := []int{logic.RawUnchanged, logic.RawUnchanged, logic.RawCounter, logic.RawUnchanged}
	for i, w := range want {
		if got := e.Rotate(); got != w {
			t.Errorf("sample %d: expected %d, got %d", i, w, got)
		}
	}
}

func TestRotateDebounce(t *testing.T) {
	// Contact bounce on A: idle, active, idle, active 0.5ms apart.
	e := newTestEncoder(
		[]bool{true, false, true, false},
		[]bool{true, true, true, true},
		[]bool{true},
		500*time.Microsecond,
	)

	var turns int
	for i := 0; i < 4; i++ {
		if e.Rotate() != logic.RawUnchanged {
			turns++
		}
	}
	if turns != 1 {
		t.Errorf("expected 1 detent through bounce, got %d", turns)
	}
}

func TestReleaseMeasuresHold(t *testing.T) {
	// Switch: idle, down for 3 samples, released. 100ms per sample.
	e := newTestEncoder(
		[]bool{true},
		[]bool{true},
		[]bool{true, false, false, false, true, true},
		100*time.Millisecond,
	)

	for i := 0; i < 4; i++ {
		if _, released := e.Release(); released {
			t.Fatalf("sample %d: unexpected release", i)
		}
	}
	if !e.Held() {
		t.Error("expected switch held")
	}

	held, released := e.Release()
	if !released {
		t.Fatal("expected release on sample 4")
	}
	if held != 300*time.Millisecond {
		t.Errorf("expected 300ms hold, got %v", held)
	}
	if e.Held() {
		t.Error("expected switch not held after release")
	}

	if _, released := e.Release(); released {
		t.Error("release must be reported once")
	}
}

func TestReleaseIgnoresBounce(t *testing.T) {
	e := newTestEncoder(
		[]bool{true},
		[]bool{true},
		[]bool{false, true},
		10*time.Millisecond,
	)

	e.Release()
	if _, released := e.Release(); released {
		t.Error("10ms press should be rejected as bounce")
	}
}

func TestActiveHigh(t *testing.T) {
	e := New(
		&gpio.FakeInput{Samples: []bool{false, true}},
		&gpio.FakeInput{Samples: []bool{false, false}},
		&gpio.FakeInput{Samples: []bool{false}},
		Config{ActiveHigh: true},
		stepClock(epoch, 10*time.Millisecond),
	)

	e.Rotate()
	if got := e.Rotate(); got != logic.RawClockwise {
		t.Errorf("expected clockwise, got %d", got)
	}
}

func TestEncoderDrivesClassifier(t *testing.T) {
	// Long hold: 11 samples down at 100ms each.
	sw := []bool{true}
	for i := 0; i < 11; i++ {
		sw = append(sw, false)
	}
	sw = append(sw, true)

	e := newTestEncoder([]bool{true}, []bool{true}, sw, 100*time.Millisecond)
	r := logic.NewRotaryClassifier(e, logic.RotaryConfig{})

	var got []logic.PressType
	for range sw {
		if p := r.Pressed(); p != logic.PressNone {
			got = append(got, p)
		}
	}
	if len(got) != 1 || got[0] != logic.PressLong {
		t.Errorf("expected one LONG press, got %v", got)
	}
}

func TestFakeSensor(t *testing.T) {
	f := &FakeSensor{
		Turns:    []int{1, 2},
		Releases: []Release{{Held: time.Second, Released: true}},
	}

	if f.Rotate() != 1 || f.Rotate() != 2 || f.Rotate() != 0 {
		t.Error("unexpected turn script")
	}
	held, released := f.Release()
	if !released || held != time.Second {
		t.Errorf("unexpected release: %v %v", held, released)
	}
	if _, released := f.Release(); released {
		t.Error("exhausted script should not release")
	}
	if f.RotateCalls != 3 || f.ReleaseCalls != 2 {
		t.Errorf("unexpected call counts: %d %d", f.RotateCalls, f.ReleaseCalls)
	}
}
