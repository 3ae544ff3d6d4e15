package gpio

import (
	"errors"
	"testing"
)

func TestFakeInputGet(t *testing.T) {
	in := &FakeInput{Samples: []bool{true, false, true}}

	want := []bool{true, false, true, true}
	for i, w := range want {
		if got := in.Get(); got != w {
			t.Errorf("read %d: expected %v, got %v", i, w, got)
		}
	}
	if in.Reads != 4 {
		t.Errorf("expected 4 reads, got %d", in.Reads)
	}
}

func TestFakeInputNoSamplesReadsLow(t *testing.T) {
	in := &FakeInput{}
	if in.Get() {
		t.Error("expected low with no samples")
	}
}

func TestFakeInputPushAndReset(t *testing.T) {
	in := &FakeInput{}
	in.Push(false, true)

	in.Get()
	if !in.Get() {
		t.Error("expected second sample to be high")
	}

	in.Reset()
	if in.Get() {
		t.Error("after reset: expected first sample (low)")
	}
}

func TestFakeOutputRecordsWrites(t *testing.T) {
	out := &FakeOutput{}
	out.Set(true)
	out.Set(false)
	out.Set(true)

	if !out.Level {
		t.Error("expected level high after last write")
	}
	if len(out.Writes) != 3 {
		t.Fatalf("expected 3 writes, got %d", len(out.Writes))
	}
	if out.Writes[1] {
		t.Error("expected second write to be low")
	}
}

func TestFakeChipClaims(t *testing.T) {
	c := NewFakeChip()

	if _, err := c.Input(11, PullNone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Output(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.Claimed(11); got != "input" {
		t.Errorf("pin 11: expected input, got %q", got)
	}
	if got := c.Claimed(4); got != "output" {
		t.Errorf("pin 4: expected output, got %q", got)
	}
	if got := c.Claimed(5); got != "" {
		t.Errorf("pin 5: expected unclaimed, got %q", got)
	}
}

func TestFakeChipRejectsSecondClaim(t *testing.T) {
	c := NewFakeChip()
	if _, err := c.Output(8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := c.Input(8, PullUp)
	if !errors.Is(err, ErrPinClaimed) {
		t.Errorf("expected ErrPinClaimed, got %v", err)
	}
	_, err = c.Output(8)
	if !errors.Is(err, ErrPinClaimed) {
		t.Errorf("expected ErrPinClaimed, got %v", err)
	}
}

func TestFakeChipScriptedInput(t *testing.T) {
	c := NewFakeChip()
	c.Script(13, false, true)

	in, err := c.Input(13, PullDown)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Get() {
		t.Error("expected first sample low")
	}
	if !in.Get() {
		t.Error("expected second sample high")
	}
	if c.Pulls[13] != PullDown {
		t.Errorf("expected PullDown recorded, got %v", c.Pulls[13])
	}
}

func TestFakeChipFail(t *testing.T) {
	c := NewFakeChip()
	c.Fail[2] = errors.New("simulated error")

	_, err := c.Input(2, PullUp)
	if err == nil {
		t.Fatal("expected error to be returned")
	}
	if c.Claimed(2) != "" {
		t.Error("failed request should not claim the pin")
	}
}

func TestFakeChipClose(t *testing.T) {
	c := NewFakeChip()
	if c.Closed {
		t.Error("should not be closed initially")
	}
	if err := c.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !c.Closed {
		t.Error("should be closed after Close()")
	}
}
