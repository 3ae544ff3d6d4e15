package logic

import (
	"testing"

	"github.com/modulove/A-RYTH-MATIK/internal/gpio"
)

func TestMirroredOutputBothPins(t *testing.T) {
	cv := &gpio.FakeOutput{}
	led := &gpio.FakeOutput{}
	o := NewMirroredOutput(cv, led)

	if !o.Mirrored() {
		t.Error("expected Mirrored()=true")
	}

	for _, level := range []bool{true, false, true, true, false} {
		o.Update(level)
		if cv.Level != level || led.Level != level {
			t.Errorf("Update(%v): cv=%v led=%v", level, cv.Level, led.Level)
		}
		if o.On() != level {
			t.Errorf("Update(%v): On()=%v", level, o.On())
		}
	}
	if len(cv.Writes) != 5 || len(led.Writes) != 5 {
		t.Errorf("expected 5 writes each, got cv=%d led=%d", len(cv.Writes), len(led.Writes))
	}
}

func TestMirroredOutputPrimaryOnly(t *testing.T) {
	cv := &gpio.FakeOutput{}
	o := NewOutput(cv)

	if o.Mirrored() {
		t.Error("expected Mirrored()=false")
	}
	o.High()
	if !cv.Level || !o.On() {
		t.Error("expected high after High()")
	}
	o.Low()
	if cv.Level || o.On() {
		t.Error("expected low after Low()")
	}
}

func TestMirroredOutputHighLow(t *testing.T) {
	cv := &gpio.FakeOutput{}
	led := &gpio.FakeOutput{}
	o := NewMirroredOutput(cv, led)

	if o.On() {
		t.Error("expected On()=false before any write")
	}
	o.High()
	if !cv.Level || !led.Level || !o.On() {
		t.Error("expected both pins high after High()")
	}
	o.Low()
	if cv.Level || led.Level || o.On() {
		t.Error("expected both pins low after Low()")
	}
}
