// Package rotary decodes a mechanical quadrature encoder with a push switch
// from polled digital pins.
package rotary

import (
	"time"

	"github.com/modulove/A-RYTH-MATIK/internal/gpio"
	"github.com/modulove/A-RYTH-MATIK/internal/logic"
)

// Default timing, matching common detent encoders.
const (
	DefaultTurnDebounce   = 2 * time.Millisecond
	DefaultSwitchDebounce = 50 * time.Millisecond
)

// Config holds the encoder's electrical and timing settings.
type Config struct {
	// ActiveHigh selects high as the active level. Encoders wired to
	// ground with pull-ups (the default) are active low.
	ActiveHigh bool

	// TurnDebounce is the minimum time between two reported detents.
	TurnDebounce time.Duration

	// SwitchDebounce is the minimum hold for a press to count.
	SwitchDebounce time.Duration
}

// Encoder is a polled rotary encoder. It implements logic.RotarySensor.
type Encoder struct {
	a, b, sw gpio.Input
	now      func() time.Time
	cfg      Config

	lastA     bool
	lastTurn  time.Time
	down      bool
	downSince time.Time
}

var _ logic.RotarySensor = (*Encoder)(nil)

// New creates an encoder over pins a, b and the switch pin sw.
// now supplies the time used for debounce and hold measurement.
func New(a, b, sw gpio.Input, cfg Config, now func() time.Time) *Encoder {
	if cfg.TurnDebounce <= 0 {
		cfg.TurnDebounce = DefaultTurnDebounce
	}
	if cfg.SwitchDebounce <= 0 {
		cfg.SwitchDebounce = DefaultSwitchDebounce
	}
	return &Encoder{a: a, b: b, sw: sw, cfg: cfg, now: now}
}

// Rotate reads both channels and returns logic.RawClockwise or
// logic.RawCounter on the sample where channel A becomes active, and
// logic.RawUnchanged otherwise.
func (e *Encoder) Rotate() int {
	a := e.active(e.a)
	b := e.active(e.b)

	edge := a && !e.lastA
	e.lastA = a
	if !edge {
		return logic.RawUnchanged
	}

	t := e.now()
	if !e.lastTurn.IsZero() && t.Sub(e.lastTurn) < e.cfg.TurnDebounce {
		return logic.RawUnchanged
	}
	e.lastTurn = t

	// B lags A when turning clockwise.
	if !b {
		return logic.RawClockwise
	}
	return logic.RawCounter
}

// Release reads the switch. It returns the hold duration and true on the
// sample where the switch is let go after a hold of at least SwitchDebounce.
func (e *Encoder) Release() (time.Duration, bool) {
	down := e.active(e.sw)
	t := e.now()

	switch {
	case down && !e.down:
		e.down = true
		e.downSince = t
	case !down && e.down:
		e.down = false
		held := t.Sub(e.downSince)
		if held < e.cfg.SwitchDebounce {
			return 0, false
		}
		return held, true
	}
	return 0, false
}

// Held reports whether the switch is currently down.
func (e *Encoder) Held() bool {
	return e.down
}

func (e *Encoder) active(in gpio.Input) bool {
	return in.Get() == e.cfg.ActiveHigh
}
