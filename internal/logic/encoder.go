package logic

import "time"

// DefaultLongPress is the hold duration at which a press counts as long.
const DefaultLongPress = 1000 * time.Millisecond

// Raw rotation values reported by a RotarySensor.
const (
	RawUnchanged = 0
	RawClockwise = 1
	RawCounter   = 2
)

// RotarySensor is the encoder hardware seen by RotaryClassifier.
type RotarySensor interface {
	// Rotate reads one rotation sample: RawClockwise, RawCounter, or
	// anything else for no movement.
	Rotate() int

	// Release reads one switch sample. It reports released=true, with the
	// hold duration, only on the sample where the switch is let go.
	Release() (held time.Duration, released bool)
}

// RotaryConfig fixes the classifier's interpretation for its lifetime.
type RotaryConfig struct {
	// Reversed swaps increment and decrement.
	Reversed bool

	// LongPress is the long press threshold. Zero means DefaultLongPress.
	LongPress time.Duration
}

// RotaryClassifier turns encoder samples into directions and press types.
type RotaryClassifier struct {
	sensor    RotarySensor
	reversed  bool
	longPress time.Duration
	last      PressType
}

// NewRotaryClassifier binds sensor with the given configuration.
func NewRotaryClassifier(sensor RotarySensor, cfg RotaryConfig) *RotaryClassifier {
	lp := cfg.LongPress
	if lp <= 0 {
		lp = DefaultLongPress
	}
	return &RotaryClassifier{
		sensor:    sensor,
		reversed:  cfg.Reversed,
		longPress: lp,
	}
}

// Reversed reports whether rotation is interpreted reversed.
func (r *RotaryClassifier) Reversed() bool {
	return r.reversed
}

// LongPress returns the long press threshold.
func (r *RotaryClassifier) LongPress() time.Duration {
	return r.longPress
}

// Rotate reads one rotation sample and returns its direction.
func (r *RotaryClassifier) Rotate() Direction {
	return Interpret(r.sensor.Rotate(), r.reversed)
}

// Pressed reads one switch sample and classifies it. The result is kept
// for ShortPressed, LongPressed and LastPress until the next Pressed call.
func (r *RotaryClassifier) Pressed() PressType {
	held, released := r.sensor.Release()
	r.last = Classify(held, released, r.longPress)
	return r.last
}

// LastPress returns the classification made by the last Pressed call.
func (r *RotaryClassifier) LastPress() PressType {
	return r.last
}

// ShortPressed reports whether the last Pressed call saw a short press.
func (r *RotaryClassifier) ShortPressed() bool {
	return r.last == PressShort
}

// LongPressed reports whether the last Pressed call saw a long press.
func (r *RotaryClassifier) LongPressed() bool {
	return r.last == PressLong
}

// Interpret maps a raw sensor value to a direction.
func Interpret(raw int, reversed bool) Direction {
	switch raw {
	case RawClockwise:
		if reversed {
			return DirectionDecrement
		}
		return DirectionIncrement
	case RawCounter:
		if reversed {
			return DirectionIncrement
		}
		return DirectionDecrement
	default:
		return DirectionUnchanged
	}
}

// Classify maps a hold duration to a press type. A press still held, or no
// press at all, is PressNone.
func Classify(held time.Duration, released bool, longPress time.Duration) PressType {
	if !released {
		return PressNone
	}
	if held >= longPress {
		return PressLong
	}
	return PressShort
}
