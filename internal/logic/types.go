// Package logic contains the pure state machines of the module core.
// This package has NO hardware dependencies of its own: pins and the encoder
// sensor are injected handles, and time is always passed in.
package logic

import "time"

// InputState is the transition derived from two consecutive input samples.
type InputState int

const (
	StateUnchanged InputState = iota
	StateRising
	StateFalling
)

func (s InputState) String() string {
	switch s {
	case StateRising:
		return "RISING"
	case StateFalling:
		return "FALLING"
	default:
		return "UNCHANGED"
	}
}

// Direction is the interpreted rotation of the encoder for one sample.
type Direction int

const (
	DirectionUnchanged Direction = iota
	DirectionIncrement
	DirectionDecrement
)

func (d Direction) String() string {
	switch d {
	case DirectionIncrement:
		return "INCREMENT"
	case DirectionDecrement:
		return "DECREMENT"
	default:
		return "UNCHANGED"
	}
}

// Level renders a logic level as HIGH or LOW.
func Level(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}

// PressType classifies a completed button press.
type PressType int

const (
	PressNone PressType = iota
	PressShort
	PressLong
)

func (p PressType) String() string {
	switch p {
	case PressShort:
		return "SHORT"
	case PressLong:
		return "LONG"
	default:
		return "NONE"
	}
}

// EventType names something observed during one cycle.
type EventType string

const (
	EventClockRising      EventType = "CLOCK_RISING"
	EventClockFalling     EventType = "CLOCK_FALLING"
	EventResetRising      EventType = "RESET_RISING"
	EventResetFalling     EventType = "RESET_FALLING"
	EventEncoderIncrement EventType = "ENCODER_INCREMENT"
	EventEncoderDecrement EventType = "ENCODER_DECREMENT"
	EventShortPress       EventType = "SHORT_PRESS"
	EventLongPress        EventType = "LONG_PRESS"
)

// Event is one observation to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Clock     bool // clock input held level after the cycle
	Reset     bool // reset input held level after the cycle
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	ClockRising  int
	ClockFalling int
	ResetRising  int
	ResetFalling int
	Increments   int
	Decrements   int
	ShortPresses int
	LongPresses  int
}

// Add counts e.
func (c *EventCounts) Add(e Event) {
	switch e.Type {
	case EventClockRising:
		c.ClockRising++
	case EventClockFalling:
		c.ClockFalling++
	case EventResetRising:
		c.ResetRising++
	case EventResetFalling:
		c.ResetFalling++
	case EventEncoderIncrement:
		c.Increments++
	case EventEncoderDecrement:
		c.Decrements++
	case EventShortPress:
		c.ShortPresses++
	case EventLongPress:
		c.LongPresses++
	}
}
