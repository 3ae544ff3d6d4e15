package module

import (
	"time"

	"github.com/modulove/A-RYTH-MATIK/internal/logic"
)

// Snapshot is a point-in-time view of the panel.
type Snapshot struct {
	Orientation    Orientation
	ReverseEncoder bool
	Clock          bool
	Reset          bool
	ClockState     logic.InputState
	ResetState     logic.InputState
	ClockLED       bool
	Outputs        [OutputCount]bool
}

// Poll runs one cycle: it processes the inputs and takes one rotation and
// one switch sample. It returns the events observed, clock first.
func (m *Module) Poll(now time.Time) []logic.Event {
	m.ProcessInputs()
	dir := m.Encoder.Rotate()
	press := m.Encoder.Pressed()

	var types []logic.EventType
	switch m.Clk.State() {
	case logic.StateRising:
		types = append(types, logic.EventClockRising)
	case logic.StateFalling:
		types = append(types, logic.EventClockFalling)
	}
	switch m.Rst.State() {
	case logic.StateRising:
		types = append(types, logic.EventResetRising)
	case logic.StateFalling:
		types = append(types, logic.EventResetFalling)
	}
	switch dir {
	case logic.DirectionIncrement:
		types = append(types, logic.EventEncoderIncrement)
	case logic.DirectionDecrement:
		types = append(types, logic.EventEncoderDecrement)
	}
	switch press {
	case logic.PressShort:
		types = append(types, logic.EventShortPress)
	case logic.PressLong:
		types = append(types, logic.EventLongPress)
	}

	if len(types) == 0 {
		return nil
	}
	events := make([]logic.Event, 0, len(types))
	for _, typ := range types {
		events = append(events, logic.Event{
			Timestamp: now,
			Type:      typ,
			Clock:     m.Clk.On(),
			Reset:     m.Rst.On(),
		})
	}
	return events
}

// Snapshot returns the current state of the panel.
func (m *Module) Snapshot() Snapshot {
	s := Snapshot{
		Orientation:    m.orientation,
		ReverseEncoder: m.Encoder.Reversed(),
		Clock:          m.Clk.On(),
		Reset:          m.Rst.On(),
		ClockState:     m.Clk.State(),
		ResetState:     m.Rst.State(),
		ClockLED:       m.clockLEDOn,
	}
	for i, o := range m.Outputs {
		s.Outputs[i] = o.On()
	}
	return s
}
