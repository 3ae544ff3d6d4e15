// Package module wires the A-RYTH-MATIK panel: clock and reset inputs, six
// gate/trigger outputs with LEDs, the clock LED and the encoder.
package module

import (
	"fmt"
	"time"

	"github.com/modulove/A-RYTH-MATIK/internal/gpio"
	"github.com/modulove/A-RYTH-MATIK/internal/logic"
	"github.com/modulove/A-RYTH-MATIK/internal/rotary"
)

// Config holds the panel options applied at startup.
type Config struct {
	// RotatePanel selects the layout for the upside-down panel.
	RotatePanel bool

	// ReverseEncoder makes counterclockwise rotation increment.
	ReverseEncoder bool

	// LongPress is the long press threshold. Zero means logic.DefaultLongPress.
	LongPress time.Duration
}

// Module owns every input and output of the panel.
type Module struct {
	Clk     *logic.EdgeDetector
	Rst     *logic.EdgeDetector
	Outputs [OutputCount]*logic.MirroredOutput
	Encoder *logic.RotaryClassifier

	clockLED    gpio.Output
	clockLEDOn  bool
	orientation Orientation
	layout      Layout
}

// New initializes the module: it selects the layout from cfg, claims every
// pin of that layout from chip and fixes the encoder direction. A pin that
// cannot be claimed is a fatal startup error.
func New(cfg Config, chip gpio.Chip, sensor logic.RotarySensor) (*Module, error) {
	o := OrientationFor(cfg.RotatePanel)
	l := LayoutFor(o)
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("%s layout: %w", o, err)
	}

	m := &Module{orientation: o, layout: l}

	clk, err := chip.Input(l.Clock, gpio.PullNone)
	if err != nil {
		return nil, fmt.Errorf("clock input: %w", err)
	}
	rst, err := chip.Input(l.Reset, gpio.PullNone)
	if err != nil {
		return nil, fmt.Errorf("reset input: %w", err)
	}
	m.Clk = logic.NewEdgeDetector(clk)
	m.Rst = logic.NewEdgeDetector(rst)

	m.Encoder = logic.NewRotaryClassifier(sensor, logic.RotaryConfig{
		Reversed:  cfg.ReverseEncoder,
		LongPress: cfg.LongPress,
	})

	for i, ch := range l.Outputs {
		out, err := chip.Output(ch.Out)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i+1, err)
		}
		if ch.LED == NoPin {
			m.Outputs[i] = logic.NewOutput(out)
			continue
		}
		led, err := chip.Output(ch.LED)
		if err != nil {
			return nil, fmt.Errorf("output %d led: %w", i+1, err)
		}
		m.Outputs[i] = logic.NewMirroredOutput(out, led)
	}

	m.clockLED, err = chip.Output(l.ClockLED)
	if err != nil {
		return nil, fmt.Errorf("clock led: %w", err)
	}

	return m, nil
}

// OpenEncoder claims the encoder pins from chip, pulled up.
func OpenEncoder(chip gpio.Chip, cfg rotary.Config, now func() time.Time) (*rotary.Encoder, error) {
	a, err := chip.Input(EncoderA, gpio.PullUp)
	if err != nil {
		return nil, fmt.Errorf("encoder a: %w", err)
	}
	b, err := chip.Input(EncoderB, gpio.PullUp)
	if err != nil {
		return nil, fmt.Errorf("encoder b: %w", err)
	}
	sw, err := chip.Input(EncoderSwitch, gpio.PullUp)
	if err != nil {
		return nil, fmt.Errorf("encoder switch: %w", err)
	}
	return rotary.New(a, b, sw, cfg, now), nil
}

// ProcessInputs samples the clock and reset inputs once and mirrors the
// clock edge onto the clock LED.
func (m *Module) ProcessInputs() {
	m.Clk.Process()
	m.Rst.Process()

	switch m.Clk.State() {
	case logic.StateRising:
		m.setClockLED(true)
	case logic.StateFalling:
		m.setClockLED(false)
	}
}

func (m *Module) setClockLED(high bool) {
	m.clockLED.Set(high)
	m.clockLEDOn = high
}

// ClockLED reports the last level written to the clock LED.
func (m *Module) ClockLED() bool {
	return m.clockLEDOn
}

// Orientation returns the orientation chosen at startup.
func (m *Module) Orientation() Orientation {
	return m.orientation
}

// Layout returns the pin layout in use.
func (m *Module) Layout() Layout {
	return m.layout
}

// FollowClock drives all outputs high on a clock rising edge and low on a
// clock falling edge or a reset rising edge. The clock LED is left to
// ProcessInputs.
func (m *Module) FollowClock() {
	switch {
	case m.Rst.State() == logic.StateRising:
		m.setOutputs(false)
	case m.Clk.State() == logic.StateRising:
		m.setOutputs(true)
	case m.Clk.State() == logic.StateFalling:
		m.setOutputs(false)
	}
}

func (m *Module) setOutputs(high bool) {
	for _, o := range m.Outputs {
		o.Update(high)
	}
}

// AllLow drives every output and the clock LED low.
func (m *Module) AllLow() {
	m.setOutputs(false)
	m.setClockLED(false)
}
