package logic

import "github.com/modulove/A-RYTH-MATIK/internal/gpio"

// EdgeDetector samples a gate/trigger input once per cycle and derives
// rising and falling transitions.
type EdgeDetector struct {
	pin   gpio.Input
	read  bool
	old   bool
	state InputState
	on    bool
}

// NewEdgeDetector binds an input pin. The previous sample starts low, so the
// first Process reports rising only if the pin is already high.
func NewEdgeDetector(pin gpio.Input) *EdgeDetector {
	return &EdgeDetector{pin: pin}
}

// Process re-samples the pin and recomputes the transition state.
// Call it exactly once per cycle.
func (d *EdgeDetector) Process() {
	d.apply(d.pin.Get())
}

func (d *EdgeDetector) apply(sample bool) {
	d.old = d.read
	d.read = sample

	d.state = StateUnchanged
	switch {
	case !d.old && d.read:
		d.state = StateRising
		d.on = true
	case d.old && !d.read:
		d.state = StateFalling
		d.on = false
	}
}

// State returns the transition computed by the last Process.
func (d *EdgeDetector) State() InputState {
	return d.state
}

// On reports whether the input is held high.
func (d *EdgeDetector) On() bool {
	return d.on
}
