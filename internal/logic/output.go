package logic

import "github.com/modulove/A-RYTH-MATIK/internal/gpio"

// MirroredOutput drives a gate/trigger output and, when bound, an indicator
// LED that always carries the same level.
type MirroredOutput struct {
	primary   gpio.Output
	indicator gpio.Output // nil for a primary-only output
	on        bool
}

// NewOutput binds a primary-only output.
func NewOutput(primary gpio.Output) *MirroredOutput {
	return &MirroredOutput{primary: primary}
}

// NewMirroredOutput binds a primary output paired with an indicator.
func NewMirroredOutput(primary, indicator gpio.Output) *MirroredOutput {
	return &MirroredOutput{primary: primary, indicator: indicator}
}

// Update sets the output, and its indicator if bound, to level.
func (o *MirroredOutput) Update(high bool) {
	o.primary.Set(high)
	if o.indicator != nil {
		o.indicator.Set(high)
	}
	o.on = high
}

// High sets the output high.
func (o *MirroredOutput) High() { o.Update(true) }

// Low sets the output low.
func (o *MirroredOutput) Low() { o.Update(false) }

// On reports the last level written.
func (o *MirroredOutput) On() bool {
	return o.on
}

// Mirrored reports whether an indicator is bound.
func (o *MirroredOutput) Mirrored() bool {
	return o.indicator != nil
}
