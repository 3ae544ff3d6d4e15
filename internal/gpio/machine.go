//go:build tinygo

package gpio

import "machine"

// MachineChip hands out pins of the microcontroller the module runs on.
type MachineChip struct {
	claimed claims
}

// NewMachineChip returns a chip over the machine package pins.
func NewMachineChip() *MachineChip {
	return &MachineChip{claimed: make(claims)}
}

// Input configures pin as an input with the given bias.
// PullDown is treated as PullNone; AVR parts have no pull-down.
func (c *MachineChip) Input(pin Pin, pull Pull) (Input, error) {
	if err := c.claimed.claim(pin, "input"); err != nil {
		return nil, err
	}
	mode := machine.PinInput
	if pull == PullUp {
		mode = machine.PinInputPullup
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: mode})
	return p, nil
}

// Output configures pin as an output driven low.
func (c *MachineChip) Output(pin Pin) (Output, error) {
	if err := c.claimed.claim(pin, "output"); err != nil {
		return nil, err
	}
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	return p, nil
}

// Close is a no-op; pins stay configured until reset.
func (c *MachineChip) Close() error {
	return nil
}
