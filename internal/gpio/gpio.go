// Package gpio provides digital pin handles with hardware abstraction.
// The real implementations use the Linux GPIO character device or, when
// built with TinyGo, the machine package of the module's microcontroller.
// The fake implementation allows testing without hardware.
package gpio

import (
	"errors"
	"fmt"
)

// Pin identifies a digital pin by its board number.
type Pin int

// Pull selects the bias applied to an input pin.
type Pull int

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// ErrPinClaimed is returned when a pin is requested a second time.
// Each pin is owned by exactly one handle for the life of a Chip.
var ErrPinClaimed = errors.New("gpio: pin already claimed")

// Input is a readable digital pin.
type Input interface {
	// Get returns the current level; true = high.
	Get() bool
}

// Output is a writable digital pin.
type Output interface {
	// Set drives the pin; true = high.
	Set(high bool)
}

// Chip hands out pin handles.
type Chip interface {
	// Input claims pin as a digital input with the given bias.
	Input(pin Pin, pull Pull) (Input, error)

	// Output claims pin as a digital output, initially low.
	Output(pin Pin) (Output, error)

	// Close releases all claimed pins.
	Close() error
}

// claims tracks pin ownership for a Chip implementation.
type claims map[Pin]string

func (c claims) claim(pin Pin, role string) error {
	if prev, ok := c[pin]; ok {
		return fmt.Errorf("%w: pin %d (%s, already %s)", ErrPinClaimed, pin, role, prev)
	}
	c[pin] = role
	return nil
}
