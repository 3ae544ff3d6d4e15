//go:build !linux && !tinygo

package gpio

import "errors"

// RealChip is not available on this platform.
type RealChip struct{}

// NewRealChip returns an error on non-Linux platforms.
func NewRealChip(name string) (*RealChip, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Input is not implemented on this platform.
func (c *RealChip) Input(pin Pin, pull Pull) (Input, error) {
	return nil, errors.New("gpio: not supported")
}

// Output is not implemented on this platform.
func (c *RealChip) Output(pin Pin) (Output, error) {
	return nil, errors.New("gpio: not supported")
}

// Close is not implemented on this platform.
func (c *RealChip) Close() error {
	return nil
}
