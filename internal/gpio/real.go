//go:build linux && !tinygo

package gpio

import (
	"fmt"
	"log"

	"github.com/warthog618/go-gpiocdev"
)

// RealChip hands out pins of a Linux GPIO character device.
type RealChip struct {
	chip    *gpiocdev.Chip
	lines   []*gpiocdev.Line
	claimed claims
}

// NewRealChip opens the named GPIO chip, e.g. "gpiochip0".
func NewRealChip(name string) (*RealChip, error) {
	chip, err := gpiocdev.NewChip(name, gpiocdev.WithConsumer("arythmatik"))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	return &RealChip{chip: chip, claimed: make(claims)}, nil
}

// Input requests pin as an input line with the given bias.
func (c *RealChip) Input(pin Pin, pull Pull) (Input, error) {
	if err := c.claimed.claim(pin, "input"); err != nil {
		return nil, err
	}
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	switch pull {
	case PullUp:
		opts = append(opts, gpiocdev.WithPullUp)
	case PullDown:
		opts = append(opts, gpiocdev.WithPullDown)
	}
	line, err := c.chip.RequestLine(int(pin), opts...)
	if err != nil {
		return nil, fmt.Errorf("request input pin %d: %w", pin, err)
	}
	c.lines = append(c.lines, line)
	return &realInput{line: line, pin: pin}, nil
}

// Output requests pin as an output line driven low.
func (c *RealChip) Output(pin Pin) (Output, error) {
	if err := c.claimed.claim(pin, "output"); err != nil {
		return nil, err
	}
	line, err := c.chip.RequestLine(int(pin), gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request output pin %d: %w", pin, err)
	}
	c.lines = append(c.lines, line)
	return &realOutput{line: line, pin: pin}, nil
}

// Close releases GPIO resources.
// Lines are reconfigured as pulled-down inputs before closing so jacks and
// LEDs are left undriven.
func (c *RealChip) Close() error {
	var errs []error

	for _, line := range c.lines {
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure line %d: %w", line.Offset(), err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line %d: %w", line.Offset(), err))
		}
	}
	c.lines = nil
	if c.chip != nil {
		if err := c.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

type realInput struct {
	line   *gpiocdev.Line
	pin    Pin
	failed bool
}

// Get reads the line. A failed read is logged once and reads as low.
func (in *realInput) Get() bool {
	v, err := in.line.Value()
	if err != nil {
		if !in.failed {
			log.Printf("gpio: read pin %d: %v", in.pin, err)
			in.failed = true
		}
		return false
	}
	in.failed = false
	return v == 1
}

type realOutput struct {
	line   *gpiocdev.Line
	pin    Pin
	failed bool
}

func (out *realOutput) Set(high bool) {
	v := 0
	if high {
		v = 1
	}
	if err := out.line.SetValue(v); err != nil {
		if !out.failed {
			log.Printf("gpio: write pin %d: %v", out.pin, err)
			out.failed = true
		}
		return
	}
	out.failed = false
}
