package gpio

import "fmt"

// FakeInput is a test double that returns scripted levels.
type FakeInput struct {
	// Samples contains scripted levels to return.
	// Each call to Get() consumes the next sample.
	Samples []bool

	// index tracks current position in Samples
	index int

	// Reads counts calls to Get.
	Reads int
}

// Get returns the next scripted level.
// If samples are exhausted, returns the last sample repeatedly.
// With no samples configured the pin reads low.
func (f *FakeInput) Get() bool {
	f.Reads++
	if len(f.Samples) == 0 {
		return false
	}

	level := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return level
}

// Push appends levels to the script.
func (f *FakeInput) Push(levels ...bool) {
	f.Samples = append(f.Samples, levels...)
}

// Reset rewinds the input to the beginning of its samples.
func (f *FakeInput) Reset() {
	f.index = 0
	f.Reads = 0
}

// FakeOutput records the levels written to it.
type FakeOutput struct {
	// Level is the last level written.
	Level bool

	// Writes contains every level written, in order.
	Writes []bool
}

// Set records the level.
func (f *FakeOutput) Set(high bool) {
	f.Level = high
	f.Writes = append(f.Writes, high)
}

// FakeChip is a test double that hands out fake pins and records claims.
type FakeChip struct {
	Inputs  map[Pin]*FakeInput
	Outputs map[Pin]*FakeOutput
	Pulls   map[Pin]Pull

	// Fail, if set, makes requests for these pins return an error.
	Fail map[Pin]error

	// Closed tracks if Close was called.
	Closed bool

	claimed claims
}

// NewFakeChip creates an empty FakeChip.
func NewFakeChip() *FakeChip {
	return &FakeChip{
		Inputs:  make(map[Pin]*FakeInput),
		Outputs: make(map[Pin]*FakeOutput),
		Pulls:   make(map[Pin]Pull),
		Fail:    make(map[Pin]error),
		claimed: make(claims),
	}
}

// Script preloads the levels an input pin will return once claimed.
func (c *FakeChip) Script(pin Pin, levels ...bool) *FakeInput {
	in, ok := c.Inputs[pin]
	if !ok {
		in = &FakeInput{}
		c.Inputs[pin] = in
	}
	in.Push(levels...)
	return in
}

// Input claims pin as a fake input.
func (c *FakeChip) Input(pin Pin, pull Pull) (Input, error) {
	if err := c.request(pin, "input"); err != nil {
		return nil, err
	}
	c.Pulls[pin] = pull
	in, ok := c.Inputs[pin]
	if !ok {
		in = &FakeInput{}
		c.Inputs[pin] = in
	}
	return in, nil
}

// Output claims pin as a fake output, initially low.
func (c *FakeChip) Output(pin Pin) (Output, error) {
	if err := c.request(pin, "output"); err != nil {
		return nil, err
	}
	out := &FakeOutput{}
	c.Outputs[pin] = out
	return out, nil
}

// Claimed returns the role a pin was claimed for, or "" if unclaimed.
func (c *FakeChip) Claimed(pin Pin) string {
	return c.claimed[pin]
}

// Close marks the chip as closed.
func (c *FakeChip) Close() error {
	c.Closed = true
	return nil
}

func (c *FakeChip) request(pin Pin, role string) error {
	if err := c.Fail[pin]; err != nil {
		return fmt.Errorf("request pin %d: %w", pin, err)
	}
	return c.claimed.claim(pin, role)
}
