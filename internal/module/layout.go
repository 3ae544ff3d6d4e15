package module

import (
	"errors"
	"fmt"

	"github.com/modulove/A-RYTH-MATIK/internal/gpio"
)

// OutputCount is the number of gate/trigger outputs.
const OutputCount = 6

// NoPin marks a channel without an indicator LED.
const NoPin gpio.Pin = -1

// Encoder pins. The encoder sits in the middle of the panel and does not
// move with rotation.
const (
	EncoderA      gpio.Pin = 2
	EncoderB      gpio.Pin = 3
	EncoderSwitch gpio.Pin = 12
)

// ErrLayoutInvalid is returned when a layout binds one pin to two roles,
// or when two layouts share a role assignment.
var ErrLayoutInvalid = errors.New("module: invalid pin layout")

// Orientation selects the pin layout for the way the panel is mounted.
type Orientation int

const (
	Standard Orientation = iota
	Rotated
)

// OrientationFor returns Rotated when rotated is set.
func OrientationFor(rotated bool) Orientation {
	if rotated {
		return Rotated
	}
	return Standard
}

func (o Orientation) String() string {
	if o == Rotated {
		return "ROTATED"
	}
	return "STANDARD"
}

// Channel is one output jack and its LED.
type Channel struct {
	Out gpio.Pin
	LED gpio.Pin // NoPin if the channel has no indicator
}

// Layout assigns pins to every role of the panel.
type Layout struct {
	Clock    gpio.Pin
	Reset    gpio.Pin
	Outputs  [OutputCount]Channel
	ClockLED gpio.Pin
}

// layouts is indexed by Orientation. Rotating the panel swaps the CLK and RST
// jacks and exchanges outputs 1-3 with outputs 4-6. The clock LED is on the
// board edge and does not move.
var layouts = [...]Layout{
	Standard: {
		Clock: 11,
		Reset: 13,
		Outputs: [OutputCount]Channel{
			{Out: 5, LED: 14},
			{Out: 6, LED: 15},
			{Out: 7, LED: 16},
			{Out: 8, LED: 0},
			{Out: 9, LED: 1},
			{Out: 10, LED: 17},
		},
		ClockLED: 4,
	},
	Rotated: {
		Clock: 13,
		Reset: 11,
		Outputs: [OutputCount]Channel{
			{Out: 8, LED: 0},
			{Out: 9, LED: 1},
			{Out: 10, LED: 17},
			{Out: 5, LED: 14},
			{Out: 6, LED: 15},
			{Out: 7, LED: 16},
		},
		ClockLED: 4,
	},
}

// LayoutFor returns the pin layout for o.
func LayoutFor(o Orientation) Layout {
	if o < 0 || int(o) >= len(layouts) {
		return layouts[Standard]
	}
	return layouts[o]
}

type role struct {
	name string
	pin  gpio.Pin
}

// roles lists the pins that move with the panel orientation.
func (l Layout) roles() []role {
	r := []role{
		{"clock", l.Clock},
		{"reset", l.Reset},
	}
	for i, ch := range l.Outputs {
		r = append(r, role{fmt.Sprintf("output %d", i+1), ch.Out})
		if ch.LED != NoPin {
			r = append(r, role{fmt.Sprintf("output %d led", i+1), ch.LED})
		}
	}
	return r
}

// Validate checks that no pin is bound to two roles, counting the clock LED
// and the encoder pins.
func (l Layout) Validate() error {
	all := append(l.roles(),
		role{"clock led", l.ClockLED},
		role{"encoder a", EncoderA},
		role{"encoder b", EncoderB},
		role{"encoder switch", EncoderSwitch},
	)
	seen := make(map[gpio.Pin]string, len(all))
	for _, r := range all {
		if r.pin < 0 {
			return fmt.Errorf("%w: %s has no pin", ErrLayoutInvalid, r.name)
		}
		if prev, ok := seen[r.pin]; ok {
			return fmt.Errorf("%w: pin %d bound to %s and %s", ErrLayoutInvalid, r.pin, prev, r.name)
		}
		seen[r.pin] = r.name
	}
	return nil
}

// Disjoint checks that a and b assign a different pin to every role that
// moves with the orientation.
func Disjoint(a, b Layout) error {
	ra, rb := a.roles(), b.roles()
	if len(ra) != len(rb) {
		return fmt.Errorf("%w: layouts bind %d and %d roles", ErrLayoutInvalid, len(ra), len(rb))
	}
	for i := range ra {
		if ra[i].pin == rb[i].pin {
			return fmt.Errorf("%w: %s is pin %d in both layouts", ErrLayoutInvalid, ra[i].name, ra[i].pin)
		}
	}
	return nil
}
