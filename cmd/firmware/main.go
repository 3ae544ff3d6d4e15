//go:build tinygo

// Command firmware runs the panel directly on the module's microcontroller.
// It has no network side: every output follows the clock input and the
// encoder only drives the serial log.
//
//	tinygo flash -target arduino-nano ./cmd/firmware
package main

import (
	"time"

	"github.com/modulove/A-RYTH-MATIK/internal/gpio"
	"github.com/modulove/A-RYTH-MATIK/internal/logic"
	"github.com/modulove/A-RYTH-MATIK/internal/module"
	"github.com/modulove/A-RYTH-MATIK/internal/rotary"
)

// Build-time panel options, set with -ldflags "-X main.rotatePanel=true".
var (
	rotatePanel    = "false"
	reverseEncoder = "false"
)

func main() {
	chip := gpio.NewMachineChip()

	enc, err := module.OpenEncoder(chip, rotary.Config{}, time.Now)
	if err != nil {
		fail(err)
	}
	m, err := module.New(module.Config{
		RotatePanel:    rotatePanel == "true",
		ReverseEncoder: reverseEncoder == "true",
	}, chip, enc)
	if err != nil {
		fail(err)
	}

	println("arythmatik:", m.Orientation().String())

	for {
		for _, e := range m.Poll(time.Now()) {
			switch e.Type {
			case logic.EventClockRising, logic.EventClockFalling:
			default:
				println("event:", string(e.Type))
			}
		}
		m.FollowClock()
		time.Sleep(time.Millisecond)
	}
}

// fail reports err over serial and never returns.
func fail(err error) {
	for {
		println("fatal:", err.Error())
		time.Sleep(time.Second)
	}
}
