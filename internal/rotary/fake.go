package rotary

import "time"

// Release is a scripted switch sample for FakeSensor.
type Release struct {
	Held     time.Duration
	Released bool
}

// FakeSensor is a test double that returns scripted encoder samples.
// Exhausted scripts return no movement and no release.
type FakeSensor struct {
	Turns    []int
	Releases []Release

	turn, release int

	// RotateCalls and ReleaseCalls count samples taken.
	RotateCalls  int
	ReleaseCalls int
}

// Rotate returns the next scripted raw rotation value.
func (f *FakeSensor) Rotate() int {
	f.RotateCalls++
	if f.turn >= len(f.Turns) {
		return 0
	}
	v := f.Turns[f.turn]
	f.turn++
	return v
}

// Release returns the next scripted switch sample.
func (f *FakeSensor) Release() (time.Duration, bool) {
	f.ReleaseCalls++
	if f.release >= len(f.Releases) {
		return 0, false
	}
	r := f.Releases[f.release]
	f.release++
	return r.Held, r.Released
}
