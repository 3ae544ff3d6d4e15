// Package status provides a thread-safe status tracker for the arythmatik
// daemon. It is read by the HTTP handlers and by lifecycle MQTT events.
package status

import (
	"sync"
	"time"

	"github.com/modulove/A-RYTH-MATIK/internal/logic"
	"github.com/modulove/A-RYTH-MATIK/internal/module"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	LongPressMs int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	Chip        string
	Passthrough bool
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	Panel         module.Snapshot
	Ready         bool
	Cycles        uint64
	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		now: time.Now,
	}
}

// Update sets the panel state, cycle count and event counts.
// Called from runLoop on every tick.
func (t *Tracker) Update(panel module.Snapshot, cycles uint64, counts logic.EventCounts) {
	t.mu.Lock()
	t.snap.Panel = panel
	t.snap.Ready = true
	t.snap.Cycles = cycles
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
