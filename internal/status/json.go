package status

import (
	"encoding/json"
	"time"

	"github.com/modulove/A-RYTH-MATIK/internal/logic"
	"github.com/modulove/A-RYTH-MATIK/internal/module"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Ready         bool       `json:"ready"`
	Panel         PanelJSON  `json:"panel"`
	Cycles        uint64     `json:"cycles"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// PanelJSON is the JSON representation of the panel state.
type PanelJSON struct {
	Orientation    string                     `json:"orientation"`
	ReverseEncoder bool                       `json:"reverse_encoder"`
	Clock          string                     `json:"clock"`
	Reset          string                     `json:"reset"`
	ClockLED       string                     `json:"clock_led"`
	Outputs        [module.OutputCount]string `json:"outputs"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	ClockRising  int `json:"clock_rising"`
	ClockFalling int `json:"clock_falling"`
	ResetRising  int `json:"reset_rising"`
	ResetFalling int `json:"reset_falling"`
	Increments   int `json:"encoder_increment"`
	Decrements   int `json:"encoder_decrement"`
	ShortPresses int `json:"short_press"`
	LongPresses  int `json:"long_press"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	LongPressMs int64  `json:"long_press_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
	Chip        string `json:"chip"`
	Passthrough bool   `json:"passthrough"`
}

func buildPanel(p module.Snapshot) PanelJSON {
	out := PanelJSON{
		Orientation:    p.Orientation.String(),
		ReverseEncoder: p.ReverseEncoder,
		Clock:          logic.Level(p.Clock),
		Reset:          logic.Level(p.Reset),
		ClockLED:       logic.Level(p.ClockLED),
	}
	for i, on := range p.Outputs {
		out.Outputs[i] = logic.Level(on)
	}
	return out
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Ready:         snap.Ready,
		Panel:         buildPanel(snap.Panel),
		Cycles:        snap.Cycles,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			ClockRising:  snap.Counts.ClockRising,
			ClockFalling: snap.Counts.ClockFalling,
			ResetRising:  snap.Counts.ResetRising,
			ResetFalling: snap.Counts.ResetFalling,
			Increments:   snap.Counts.Increments,
			Decrements:   snap.Counts.Decrements,
			ShortPresses: snap.Counts.ShortPresses,
			LongPresses:  snap.Counts.LongPresses,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			LongPressMs: snap.Config.LongPressMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			Chip:        snap.Config.Chip,
			Passthrough: snap.Config.Passthrough,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
