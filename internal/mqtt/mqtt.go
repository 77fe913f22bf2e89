// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/ovend/internal/logic"
)

// Topic is the MQTT topic for cook-cycle events.
const Topic = "kitchen/oven/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "kitchen/oven/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a cook-cycle event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// NetworkInfo describes the board's network state, as written by pi-helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// HeartbeatInfo carries uptime and cycle counters on heartbeat events.
type HeartbeatInfo struct {
	UptimeSeconds   int64
	CyclesStarted   int
	CyclesCompleted int
	CyclesStopped   int
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	Heartbeat  *HeartbeatInfo
	Network    *NetworkInfo
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Oven OvenPayload `json:"oven"`
}

// OvenPayload contains the cook-cycle event details.
type OvenPayload struct {
	Timestamp   string  `json:"timestamp"`
	Event       string  `json:"event"`
	Mode        string  `json:"mode"`
	Stage       string  `json:"stage"`
	TempC       float64 `json:"temp_c"`
	SecondsLeft int     `json:"seconds_left"`
}

// FormatPayload creates the JSON payload for a cook-cycle event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		Oven: OvenPayload{
			Timestamp:   event.Timestamp.UTC().Format(time.RFC3339),
			Event:       string(event.Type),
			Mode:        event.Mode.String(),
			Stage:       event.Stage.String(),
			TempC:       event.TempC,
			SecondsLeft: event.SecondsLeft,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string         `json:"timestamp"`
	Event     string         `json:"event"`
	Reason    string         `json:"reason,omitempty"`
	Heartbeat *HeartbeatJSON `json:"heartbeat,omitempty"`
	Network   *NetworkJSON   `json:"network,omitempty"`
}

// HeartbeatJSON is the JSON representation of heartbeat info.
type HeartbeatJSON struct {
	UptimeSeconds   int64 `json:"uptime_seconds"`
	CyclesStarted   int   `json:"cycles_started"`
	CyclesCompleted int   `json:"cycles_completed"`
	CyclesStopped   int   `json:"cycles_stopped"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type,omitempty"`
	IP         string `json:"ip,omitempty"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway,omitempty"`
	WifiStatus string `json:"wifi_status,omitempty"`
	SSID       string `json:"ssid,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	inner := SystemPayloadInner{
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
		Event:     event.Event,
		Reason:    event.Reason,
	}
	if event.Heartbeat != nil {
		inner.Heartbeat = &HeartbeatJSON{
			UptimeSeconds:   event.Heartbeat.UptimeSeconds,
			CyclesStarted:   event.Heartbeat.CyclesStarted,
			CyclesCompleted: event.Heartbeat.CyclesCompleted,
			CyclesStopped:   event.Heartbeat.CyclesStopped,
		}
	}
	if event.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       event.Network.Type,
			IP:         event.Network.IP,
			Status:     event.Network.Status,
			Gateway:    event.Network.Gateway,
			WifiStatus: event.Network.WifiStatus,
			SSID:       event.Network.SSID,
		}
	}
	return json.Marshal(SystemPayload{System: inner})
}
