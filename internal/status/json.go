package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Mode          string       `json:"mode"`
	Running       bool         `json:"running"`
	Stage         string       `json:"stage,omitempty"`
	TempC         float64      `json:"temp_c"`
	SecondsLeft   int          `json:"seconds_left"`
	HeaterOn      bool         `json:"heater_on"`
	BacklightOn   bool         `json:"backlight_on"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"cycle_counts"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of cycle counts.
type CountsJSON struct {
	Started   int `json:"started"`
	Completed int `json:"completed"`
	Stopped   int `json:"stopped"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs        int64   `json:"tick_ms"`
	IdleTimeoutMs int64   `json:"idle_timeout_ms"`
	LongPressMs   int64   `json:"long_press_ms"`
	HeartbeatMs   int64   `json:"heartbeat_ms"`
	HysteresisC   float64 `json:"hysteresis_c"`
	Broker        string  `json:"broker"`
	HTTPPort      string  `json:"http_port"`
}

// toInner converts a snapshot to the serializable form.
func toInner(s Snapshot, event, reason string) StatusInner {
	inner := StatusInner{
		Event:         event,
		Reason:        reason,
		Mode:          s.Oven.Mode.String(),
		Running:       s.Oven.Running,
		TempC:         s.Oven.TempC,
		SecondsLeft:   s.Oven.SecondsLeft,
		HeaterOn:      s.Oven.HeaterOn,
		BacklightOn:   s.Oven.BacklightOn,
		UptimeSeconds: int64(s.Uptime().Seconds()),
		StartTime:     s.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     s.Now.UTC().Format(time.RFC3339),
		MQTT: MQTTStatus{
			Connected: s.MQTTConnected,
			Broker:    s.Config.Broker,
		},
		Counts: CountsJSON{
			Started:   s.Counts.Started,
			Completed: s.Counts.Completed,
			Stopped:   s.Counts.Stopped,
		},
		Config: ConfigJSON{
			TickMs:        s.Config.TickMs,
			IdleTimeoutMs: s.Config.IdleTimeoutMs,
			LongPressMs:   s.Config.LongPressMs,
			HeartbeatMs:   s.Config.HeartbeatMs,
			HysteresisC:   s.Config.HysteresisC,
			Broker:        s.Config.Broker,
			HTTPPort:      s.Config.HTTPPort,
		},
	}
	if s.Oven.Running {
		inner.Stage = s.Oven.Stage.String()
	}
	if s.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       s.Network.Type,
			IP:         s.Network.IP,
			Status:     s.Network.Status,
			Gateway:    s.Network.Gateway,
			WifiStatus: s.Network.WifiStatus,
			SSID:       s.Network.SSID,
		}
	}
	return inner
}

// FormatJSON serializes a snapshot for the HTTP status endpoint.
func FormatJSON(s Snapshot) []byte {
	b, err := json.MarshalIndent(StatusJSON{Status: toInner(s, "", "")}, "", "  ")
	if err != nil {
		// Snapshot is plain data; marshal cannot realistically fail.
		return []byte(`{"status":{}}`)
	}
	return b
}

// FormatStatusEvent serializes a snapshot as a system event payload
// (STARTUP, SHUTDOWN, HEARTBEAT) for MQTT.
func FormatStatusEvent(s Snapshot, event, reason string) []byte {
	b, err := json.Marshal(StatusJSON{Status: toInner(s, event, reason)})
	if err != nil {
		return []byte(`{"status":{}}`)
	}
	return b
}
