// Package status provides a thread-safe status tracker for the oven daemon.
// It is read by the HTTP handlers and serialized into heartbeat payloads.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/ovend/internal/logic"
)

// NetworkInfo contains network state. This is a local copy to avoid
// importing internal/mqtt from status.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs        int64
	IdleTimeoutMs int64
	LongPressMs   int64
	HeartbeatMs   int64
	HysteresisC   float64
	Broker        string
	HTTPPort      string
}

// CycleCounts tracks the number of cook cycles since startup.
type CycleCounts struct {
	Started   int
	Completed int
	Stopped   int
}

// OvenState is the per-tick view of the control core.
type OvenState struct {
	Mode        logic.Mode
	Running     bool
	Stage       logic.Stage
	TempC       float64
	SecondsLeft int
	HeaterOn    bool
	BacklightOn bool
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Oven          OvenState
	Counts        CycleCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
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
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the oven state. Called from runLoop on every tick.
func (t *Tracker) Update(state OvenState) {
	t.mu.Lock()
	t.snap.Oven = state
	t.mu.Unlock()
}

// RecordEvent bumps the cycle counters for lifecycle events.
func (t *Tracker) RecordEvent(typ logic.EventType) {
	t.mu.Lock()
	switch typ {
	case logic.EventCycleStart:
		t.snap.Counts.Started++
	case logic.EventCycleComplete:
		t.snap.Counts.Completed++
	case logic.EventCycleStop:
		t.snap.Counts.Stopped++
	}
	t.mu.Unlock()
}

// Counts returns the current cycle counters.
func (t *Tracker) Counts() CycleCounts {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snap.Counts
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
