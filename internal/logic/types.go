// Package logic contains the pure control core for the oven daemon.
// This package has NO external dependencies (no GPIO, SPI, MQTT, OS, or
// time.Sleep). Time is always injectable via time.Time/time.Duration
// parameters, so every control path can be exercised from tests.
package logic

import "time"

// Mode selects which settings and which cook behavior apply.
type Mode int

const (
	ModeToast Mode = iota
	ModeBake
	ModePassthru

	modeCount
)

// Next returns the following mode, wrapping after the last one.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

func (m Mode) String() string {
	switch m {
	case ModeToast:
		return "TOAST"
	case ModeBake:
		return "BAKE"
	case ModePassthru:
		return "PASSTHRU"
	default:
		return "UNKNOWN"
	}
}

// Stage is the phase of a running cook cycle. Only meaningful while running.
type Stage int

const (
	StagePreheating Stage = iota
	StageReady
	StageCooking
)

func (s Stage) String() string {
	switch s {
	case StagePreheating:
		return "PREHEATING"
	case StageReady:
		return "READY"
	case StageCooking:
		return "COOKING"
	default:
		return "UNKNOWN"
	}
}

// SettingOption selects which bake parameter the up/down buttons adjust.
type SettingOption int

const (
	OptionTemp SettingOption = iota
	OptionTime
)

// EventType identifies a cook-cycle transition to be published.
type EventType string

const (
	EventModeChange    EventType = "MODE_CHANGE"
	EventCycleStart    EventType = "CYCLE_START"
	EventPreheatDone   EventType = "PREHEAT_DONE"
	EventCookingStart  EventType = "COOKING_START"
	EventCycleStop     EventType = "CYCLE_STOP"
	EventCycleComplete EventType = "CYCLE_COMPLETE"
)

// Event is a state transition emitted by the controller for telemetry.
type Event struct {
	Timestamp   time.Time
	Type        EventType
	Mode        Mode
	Stage       Stage
	TempC       float64
	SecondsLeft int
}

// BeepRequest asks the buzzer layer for a single pulse. Sync pulses block
// the caller for the full duration; only the completion sequence uses them.
type BeepRequest struct {
	Duration time.Duration
	Sync     bool
}

// Input is one tick's worth of sampled inputs.
type Input struct {
	Now   time.Time
	Delta time.Duration
	TempC float64

	// Raw active-level button reads (already inverted from the pull-up pins).
	Mode  bool
	Up    bool
	Down  bool
	Start bool
}

// Output is the set of commands produced by one tick.
// Relay and Backlight are nil when the line should be left as is.
type Output struct {
	Relay     *bool
	Backlight *bool
	Beeps     []BeepRequest
	Redraw    bool
	Line0     string
	Line1     string
	Events    []Event
}

// FahrenheitToCelsius converts a bake setpoint to the thermocouple's scale.
func FahrenheitToCelsius(f int) float64 {
	return float64(f-32) * 5.0 / 9.0
}

// CelsiusToFahrenheit converts a sampled temperature for display.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9.0/5.0 + 32
}
