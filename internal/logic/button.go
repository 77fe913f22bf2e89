package logic

import "time"

// Button tracks the debounced state of one physical button across ticks.
// The only debounce mechanism is consecutive-tick edge detection: the 20ms
// loop period is the integration window, matching the hardware's RC-filtered
// inputs.
type Button struct {
	// Pressed is the current tick's active-level read.
	Pressed bool
	// Previous is the prior tick's Pressed value, for edge detection.
	Previous bool
	// Held accumulates time while Pressed; reset to zero on release.
	Held time.Duration
	// Consumed marks a long press that already fired, so the following
	// release does not also trigger the short-press action.
	Consumed bool
}

// Update advances the button record by one tick. raw is the current
// active-level pin read; delta is the tick's elapsed duration.
func (b *Button) Update(raw bool, delta time.Duration) {
	b.Previous = b.Pressed
	b.Pressed = raw
	// Consumed survives the release-edge tick itself so the release handler
	// can still see it, then clears on the first fully-released tick.
	b.Consumed = b.Consumed && b.Previous
	if b.Pressed {
		b.Held += delta
	} else {
		b.Held = 0
	}
}

// PressEdge reports a released-to-pressed transition this tick.
func (b *Button) PressEdge() bool {
	return b.Pressed && !b.Previous
}

// ReleaseEdge reports a pressed-to-released transition this tick.
func (b *Button) ReleaseEdge() bool {
	return !b.Pressed && b.Previous
}

// HeldFor reports whether the button has been continuously pressed for at
// least d.
func (b *Button) HeldFor(d time.Duration) bool {
	return b.Pressed && b.Held >= d
}
