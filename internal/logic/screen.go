package logic

import "time"

// ScreenPower manages the display backlight: wake on input, power off after
// an idle deadline. A zero deadline means "never time out" — used while a
// cycle is running (no idle concern) and after the backlight has gone off.
type ScreenPower struct {
	timeout  time.Duration
	deadline time.Time
	on       bool
}

// NewScreenPower returns a manager with the backlight on and the idle
// deadline armed from start.
func NewScreenPower(timeout time.Duration, start time.Time) *ScreenPower {
	return &ScreenPower{
		timeout:  timeout,
		deadline: start.Add(timeout),
		on:       true,
	}
}

// On reports whether the backlight is currently on.
func (sp *ScreenPower) On() bool {
	return sp.on
}

// Touch registers a qualifying input event. If the backlight was off it is
// turned back on and woke is true: the caller must treat the event as
// consumed and not perform the button's normal action. The idle deadline is
// refreshed either way.
func (sp *ScreenPower) Touch(now time.Time) (woke bool) {
	woke = !sp.on
	sp.on = true
	sp.deadline = now.Add(sp.timeout)
	return woke
}

// Clear removes the idle deadline entirely. Used while a cycle is running
// so the screen stays on for its whole duration.
func (sp *ScreenPower) Clear() {
	sp.deadline = time.Time{}
}

// Arm sets a fresh idle deadline. Used when a cycle stops or completes.
func (sp *ScreenPower) Arm(now time.Time) {
	sp.deadline = now.Add(sp.timeout)
}

// Expire turns the backlight off if the idle deadline has elapsed, clearing
// the deadline so it fires exactly once. Returns true on the tick the
// backlight goes off.
func (sp *ScreenPower) Expire(now time.Time) bool {
	if !sp.on || sp.deadline.IsZero() || now.Before(sp.deadline) {
		return false
	}
	sp.on = false
	sp.deadline = time.Time{}
	return true
}
