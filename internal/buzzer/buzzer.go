// Package buzzer schedules audible feedback pulses without blocking the
// control loop. At most one pulse is active at any instant; requests made
// while a pulse is active are dropped, not queued.
package buzzer

import (
	"log"
	"sync/atomic"
	"time"
)

// Output drives the buzzer line.
type Output interface {
	Set(on bool) error
}

// Pulser is the surface the control loop uses.
type Pulser interface {
	// Pulse starts the buzzer and arms a one-shot off action after d.
	// No-op if a pulse is already active.
	Pulse(d time.Duration)

	// PulseSync blocks the caller for d with the buzzer on. Used only for
	// the cycle-completion sequence, where blocking is acceptable.
	PulseSync(d time.Duration)
}

// Beeper implements Pulser against a hardware output. The active flag is
// shared between the control loop and the timer callback goroutine, so it
// is atomic: a re-arm racing the off callback must not lose an update.
type Beeper struct {
	out    Output
	active atomic.Bool

	// test seams; default to time.AfterFunc and time.Sleep
	after func(time.Duration, func()) *time.Timer
	sleep func(time.Duration)
}

// New creates a Beeper driving the given output.
func New(out Output) *Beeper {
	return &Beeper{
		out:   out,
		after: time.AfterFunc,
		sleep: time.Sleep,
	}
}

// Pulse starts the buzzer and schedules the off action after d.
// Dropped silently if a pulse is already active.
func (b *Beeper) Pulse(d time.Duration) {
	if !b.active.CompareAndSwap(false, true) {
		return
	}
	b.set(true)
	b.after(d, func() {
		b.set(false)
		b.active.Store(false)
	})
}

// PulseSync sounds the buzzer for d, blocking the caller, and turns it off
// inline. Dropped silently if a pulse is already active.
func (b *Beeper) PulseSync(d time.Duration) {
	if !b.active.CompareAndSwap(false, true) {
		return
	}
	b.set(true)
	b.sleep(d)
	b.set(false)
	b.active.Store(false)
}

// Active reports whether a pulse is currently sounding.
func (b *Beeper) Active() bool {
	return b.active.Load()
}

func (b *Beeper) set(on bool) {
	if err := b.out.Set(on); err != nil {
		log.Printf("buzzer: set %v: %v", on, err)
	}
}

// FakePulser records pulse requests for test assertions.
type FakePulser struct {
	// Pulses contains the durations of all async pulse requests.
	Pulses []time.Duration

	// SyncPulses contains the durations of all blocking pulse requests.
	SyncPulses []time.Duration
}

// Pulse records an async pulse request.
func (f *FakePulser) Pulse(d time.Duration) {
	f.Pulses = append(f.Pulses, d)
}

// PulseSync records a blocking pulse request without blocking.
func (f *FakePulser) PulseSync(d time.Duration) {
	f.SyncPulses = append(f.SyncPulses, d)
}
