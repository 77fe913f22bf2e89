package logic

import "time"

// Config holds the control-loop tuning knobs. All thresholds are explicit
// elapsed-time values.
type Config struct {
	// LongPress is how long the up button must be held before the press is
	// treated as a long press (bake setting-option toggle).
	LongPress time.Duration
	// IdleTimeout is how long without qualifying input before the backlight
	// powers off.
	IdleTimeout time.Duration
	// HysteresisC is the symmetric thermostat band around the setpoint.
	HysteresisC float64
	// RefreshInterval bounds how stale the running display may get even when
	// the displayed second value has not changed.
	RefreshInterval time.Duration
	// PassthruTempC is the fixed heater target for toast and passthru
	// cycles, which have no temperature setting of their own.
	PassthruTempC float64

	ActionBeep   time.Duration
	StartBeep    time.Duration
	ReadyBeep    time.Duration
	CompleteBeep time.Duration
}

// DefaultConfig returns the tuning the hardware was calibrated with.
func DefaultConfig() Config {
	return Config{
		LongPress:       500 * time.Millisecond,
		IdleTimeout:     30 * time.Second,
		HysteresisC:     2.5,
		RefreshInterval: 200 * time.Millisecond,
		PassthruTempC:   260,
		ActionBeep:      50 * time.Millisecond,
		StartBeep:       200 * time.Millisecond,
		ReadyBeep:       500 * time.Millisecond,
		CompleteBeep:    500 * time.Millisecond,
	}
}

// Controller is the cook-cycle state machine. One instance owns all control
// state; the caller drives it with Tick once per loop iteration and applies
// the returned commands to the hardware.
type Controller struct {
	cfg      Config
	mode     Mode
	settings Settings

	btnMode  Button
	btnUp    Button
	btnDown  Button
	btnStart Button

	running    bool
	stage      Stage
	remaining  time.Duration
	tempTarget float64 // Celsius
	startTime  time.Time
	relayOn    bool

	screen *ScreenPower

	// Display cache: decides when a redraw is due, holds no render state.
	lastSeconds int
	lastRender  time.Time
	forceRedraw bool
}

// New creates a controller in mode-selection state with default settings.
func New(cfg Config, start time.Time) *Controller {
	return &Controller{
		cfg:         cfg,
		settings:    DefaultSettings(),
		screen:      NewScreenPower(cfg.IdleTimeout, start),
		lastSeconds: secondsNone,
		lastRender:  start,
		forceRedraw: true, // draw the selection screen on the first tick
	}
}

// Tick advances the controller by one loop iteration. The order is fixed:
// idle-timeout expiry, button debounce, button actions, heating stage and
// thermostat, countdown, redraw decision — later steps see state mutated by
// earlier ones in the same tick.
func (c *Controller) Tick(in Input) Output {
	var out Output

	if c.screen.Expire(in.Now) {
		out.setBacklight(false)
	}

	c.btnMode.Update(in.Mode, in.Delta)
	c.btnUp.Update(in.Up, in.Delta)
	c.btnDown.Update(in.Down, in.Delta)
	c.btnStart.Update(in.Start, in.Delta)

	c.handleModeButton(in, &out)
	c.handleUpButton(in, &out)
	c.handleDownButton(in, &out)
	c.handleStartButton(in, &out)

	if c.running {
		c.runCycle(in, &out)
	}

	c.decideRedraw(in, &out)
	return out
}

// touch registers a qualifying input event with the screen power manager.
// Returns true when the event only woke the screen and the caller must not
// also perform the button's normal action.
func (c *Controller) touch(in Input, out *Output) bool {
	if c.screen.Touch(in.Now) {
		out.setBacklight(true)
		return true
	}
	return false
}

func (c *Controller) handleModeButton(in Input, out *Output) {
	// While running the mode button only confirms the Ready stage, which is
	// handled in runCycle.
	if !c.btnMode.PressEdge() || c.running {
		return
	}
	if c.touch(in, out) {
		return
	}
	c.mode = c.mode.Next()
	c.settings.Option = OptionTemp
	out.beep(c.cfg.ActionBeep, false)
	c.forceRedraw = true
	c.emit(out, in, EventModeChange)
}

func (c *Controller) handleUpButton(in Input, out *Output) {
	// A long press toggles the bake adjustment target. Marking the button
	// consumed keeps the toggle from repeating while held and suppresses the
	// short-press action on the following release.
	if c.mode == ModeBake && !c.running && !c.btnUp.Consumed && c.btnUp.HeldFor(c.cfg.LongPress) {
		c.settings.ToggleOption()
		c.btnUp.Consumed = true
		c.forceRedraw = true
		return
	}

	if c.btnUp.PressEdge() && !c.running {
		if c.touch(in, out) {
			// The wake consumed this press; suppress the release action too.
			c.btnUp.Consumed = true
			return
		}
		out.beep(c.cfg.ActionBeep, false)
	}

	// The short press acts on release so it can be told apart from a long
	// press still in progress.
	if c.btnUp.ReleaseEdge() && !c.btnUp.Consumed && !c.running {
		if c.touch(in, out) {
			return
		}
		c.settings.Adjust(c.mode, +1)
		c.forceRedraw = true
	}
}

func (c *Controller) handleDownButton(in Input, out *Output) {
	if !c.btnDown.PressEdge() || c.running {
		return
	}
	if c.touch(in, out) {
		return
	}
	c.settings.Adjust(c.mode, -1)
	out.beep(c.cfg.ActionBeep, false)
	c.forceRedraw = true
}

func (c *Controller) handleStartButton(in Input, out *Output) {
	if !c.btnStart.PressEdge() {
		return
	}
	if c.running {
		c.stopCycle(in, out)
		return
	}
	if c.touch(in, out) {
		return
	}
	c.startCycle(in, out)
}

func (c *Controller) startCycle(in Input, out *Output) {
	c.running = true
	c.startTime = in.Now

	if c.mode == ModeBake {
		c.tempTarget = FahrenheitToCelsius(c.settings.BakeTemp)
		c.stage = StagePreheating
	} else {
		// Toast and passthru have no ready-wait phase: cook immediately
		// against the fixed passthrough target.
		c.tempTarget = c.cfg.PassthruTempC
		c.stage = StageCooking
	}

	if c.mode == ModeToast {
		c.remaining = time.Duration(c.settings.ToastTime) * time.Second
	} else {
		c.remaining = time.Duration(c.settings.BakeTime) * time.Second
	}

	// Screen stays on for the whole cycle.
	c.screen.Clear()
	out.beep(c.cfg.StartBeep, false)
	c.forceRedraw = true
	c.emit(out, in, EventCycleStart)
}

// stopCycle handles the explicit start-button stop while running.
func (c *Controller) stopCycle(in Input, out *Output) {
	c.running = false
	c.relayOn = false
	out.setRelay(false)
	out.beep(c.cfg.ActionBeep, false)
	c.screen.Arm(in.Now)
	c.forceRedraw = true
	c.emit(out, in, EventCycleStop)
}

func (c *Controller) runCycle(in Input, out *Output) {
	if c.stage == StagePreheating && in.TempC >= c.tempTarget-c.cfg.HysteresisC {
		c.stage = StageReady
		out.beep(c.cfg.ReadyBeep, false)
		c.forceRedraw = true
		c.emit(out, in, EventPreheatDone)
	}

	// The user confirms the food is loaded before the timer starts.
	if c.stage == StageReady && c.btnMode.PressEdge() {
		c.stage = StageCooking
		out.beep(c.cfg.ActionBeep, false)
		c.forceRedraw = true
		c.emit(out, in, EventCookingStart)
	}

	// Two-point hysteresis: hold the prior relay state inside the band.
	if in.TempC <= c.tempTarget-c.cfg.HysteresisC && !c.relayOn {
		c.relayOn = true
		out.setRelay(true)
	} else if in.TempC >= c.tempTarget+c.cfg.HysteresisC && c.relayOn {
		c.relayOn = false
		out.setRelay(false)
	}

	if c.stage == StageCooking {
		c.remaining -= in.Delta
	}

	if c.remaining <= 0 {
		c.completeCycle(in, out)
	}
}

// completeCycle is the natural end of a cook cycle: countdown exhausted.
func (c *Controller) completeCycle(in Input, out *Output) {
	c.running = false
	c.relayOn = false
	out.setRelay(false)
	c.emit(out, in, EventCycleComplete)
	// Triple synchronous pulse: blocking is fine, the cycle is over.
	for i := 0; i < 3; i++ {
		out.beep(c.cfg.CompleteBeep, true)
	}
	c.screen.Arm(in.Now)
	c.forceRedraw = true
}

func (c *Controller) decideRedraw(in Input, out *Output) {
	secs := secondsNone
	if c.running {
		secs = secondsLeft(c.remaining)
	}

	due := c.forceRedraw
	if !due && c.running {
		due = secs != c.lastSeconds || in.Now.Sub(c.lastRender) >= c.cfg.RefreshInterval
	}
	if !due {
		return
	}

	out.Redraw = true
	if c.running {
		out.Line0, out.Line1 = runningLines(c.mode, c.stage, in.TempC, secs)
	} else {
		out.Line0, out.Line1 = idleLines(c.mode, c.settings)
	}
	c.lastSeconds = secs
	c.lastRender = in.Now
	c.forceRedraw = false
}

func (c *Controller) emit(out *Output, in Input, t EventType) {
	out.Events = append(out.Events, Event{
		Timestamp:   in.Now,
		Type:        t,
		Mode:        c.mode,
		Stage:       c.stage,
		TempC:       in.TempC,
		SecondsLeft: c.SecondsLeft(),
	})
}

func (o *Output) setRelay(on bool) {
	v := on
	o.Relay = &v
}

func (o *Output) setBacklight(on bool) {
	v := on
	o.Backlight = &v
}

func (o *Output) beep(d time.Duration, sync bool) {
	o.Beeps = append(o.Beeps, BeepRequest{Duration: d, Sync: sync})
}

// Mode returns the currently selected operating mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Settings returns a copy of the current settings.
func (c *Controller) Settings() Settings {
	return c.settings
}

// Running reports whether a cook cycle is in progress.
func (c *Controller) Running() bool {
	return c.running
}

// Stage returns the heating stage. Only meaningful while Running.
func (c *Controller) Stage() Stage {
	return c.stage
}

// SecondsLeft returns the displayed countdown value, or -1 when no cycle is
// running.
func (c *Controller) SecondsLeft() int {
	if !c.running {
		return secondsNone
	}
	return secondsLeft(c.remaining)
}

// HeaterOn reports the commanded relay state.
func (c *Controller) HeaterOn() bool {
	return c.relayOn
}

// BacklightOn reports the screen power state.
func (c *Controller) BacklightOn() bool {
	return c.screen.On()
}
