package logic

import (
	"testing"
	"time"
)

// sim drives a Controller with a synthetic clock, one call per loop tick.
type sim struct {
	c    *Controller
	now  time.Time
	step time.Duration
	temp float64
}

func newSim(cfg Config) *sim {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &sim{
		c:    New(cfg, start),
		now:  start,
		step: 20 * time.Millisecond,
		temp: 25,
	}
}

func (s *sim) tick(mode, up, down, start bool) Output {
	s.now = s.now.Add(s.step)
	return s.c.Tick(Input{
		Now:   s.now,
		Delta: s.step,
		TempC: s.temp,
		Mode:  mode,
		Up:    up,
		Down:  down,
		Start: start,
	})
}

func (s *sim) idle() Output {
	return s.tick(false, false, false, false)
}

func (s *sim) run(n int) {
	for i := 0; i < n; i++ {
		s.idle()
	}
}

// press holds a single button for one tick and then releases it, returning
// both tick outputs.
func (s *sim) press(mode, up, down, start bool) (pressed, released Output) {
	pressed = s.tick(mode, up, down, start)
	released = s.idle()
	return pressed, released
}

func hasEvent(out Output, t EventType) bool {
	for _, ev := range out.Events {
		if ev.Type == t {
			return true
		}
	}
	return false
}

func findEvent(t *testing.T, out Output, typ EventType) Event {
	t.Helper()
	for _, ev := range out.Events {
		if ev.Type == typ {
			return ev
		}
	}
	t.Fatalf("no %s event in %+v", typ, out.Events)
	return Event{}
}

func TestFirstTickDrawsSelectionScreen(t *testing.T) {
	s := newSim(DefaultConfig())
	out := s.idle()
	if !out.Redraw {
		t.Fatal("expected a redraw on the first tick")
	}
	if out.Line0 != "     Toast      " {
		t.Errorf("line0: got %q", out.Line0)
	}
	if out.Line1 != "  Time: 00:30   " {
		t.Errorf("line1: got %q", out.Line1)
	}
	if s.c.Running() {
		t.Error("controller should start in mode selection")
	}
	if s.c.SecondsLeft() != -1 {
		t.Errorf("SecondsLeft while idle: got %d, want -1", s.c.SecondsLeft())
	}
}

func TestModeButtonCyclesAndWraps(t *testing.T) {
	s := newSim(DefaultConfig())

	pressed, _ := s.press(true, false, false, false)
	if s.c.Mode() != ModeBake {
		t.Fatalf("after one press: got %v, want BAKE", s.c.Mode())
	}
	if !hasEvent(pressed, EventModeChange) {
		t.Error("expected MODE_CHANGE event")
	}
	if len(pressed.Beeps) != 1 || pressed.Beeps[0].Sync {
		t.Errorf("expected one async beep, got %+v", pressed.Beeps)
	}
	if !pressed.Redraw {
		t.Error("mode change should redraw")
	}

	s.press(true, false, false, false)
	if s.c.Mode() != ModePassthru {
		t.Fatalf("after two presses: got %v, want PASSTHRU", s.c.Mode())
	}
	s.press(true, false, false, false)
	if s.c.Mode() != ModeToast {
		t.Fatalf("after three presses: got %v, want TOAST (wrap)", s.c.Mode())
	}
}

func TestModeChangeResetsBakeOption(t *testing.T) {
	s := newSim(DefaultConfig())
	s.press(true, false, false, false) // BAKE

	// Long-press up to flip the adjustment target to time.
	for i := 0; i < 30; i++ {
		s.tick(false, true, false, false)
	}
	s.idle()
	if s.c.Settings().Option != OptionTime {
		t.Fatalf("long press should select the time option, got %v", s.c.Settings().Option)
	}

	s.press(true, false, false, false) // PASSTHRU
	if s.c.Settings().Option != OptionTemp {
		t.Errorf("mode change should reset the option to temp, got %v", s.c.Settings().Option)
	}
}

func TestUpAdjustsOnReleaseNotPress(t *testing.T) {
	s := newSim(DefaultConfig())

	pressed := s.tick(false, true, false, false)
	if got := s.c.Settings().ToastTime; got != 30 {
		t.Fatalf("press alone must not adjust: got %d", got)
	}
	if len(pressed.Beeps) != 1 {
		t.Errorf("press should beep once, got %+v", pressed.Beeps)
	}

	released := s.idle()
	if got := s.c.Settings().ToastTime; got != 45 {
		t.Fatalf("release should step toast time to 45, got %d", got)
	}
	if !released.Redraw {
		t.Error("adjust should redraw")
	}
}

func TestDownAdjustsOnPress(t *testing.T) {
	s := newSim(DefaultConfig())
	s.press(false, true, false, false) // 45
	s.press(false, true, false, false) // 60

	pressed, _ := s.press(false, false, true, false)
	if got := s.c.Settings().ToastTime; got != 45 {
		t.Fatalf("down press should step toast time to 45, got %d", got)
	}
	if len(pressed.Beeps) != 1 {
		t.Errorf("down press should beep once, got %+v", pressed.Beeps)
	}
}

func TestAdjustClampsViaButtons(t *testing.T) {
	s := newSim(DefaultConfig())

	// Toast starts at the minimum; down must not go below it.
	s.press(false, false, true, false)
	if got := s.c.Settings().ToastTime; got != 30 {
		t.Errorf("toast time below minimum: got %d, want 30", got)
	}

	// Bake temp: 350 + 6*25 hits the 500 ceiling exactly.
	s.press(true, false, false, false)
	for i := 0; i < 8; i++ {
		s.press(false, true, false, false)
	}
	if got := s.c.Settings().BakeTemp; got != 500 {
		t.Errorf("bake temp above maximum: got %d, want 500", got)
	}
}

func TestLongPressTogglesOptionExactlyOnce(t *testing.T) {
	s := newSim(DefaultConfig())
	s.press(true, false, false, false) // BAKE

	// Hold up well past the long-press threshold.
	for i := 0; i < 50; i++ {
		s.tick(false, true, false, false)
	}
	if s.c.Settings().Option != OptionTime {
		t.Fatalf("expected option toggled to time, got %v", s.c.Settings().Option)
	}

	// Release: the consumed press must not also fire the short-press step.
	s.idle()
	if got := s.c.Settings().BakeTime; got != 300 {
		t.Errorf("release after long press adjusted bake time: got %d, want 300", got)
	}
	if s.c.Settings().Option != OptionTime {
		t.Errorf("option flipped again on release: got %v", s.c.Settings().Option)
	}
}

func TestLongPressInToastModeIsShortPress(t *testing.T) {
	s := newSim(DefaultConfig())
	for i := 0; i < 50; i++ {
		s.tick(false, true, false, false)
	}
	s.idle()
	// Toast has no option toggle, so even a long hold adjusts once on
	// release.
	if got := s.c.Settings().ToastTime; got != 45 {
		t.Errorf("toast time: got %d, want 45", got)
	}
}

func TestToastCycleRunsToCompletion(t *testing.T) {
	s := newSim(DefaultConfig())

	pressed, _ := s.press(false, false, false, true)
	if !s.c.Running() {
		t.Fatal("start press should begin a cycle")
	}
	if s.c.Stage() != StageCooking {
		t.Fatalf("toast should cook immediately, got %v", s.c.Stage())
	}
	if !hasEvent(pressed, EventCycleStart) {
		t.Error("expected CYCLE_START event")
	}
	ev := findEvent(t, pressed, EventCycleStart)
	if ev.Mode != ModeToast || ev.SecondsLeft != 30 {
		t.Errorf("CYCLE_START fields: got mode=%v seconds=%d", ev.Mode, ev.SecondsLeft)
	}
	if pressed.Relay == nil || !*pressed.Relay {
		t.Error("cold oven should switch the relay on at cycle start")
	}

	var final Output
	for i := 0; i < 2000 && s.c.Running(); i++ {
		final = s.idle()
	}
	if s.c.Running() {
		t.Fatal("cycle never completed")
	}
	if !hasEvent(final, EventCycleComplete) {
		t.Error("expected CYCLE_COMPLETE event")
	}
	if final.Relay == nil || *final.Relay {
		t.Error("completion must force the relay off")
	}
	syncs := 0
	for _, b := range final.Beeps {
		if b.Sync {
			syncs++
		}
	}
	if syncs != 3 {
		t.Errorf("completion should queue three sync beeps, got %d", syncs)
	}
	if !s.c.BacklightOn() {
		t.Error("screen should still be on right after completion")
	}
	if s.c.SecondsLeft() != -1 {
		t.Errorf("SecondsLeft after completion: got %d, want -1", s.c.SecondsLeft())
	}
}

func TestBakePreheatReadyCookingFlow(t *testing.T) {
	s := newSim(DefaultConfig())
	s.press(true, false, false, false) // BAKE, target 350F

	s.press(false, false, false, true)
	if s.c.Stage() != StagePreheating {
		t.Fatalf("bake should preheat first, got %v", s.c.Stage())
	}

	// Countdown is frozen until cooking begins.
	s.run(100)
	if got := s.c.SecondsLeft(); got != 300 {
		t.Fatalf("countdown ran during preheat: got %d, want 300", got)
	}

	// Cross the ready threshold (350F = 176.7C, band 2.5C).
	s.temp = 175
	out := s.idle()
	if s.c.Stage() != StageReady {
		t.Fatalf("expected READY at target minus band, got %v", s.c.Stage())
	}
	if !hasEvent(out, EventPreheatDone) {
		t.Error("expected PREHEAT_DONE event")
	}
	if len(out.Beeps) != 1 || out.Beeps[0].Duration != DefaultConfig().ReadyBeep {
		t.Errorf("expected the ready beep, got %+v", out.Beeps)
	}

	// Still frozen while waiting for confirmation.
	s.run(100)
	if got := s.c.SecondsLeft(); got != 300 {
		t.Fatalf("countdown ran during ready wait: got %d, want 300", got)
	}

	// Mode press confirms the food is loaded.
	out = s.tick(true, false, false, false)
	if s.c.Stage() != StageCooking {
		t.Fatalf("mode press should start cooking, got %v", s.c.Stage())
	}
	if !hasEvent(out, EventCookingStart) {
		t.Error("expected COOKING_START event")
	}
	if s.c.Mode() != ModeBake {
		t.Errorf("confirming must not change the mode, got %v", s.c.Mode())
	}
	s.idle()

	s.run(100)
	if got := s.c.SecondsLeft(); got >= 300 {
		t.Errorf("countdown did not decrement while cooking: got %d", got)
	}
}

func TestThermostatHysteresis(t *testing.T) {
	s := newSim(DefaultConfig())
	s.press(false, false, false, true) // toast, fixed 260C target

	// Cold: relay on.
	if !s.c.HeaterOn() {
		t.Fatal("relay should be on while cold")
	}

	// Inside the band: hold, no relay command.
	s.temp = 260
	out := s.idle()
	if out.Relay != nil {
		t.Errorf("inside the band the relay line must be left alone, got %v", *out.Relay)
	}
	if !s.c.HeaterOn() {
		t.Error("relay should still be on inside the band")
	}

	// Above target plus band: off.
	s.temp = 263
	out = s.idle()
	if out.Relay == nil || *out.Relay {
		t.Fatal("expected relay off above the band")
	}

	// Back inside the band: still off, no command.
	s.temp = 259
	out = s.idle()
	if out.Relay != nil {
		t.Errorf("re-entering the band must not switch the relay, got %v", *out.Relay)
	}
	if s.c.HeaterOn() {
		t.Error("relay should stay off inside the band")
	}

	// Below target minus band: on again.
	s.temp = 257
	out = s.idle()
	if out.Relay == nil || !*out.Relay {
		t.Fatal("expected relay on below the band")
	}
}

func TestStopCycleMidway(t *testing.T) {
	s := newSim(DefaultConfig())
	s.press(false, false, false, true)
	s.run(50)

	pressed, _ := s.press(false, false, false, true)
	if s.c.Running() {
		t.Fatal("second start press should stop the cycle")
	}
	if !hasEvent(pressed, EventCycleStop) {
		t.Error("expected CYCLE_STOP event")
	}
	if hasEvent(pressed, EventCycleComplete) {
		t.Error("manual stop must not report completion")
	}
	if pressed.Relay == nil || *pressed.Relay {
		t.Error("stop must force the relay off")
	}
	for _, b := range pressed.Beeps {
		if b.Sync {
			t.Errorf("manual stop must not use the completion beeps, got %+v", pressed.Beeps)
		}
	}
	if !pressed.Redraw {
		t.Error("stop should redraw the selection screen")
	}
}

func TestStageNeverRegresses(t *testing.T) {
	s := newSim(DefaultConfig())
	s.press(true, false, false, false)
	s.press(false, false, false, true)
	s.temp = 176
	s.idle() // READY
	s.press(true, false, false, false)
	if s.c.Stage() != StageCooking {
		t.Fatalf("setup: got %v", s.c.Stage())
	}

	// Opening the door drops the temperature; the stage holds.
	s.temp = 100
	s.run(20)
	if s.c.Stage() != StageCooking {
		t.Errorf("stage regressed to %v on a temperature dip", s.c.Stage())
	}
	if !s.c.HeaterOn() {
		t.Error("thermostat should drive the relay back on after the dip")
	}
}

func TestRedrawOncePerDisplayedSecond(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RefreshInterval = time.Hour // isolate the seconds-change trigger
	s := newSim(cfg)
	s.press(false, false, false, true)

	redraws := 0
	for i := 0; i < 50; i++ { // one second of ticks
		if s.idle().Redraw {
			redraws++
		}
	}
	if redraws != 1 {
		t.Errorf("expected exactly one redraw across one second, got %d", redraws)
	}
}

func TestRedrawOnRefreshIntervalWhenCountdownFrozen(t *testing.T) {
	s := newSim(DefaultConfig())
	s.press(true, false, false, false)
	s.tick(false, false, false, true) // preheating: countdown frozen
	s.idle()

	redraws := 0
	for i := 0; i < 20; i++ {
		if s.idle().Redraw {
			redraws++
		}
	}
	// 400ms of frozen countdown at a 200ms refresh interval.
	if redraws != 2 {
		t.Errorf("expected two interval redraws, got %d", redraws)
	}
}

func TestIdleTimeoutTurnsBacklightOffOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdleTimeout = time.Second
	s := newSim(cfg)

	offs := 0
	for i := 0; i < 100; i++ { // two seconds
		out := s.idle()
		if out.Backlight != nil && !*out.Backlight {
			offs++
		}
	}
	if offs != 1 {
		t.Fatalf("backlight-off should fire exactly once, got %d", offs)
	}
	if s.c.BacklightOn() {
		t.Error("backlight should be off after the idle timeout")
	}
}

func TestWakePressIsConsumed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdleTimeout = time.Second
	s := newSim(cfg)
	s.run(60) // expire the screen

	pressed, released := s.press(false, true, false, false)
	if pressed.Backlight == nil || !*pressed.Backlight {
		t.Fatal("first press on a dark screen should turn the backlight on")
	}
	if len(pressed.Beeps) != 0 {
		t.Errorf("wake press must not beep, got %+v", pressed.Beeps)
	}
	if got := s.c.Settings().ToastTime; got != 30 {
		t.Fatalf("wake press adjusted the setting: got %d", got)
	}
	if released.Backlight != nil {
		t.Errorf("release after wake should not touch the backlight, got %v", *released.Backlight)
	}

	// The second press acts normally.
	s.press(false, true, false, false)
	if got := s.c.Settings().ToastTime; got != 45 {
		t.Errorf("second press should adjust: got %d, want 45", got)
	}
}

func TestWakePressDoesNotStartCycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdleTimeout = time.Second
	s := newSim(cfg)
	s.run(60)

	s.press(false, false, false, true)
	if s.c.Running() {
		t.Fatal("wake press must not start a cycle")
	}
	if !s.c.BacklightOn() {
		t.Fatal("press should have woken the screen")
	}

	s.press(false, false, false, true)
	if !s.c.Running() {
		t.Error("second press should start the cycle")
	}
}

func TestScreenStaysOnWhileRunning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdleTimeout = time.Second
	s := newSim(cfg)
	s.run(40) // most of the idle budget
	s.press(false, false, false, true)

	// Run far past where the idle deadline would have been.
	for i := 0; i < 200; i++ {
		out := s.idle()
		if out.Backlight != nil && !*out.Backlight {
			t.Fatal("backlight went off during a running cycle")
		}
	}
	if !s.c.BacklightOn() {
		t.Error("backlight should be on while running")
	}
}

func TestScreenRearmsAfterStop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdleTimeout = time.Second
	s := newSim(cfg)
	s.press(false, false, false, true)
	s.run(10)
	s.press(false, false, false, true) // stop

	saw := false
	for i := 0; i < 100; i++ {
		out := s.idle()
		if out.Backlight != nil && !*out.Backlight {
			saw = true
		}
	}
	if !saw {
		t.Error("idle timeout should be re-armed after a stop")
	}
}

func TestPassthruCooksImmediatelyWithBakeDuration(t *testing.T) {
	s := newSim(DefaultConfig())
	s.press(true, false, false, false)
	s.press(true, false, false, false) // PASSTHRU

	out := s.tick(false, false, false, true)
	if s.c.Stage() != StageCooking {
		t.Fatalf("passthru should cook immediately, got %v", s.c.Stage())
	}
	if got := s.c.SecondsLeft(); got != 300 {
		t.Errorf("passthru should count down the bake duration: got %d, want 300", got)
	}
	ev := findEvent(t, out, EventCycleStart)
	if ev.Mode != ModePassthru {
		t.Errorf("CYCLE_START mode: got %v", ev.Mode)
	}
}

func TestModeButtonIgnoredWhileCooking(t *testing.T) {
	s := newSim(DefaultConfig())
	s.press(false, false, false, true) // toast, cooking

	out, _ := s.press(true, false, false, false)
	if s.c.Mode() != ModeToast {
		t.Errorf("mode changed while running: got %v", s.c.Mode())
	}
	if hasEvent(out, EventModeChange) {
		t.Error("MODE_CHANGE emitted while running")
	}
	if hasEvent(out, EventCookingStart) {
		t.Error("COOKING_START emitted outside the ready wait")
	}
}

func TestAdjustButtonsIgnoredWhileRunning(t *testing.T) {
	s := newSim(DefaultConfig())
	s.press(false, false, false, true)

	s.press(false, true, false, false)
	s.press(false, false, true, false)
	if got := s.c.Settings().ToastTime; got != 30 {
		t.Errorf("settings changed while running: got %d, want 30", got)
	}
}
