// Command ovend drives the toaster-oven controller: buttons, thermocouple,
// heater relay, buzzer and LCD, with cook-cycle telemetry over MQTT and an
// HTTP status page.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/host/v3"

	"github.com/sweeney/ovend/internal/buzzer"
	"github.com/sweeney/ovend/internal/display"
	"github.com/sweeney/ovend/internal/gpio"
	"github.com/sweeney/ovend/internal/logic"
	"github.com/sweeney/ovend/internal/mqtt"
	"github.com/sweeney/ovend/internal/status"
	"github.com/sweeney/ovend/internal/thermo"
	"github.com/sweeney/ovend/internal/web"
)

func main() {
	tick := flag.Duration("tick", 20*time.Millisecond, "Control loop interval")
	idleTimeout := flag.Duration("idle-timeout", 30*time.Second, "Backlight idle timeout")
	longPress := flag.Duration("long-press", 500*time.Millisecond, "Long-press threshold")
	hysteresis := flag.Float64("hysteresis", 2.5, "Thermostat hysteresis band (Celsius)")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	spiPort := flag.String("spi", "", "SPI port for the thermocouple (empty for first)")
	i2cBus := flag.String("i2c", "", "I2C bus for the LCD (empty for first)")
	lcdAddr := flag.Int("lcd-addr", display.DefaultAddr, "LCD backpack I2C address")
	chip := flag.String("chip", gpio.DefaultChip, "GPIO character device")
	pinMode := flag.Int("pin-mode", gpio.DefaultPinBtnMode, "BCM pin number for the mode button")
	pinUp := flag.Int("pin-up", gpio.DefaultPinBtnUp, "BCM pin number for the up button")
	pinDown := flag.Int("pin-down", gpio.DefaultPinBtnDown, "BCM pin number for the down button")
	pinStart := flag.Int("pin-start", gpio.DefaultPinBtnStart, "BCM pin number for the start button")
	pinRelay := flag.Int("pin-relay", gpio.DefaultPinRelay, "BCM pin number for the heater relay")
	pinBuzzer := flag.Int("pin-buzzer", gpio.DefaultPinBuzzer, "BCM pin number for the buzzer")
	printTemp := flag.Bool("print-temp", false, "Print current temperature and exit")

	flag.Parse()

	cfg := logic.DefaultConfig()
	cfg.LongPress = *longPress
	cfg.IdleTimeout = *idleTimeout
	cfg.HysteresisC = *hysteresis

	pins := gpio.ButtonPins{Mode: *pinMode, Up: *pinUp, Down: *pinDown, Start: *pinStart}

	err := run(cfg, *tick, *broker, *heartbeat, *httpAddr, *spiPort, *i2cBus,
		uint16(*lcdAddr), *chip, pins, *pinRelay, *pinBuzzer, *printTemp)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg logic.Config, tick time.Duration, broker string, heartbeat time.Duration,
	httpAddr, spiPort, i2cBus string, lcdAddr uint16, chip string,
	pins gpio.ButtonPins, pinRelay, pinBuzzer int, printTemp bool) error {

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("init periph host: %w", err)
	}

	sampler, err := thermo.NewRealSampler(spiPort)
	if err != nil {
		return fmt.Errorf("init thermocouple: %w", err)
	}
	defer sampler.Close()

	// Print temperature mode
	if printTemp {
		c, err := sampler.Sample(time.Now())
		if err != nil {
			return fmt.Errorf("sample temperature: %w", err)
		}
		fmt.Printf("%.2fC (%.2fF)\n", c, logic.CelsiusToFahrenheit(c))
		return nil
	}

	renderer, err := display.NewRealRenderer(i2cBus, lcdAddr)
	if err != nil {
		return fmt.Errorf("init lcd: %w", err)
	}
	defer renderer.Close()

	buttons, err := gpio.NewRealButtons(chip, pins)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	relay, err := gpio.NewRealOutput(chip, pinRelay)
	if err != nil {
		return fmt.Errorf("init relay: %w", err)
	}
	defer relay.Close()

	buzzOut, err := gpio.NewRealOutput(chip, pinBuzzer)
	if err != nil {
		return fmt.Errorf("init buzzer: %w", err)
	}
	defer buzzOut.Close()

	publisher := mqtt.NewRealPublisher(broker)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:        tick.Milliseconds(),
		IdleTimeoutMs: cfg.IdleTimeout.Milliseconds(),
		LongPressMs:   cfg.LongPress.Milliseconds(),
		HeartbeatMs:   heartbeat.Milliseconds(),
		HysteresisC:   cfg.HysteresisC,
		Broker:        broker,
		HTTPPort:      httpAddr,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: tick=%v idle-timeout=%v long-press=%v broker=%s heartbeat=%v",
		tick, cfg.IdleTimeout, cfg.LongPress, broker, heartbeat)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	hw := hardware{
		buttons:  buttons,
		sampler:  sampler,
		renderer: renderer,
		relay:    relay,
		beeper:   buzzer.New(buzzOut),
	}
	return runLoop(hw, publisher, publisher, tracker, cfg, heartbeat,
		time.Now, time.Sleep, ticker.C, sigCh)
}

// hardware groups the control loop's hardware collaborators.
type hardware struct {
	buttons  gpio.ButtonReader
	sampler  thermo.Sampler
	renderer display.Renderer
	relay    gpio.Output
	beeper   buzzer.Pulser
}

func runLoop(hw hardware, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus,
	tracker *status.Tracker, cfg logic.Config, heartbeat time.Duration,
	now func() time.Time, sleep func(time.Duration),
	tick <-chan time.Time, sig <-chan os.Signal) error {

	startTime := now()
	ctrl := logic.New(cfg, startTime)
	lastTick := startTime
	lastHeartbeat := startTime
	lastTemp := 0.0

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}

			// The heater must never be left energized across a restart.
			if err := hw.relay.Set(false); err != nil {
				log.Printf("relay off on shutdown: %v", err)
			}

			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()

			st, err := hw.buttons.Read()
			if err != nil {
				log.Printf("button read error: %v", err)
				// lastTick is left alone so the missed interval is counted
				// into the next tick's delta.
				continue
			}
			delta := t.Sub(lastTick)
			lastTick = t

			tempC, err := hw.sampler.Sample(t)
			if err != nil {
				log.Printf("temperature sample error: %v", err)
				tempC = lastTemp
			} else {
				lastTemp = tempC
			}

			out := ctrl.Tick(logic.Input{
				Now:   t,
				Delta: delta,
				TempC: tempC,
				Mode:  st.Mode,
				Up:    st.Up,
				Down:  st.Down,
				Start: st.Start,
			})

			if out.Relay != nil {
				if err := hw.relay.Set(*out.Relay); err != nil {
					log.Printf("relay set error: %v", err)
				}
			}
			if out.Backlight != nil {
				if err := hw.renderer.SetBacklight(*out.Backlight); err != nil {
					log.Printf("backlight set error: %v", err)
				}
			}

			playBeeps(hw.beeper, out.Beeps, sleep)

			if out.Redraw {
				if err := hw.renderer.Render(out.Line0, out.Line1); err != nil {
					log.Printf("lcd render error: %v", err)
				}
			}

			for _, event := range out.Events {
				log.Printf("event: %s (mode=%s stage=%s temp=%.1fC left=%ds)",
					event.Type, event.Mode, event.Stage, event.TempC, event.SecondsLeft)
				if tracker != nil {
					tracker.RecordEvent(event.Type)
				}
				if err := publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(status.OvenState{
					Mode:        ctrl.Mode(),
					Running:     ctrl.Running(),
					Stage:       ctrl.Stage(),
					TempC:       tempC,
					SecondsLeft: ctrl.SecondsLeft(),
					HeaterOn:    ctrl.HeaterOn(),
					BacklightOn: ctrl.BacklightOn(),
				})
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			// Check for heartbeat
			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat && tracker != nil {
				lastHeartbeat = t

				// Refresh network info for heartbeat
				if net := readNetworkInfo(); net != nil {
					tracker.SetNetwork(net)
				}
				counts := tracker.Counts()
				log.Printf("heartbeat: uptime=%v started=%d completed=%d stopped=%d",
					t.Sub(startTime), counts.Started, counts.Completed, counts.Stopped)

				snap := tracker.Snapshot()
				hbEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
					Heartbeat: &mqtt.HeartbeatInfo{
						UptimeSeconds:   int64(t.Sub(startTime).Seconds()),
						CyclesStarted:   counts.Started,
						CyclesCompleted: counts.Completed,
						CyclesStopped:   counts.Stopped,
					},
					RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

// playBeeps forwards the tick's beep requests to the buzzer. Consecutive
// synchronous pulses (the completion sequence) get a silent gap of the same
// length between them.
func playBeeps(b buzzer.Pulser, beeps []logic.BeepRequest, sleep func(time.Duration)) {
	prevSync := false
	for _, req := range beeps {
		if req.Sync {
			if prevSync {
				sleep(req.Duration)
			}
			b.PulseSync(req.Duration)
			prevSync = true
		} else {
			b.Pulse(req.Duration)
			prevSync = false
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
