// Command arythmatik runs the A-RYTH-MATIK panel on a Linux GPIO chip and
// publishes clock, reset and encoder events to MQTT.
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

	"github.com/modulove/A-RYTH-MATIK/internal/config"
	"github.com/modulove/A-RYTH-MATIK/internal/gpio"
	"github.com/modulove/A-RYTH-MATIK/internal/logic"
	"github.com/modulove/A-RYTH-MATIK/internal/module"
	"github.com/modulove/A-RYTH-MATIK/internal/mqtt"
	"github.com/modulove/A-RYTH-MATIK/internal/status"
	"github.com/modulove/A-RYTH-MATIK/internal/web"
)

// options is the resolved command line.
type options struct {
	cfg        *config.Config
	printState bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatalf("fatal: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// parseFlags loads the config file named by -config and applies the flags
// that were set explicitly on top of it.
func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("arythmatik", flag.ContinueOnError)
	path := fs.String("config", "", "YAML config file (defaults used when empty)")
	rotate := fs.Bool("rotate-panel", false, "Use the rotated panel layout")
	reverse := fs.Bool("reverse-encoder", false, "Reverse the encoder direction")
	longPress := fs.Duration("long-press", logic.DefaultLongPress, "Long press threshold")
	poll := fs.Duration("poll", time.Millisecond, "Panel polling interval")
	heartbeat := fs.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	broker := fs.String("broker", "", "MQTT broker address (empty to disable)")
	httpAddr := fs.String("http", "", "HTTP status address (empty to disable)")
	chip := fs.String("chip", "", "GPIO character device")
	passthrough := fs.Bool("passthrough", false, "Drive all outputs from the clock input")
	printState := fs.Bool("print-state", false, "Print current input state and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	cfg, err := config.LoadOrDefault(*path)
	if err != nil {
		return options{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rotate-panel":
			cfg.Panel.Rotated = *rotate
		case "reverse-encoder":
			cfg.Encoder.Reversed = *reverse
		case "long-press":
			cfg.Encoder.LongPress = *longPress
		case "poll":
			cfg.Poll = *poll
		case "heartbeat":
			cfg.Heartbeat = *heartbeat
		case "broker":
			cfg.MQTT.Broker = *broker
		case "http":
			cfg.HTTP.Addr = *httpAddr
		case "chip":
			cfg.GPIO.Chip = *chip
		case "passthrough":
			cfg.Passthrough = *passthrough
		}
	})
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}

	return options{cfg: cfg, printState: *printState}, nil
}

// publisher is what runLoop needs from the MQTT side.
type publisher interface {
	mqtt.Publisher
	mqtt.ConnectionStatus
}

func run(opts options) error {
	cfg := opts.cfg

	chip, err := gpio.NewRealChip(cfg.GPIO.Chip)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer chip.Close()

	m, err := openModule(cfg, chip, time.Now)
	if err != nil {
		return err
	}

	if opts.printState {
		m.ProcessInputs()
		fmt.Println(stateLine(m.Snapshot()))
		return nil
	}

	var pub publisher = mqtt.Discard{}
	if cfg.MQTT.Broker != "" {
		p, err := mqtt.NewRealPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		pub = p
	}
	defer pub.Close()

	tracker := status.NewTracker(time.Now(), statusConfig(cfg))
	tracker.Update(m.Snapshot(), 0, logic.EventCounts{})

	snap := tracker.Snapshot()
	startup := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := pub.PublishSystem(startup); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	log.Printf("started: orientation=%s reversed=%v poll=%v broker=%q heartbeat=%v passthrough=%v",
		m.Orientation(), cfg.Encoder.Reversed, cfg.Poll, cfg.MQTT.Broker, cfg.Heartbeat, cfg.Passthrough)

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(m, pub, pub, tracker, loopConfig{
		Heartbeat:   cfg.Heartbeat,
		Passthrough: cfg.Passthrough,
	}, time.Now, ticker.C, sigCh)
}

// openModule claims the encoder and the panel pins from chip.
func openModule(cfg *config.Config, chip gpio.Chip, now func() time.Time) (*module.Module, error) {
	enc, err := module.OpenEncoder(chip, cfg.Rotary(), now)
	if err != nil {
		return nil, fmt.Errorf("init encoder: %w", err)
	}
	m, err := module.New(cfg.Module(), chip, enc)
	if err != nil {
		return nil, fmt.Errorf("init module: %w", err)
	}
	return m, nil
}

func statusConfig(cfg *config.Config) status.Config {
	return status.Config{
		PollMs:      cfg.Poll.Milliseconds(),
		LongPressMs: cfg.Encoder.LongPress.Milliseconds(),
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		Broker:      cfg.MQTT.Broker,
		HTTPAddr:    cfg.HTTP.Addr,
		Chip:        cfg.GPIO.Chip,
		Passthrough: cfg.Passthrough,
	}
}

func stateLine(s module.Snapshot) string {
	return fmt.Sprintf("%s: CLK=%s RST=%s", s.Orientation, logic.Level(s.Clock), logic.Level(s.Reset))
}

// loopConfig holds the runLoop settings that do not come from the module.
type loopConfig struct {
	Heartbeat   time.Duration
	Passthrough bool
}

func runLoop(m *module.Module, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, cfg loopConfig, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	lastHeartbeat := now()
	var (
		cycles uint64
		counts logic.EventCounts
	)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			m.AllLow()

			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
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
				tracker.Update(m.Snapshot(), cycles, counts)
				event.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			cycles++

			events := m.Poll(t)
			if cfg.Passthrough {
				m.FollowClock()
			}

			for _, event := range events {
				counts.Add(event)
				// Clock edges arrive at audio rate; only the rest is logged.
				if event.Type != logic.EventClockRising && event.Type != logic.EventClockFalling {
					log.Printf("event: %s (CLK=%s RST=%s)", event.Type, logic.Level(event.Clock), logic.Level(event.Reset))
				}
				if err := publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
				}
			}

			if tracker != nil {
				tracker.Update(m.Snapshot(), cycles, counts)
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			if cfg.Heartbeat > 0 && t.Sub(lastHeartbeat) >= cfg.Heartbeat {
				lastHeartbeat = t
				log.Printf("heartbeat: cycles=%d clock=%d/%d reset=%d/%d encoder=+%d/-%d presses=%d/%d",
					cycles, counts.ClockRising, counts.ClockFalling, counts.ResetRising, counts.ResetFalling,
					counts.Increments, counts.Decrements, counts.ShortPresses, counts.LongPresses)

				hb := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					hb.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hb); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}
