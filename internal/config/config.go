// Package config loads the daemon configuration from YAML.
//
// Values are resolved in order: built-in defaults, the YAML file, then
// ARYTHMATIK_* environment variables. Command line flags are applied on top
// by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/modulove/A-RYTH-MATIK/internal/logic"
	"github.com/modulove/A-RYTH-MATIK/internal/module"
	"github.com/modulove/A-RYTH-MATIK/internal/rotary"
)

// Config is the root configuration.
type Config struct {
	Panel       PanelConfig   `yaml:"panel"`
	Encoder     EncoderConfig `yaml:"encoder"`
	GPIO        GPIOConfig    `yaml:"gpio"`
	MQTT        MQTTConfig    `yaml:"mqtt"`
	HTTP        HTTPConfig    `yaml:"http"`
	Poll        time.Duration `yaml:"poll"`
	Heartbeat   time.Duration `yaml:"heartbeat"`
	Passthrough bool          `yaml:"passthrough"`
}

// PanelConfig selects the panel orientation.
type PanelConfig struct {
	Rotated bool `yaml:"rotated"`
}

// EncoderConfig contains encoder interpretation and timing.
type EncoderConfig struct {
	Reversed  bool          `yaml:"reversed"`
	LongPress time.Duration `yaml:"long_press"`
	Debounce  time.Duration `yaml:"debounce"`
}

// GPIOConfig names the GPIO character device.
type GPIOConfig struct {
	Chip string `yaml:"chip"`
}

// MQTTConfig contains broker settings. An empty broker disables MQTT.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
}

// HTTPConfig contains the status server address. Empty disables it.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Encoder: EncoderConfig{
			LongPress: logic.DefaultLongPress,
			Debounce:  rotary.DefaultSwitchDebounce,
		},
		GPIO:      GPIOConfig{Chip: "gpiochip0"},
		MQTT:      MQTTConfig{Broker: "tcp://127.0.0.1:1883"},
		HTTP:      HTTPConfig{Addr: ":8080"},
		Poll:      time.Millisecond,
		Heartbeat: 15 * time.Minute,
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that an empty path yields the defaults with
// environment overrides applied.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg := Default()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ARYTHMATIK_PANEL_ROTATED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ARYTHMATIK_PANEL_ROTATED: %w", err)
		}
		cfg.Panel.Rotated = b
	}
	if v := os.Getenv("ARYTHMATIK_ENCODER_REVERSED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ARYTHMATIK_ENCODER_REVERSED: %w", err)
		}
		cfg.Encoder.Reversed = b
	}
	if v := os.Getenv("ARYTHMATIK_MQTT_BROKER"); v != "" {
		cfg.MQTT.Broker = v
	}
	if v := os.Getenv("ARYTHMATIK_GPIO_CHIP"); v != "" {
		cfg.GPIO.Chip = v
	}
	return nil
}

// Validate checks the configuration for values the daemon cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Poll <= 0 {
		errs = append(errs, fmt.Errorf("poll must be positive, got %v", c.Poll))
	}
	if c.Encoder.LongPress <= 0 {
		errs = append(errs, fmt.Errorf("encoder.long_press must be positive, got %v", c.Encoder.LongPress))
	}
	if c.Encoder.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("encoder.debounce must be positive, got %v", c.Encoder.Debounce))
	}
	if c.Encoder.Debounce >= c.Encoder.LongPress {
		errs = append(errs, errors.New("encoder.debounce must be shorter than encoder.long_press"))
	}
	if c.Heartbeat < 0 {
		errs = append(errs, fmt.Errorf("heartbeat must not be negative, got %v", c.Heartbeat))
	}
	if c.GPIO.Chip == "" {
		errs = append(errs, errors.New("gpio.chip is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Module returns the panel options.
func (c *Config) Module() module.Config {
	return module.Config{
		RotatePanel:    c.Panel.Rotated,
		ReverseEncoder: c.Encoder.Reversed,
		LongPress:      c.Encoder.LongPress,
	}
}

// Rotary returns the encoder sensor settings.
func (c *Config) Rotary() rotary.Config {
	return rotary.Config{SwitchDebounce: c.Encoder.Debounce}
}
