package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GPIO    GPIOConfig    `yaml:"gpio"`
	Control ControlConfig `yaml:"control"`
	Log     LogConfig     `yaml:"log"`
}

type GPIOConfig struct {
	// Chip is the gpiochip index (N in /dev/gpiochipN).
	Chip int `yaml:"chip"`
	// Pin is the BCM GPIO number driving the fan.
	Pin int `yaml:"pin"`
	// Backend selects "gpio" (software PWM over a gpiochip line) or
	// "pwm" (hardware PWM via /sys/class/pwm, needs the pwm overlay).
	Backend string `yaml:"backend"`
}

type ControlConfig struct {
	TMinC       float64 `yaml:"t_min_c"`
	TMaxC       float64 `yaml:"t_max_c"`
	IntervalSec float64 `yaml:"interval_seconds"`
	Epsilon     float64 `yaml:"epsilon"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration the daemon runs with when no config
// file and no flags are given.
func Default() Config {
	return Config{
		GPIO: GPIOConfig{
			Chip:    0,
			Pin:     14,
			Backend: "gpio",
		},
		Control: ControlConfig{
			TMinC:       50,
			TMaxC:       75,
			IntervalSec: 10,
			Epsilon:     1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults, so omitted keys keep
// their default values. An empty path yields the pure defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.GPIO.Chip < 0 {
		return fmt.Errorf("gpio.chip must not be negative")
	}
	if c.GPIO.Pin < 0 {
		return fmt.Errorf("gpio.pin must not be negative")
	}
	switch c.GPIO.Backend {
	case "gpio", "pwm":
	default:
		return fmt.Errorf("gpio.backend must be \"gpio\" or \"pwm\", got %q", c.GPIO.Backend)
	}
	if c.Control.TMinC >= c.Control.TMaxC {
		return fmt.Errorf("control.t_min_c must be below control.t_max_c")
	}
	if c.Control.IntervalSec <= 0 {
		return fmt.Errorf("control.interval_seconds must be positive")
	}
	if c.Control.Epsilon < 0 {
		return fmt.Errorf("control.epsilon must not be negative")
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not a known level", c.Log.Level)
	}
	return nil
}

// Interval converts the configured sample interval to a duration.
func (c ControlConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSec * float64(time.Second))
}
