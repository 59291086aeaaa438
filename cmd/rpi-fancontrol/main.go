package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"rpi-fancontrol/internal/config"
	"rpi-fancontrol/internal/fancontrol"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config (empty: built-in defaults)")
		pin        = flag.Int("pin", 14, "GPIO pin to use to control the fan")
		tmin       = flag.Float64("tmin", 50, "Temperature at which the fan speed is set to 0%")
		tmax       = flag.Float64("tmax", 75, "Temperature at which the fan speed is set to 100%")
		interval   = flag.Float64("interval", 10, "Seconds between temperature checks")
		epsilon    = flag.Float64("epsilon", 1, "Minimum duty-cycle change (%) before a new write")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("config load failed")
	}

	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "pin":
			cfg.GPIO.Pin = *pin
		case "tmin":
			cfg.Control.TMinC = *tmin
		case "tmax":
			cfg.Control.TMaxC = *tmax
		case "interval":
			cfg.Control.IntervalSec = *interval
		case "epsilon":
			cfg.Control.Epsilon = *epsilon
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Msg("rpi-fancontrol starting")
	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("rpi-fancontrol failed")
		os.Exit(1)
	}
	log.Info().Msg("rpi-fancontrol stopped")
}

// run owns the fan handle: the deferred Close releases it on every return
// path, including propagated loop errors.
func run(ctx context.Context, cfg config.Config) error {
	params, err := fancontrol.NewParams(
		cfg.Control.TMinC,
		cfg.Control.TMaxC,
		cfg.Control.Interval(),
		cfg.Control.Epsilon,
	)
	if err != nil {
		return err
	}

	fan, err := fancontrol.OpenFan(cfg.GPIO.Backend, cfg.GPIO.Chip, cfg.GPIO.Pin)
	if err != nil {
		return err
	}
	defer func() { _ = fan.Close() }()

	loop, err := fancontrol.NewLoop(fancontrol.NewSensor(""), fan, params)
	if err != nil {
		return err
	}
	return loop.Run(ctx)
}
