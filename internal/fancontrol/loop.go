package fancontrol

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

var afterFn = time.After

// TempReader supplies one temperature sample (degrees C) per call.
type TempReader interface {
	Read() (float64, error)
}

// Actuator commands the fan duty cycle in percent.
type Actuator interface {
	Set(duty float64) error
}

// Loop is the temperature-to-fan control loop. Single-threaded: it is the
// exclusive user of its sensor and actuator for the process lifetime.
type Loop struct {
	src    TempReader
	fan    Actuator
	params Params

	committed bool
	lastDuty  float64
}

// NewLoop validates params and builds the loop; an invalid configuration
// never reaches Run.
func NewLoop(src TempReader, fan Actuator, params Params) (*Loop, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Loop{src: src, fan: fan, params: params}, nil
}

// Run samples the temperature, maps it to a duty cycle and commits it to
// the fan when the change from the last committed value exceeds Epsilon.
// The first computed target is always committed so the hardware starts in
// a known state.
//
// Run blocks until ctx is canceled (clean shutdown, returns nil) or a
// sensor/hardware error occurs. Errors are fatal to the run and returned
// for the caller to release the fan and exit; there is no retry and no
// fallback value.
func (l *Loop) Run(ctx context.Context) error {
	log.Info().
		Float64("t_min_c", l.params.TMinC).
		Float64("t_max_c", l.params.TMaxC).
		Dur("interval", l.params.Interval).
		Float64("epsilon_pct", l.params.Epsilon).
		Msg("control loop started")

	for {
		tempC, err := l.src.Read()
		if err != nil {
			return fmt.Errorf("read temperature: %w", err)
		}
		target := l.params.Duty(tempC)
		log.Debug().
			Float64("temp_c", tempC).
			Float64("target_pct", target).
			Msg("temperature sampled")

		if !l.committed || math.Abs(target-l.lastDuty) > l.params.Epsilon {
			if err := l.fan.Set(target); err != nil {
				return err
			}
			l.lastDuty = target
			l.committed = true
		} else {
			log.Debug().
				Float64("target_pct", target).
				Float64("committed_pct", l.lastDuty).
				Msg("change within epsilon, write skipped")
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("control loop stopping")
			return nil
		case <-afterFn(l.params.Interval):
		}
	}
}
