package fancontrol

import (
	"fmt"
	"time"
)

// PWMFrequencyHz is the fixed carrier frequency for all fan PWM writes.
const PWMFrequencyHz = 25

// Params is the immutable control configuration. Build it with NewParams
// (or validate it explicitly) before handing it to the loop.
type Params struct {
	// TMinC and TMaxC bound the linear segment: at TMinC and below the fan
	// is off, at TMaxC and above it runs at 100%.
	TMinC float64
	TMaxC float64

	// Interval is the pause between temperature samples.
	Interval time.Duration

	// Epsilon is the minimum duty-cycle change (in percent) required
	// before a new value is committed to hardware.
	Epsilon float64
}

func NewParams(tminC, tmaxC float64, interval time.Duration, epsilon float64) (Params, error) {
	p := Params{TMinC: tminC, TMaxC: tmaxC, Interval: interval, Epsilon: epsilon}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func (p Params) Validate() error {
	if !(p.TMinC < p.TMaxC) {
		return fmt.Errorf("fancontrol: t_min (%.1f) must be below t_max (%.1f)", p.TMinC, p.TMaxC)
	}
	if p.Interval <= 0 {
		return fmt.Errorf("fancontrol: interval must be positive, got %s", p.Interval)
	}
	if p.Epsilon < 0 {
		return fmt.Errorf("fancontrol: epsilon must not be negative, got %.2f", p.Epsilon)
	}
	return nil
}

// Duty maps a temperature to a fan duty cycle on the linear segment
// between TMinC and TMaxC, clamped to [0, 100]. Pure; no side effects.
func (p Params) Duty(tempC float64) float64 {
	m := 100.0 / (p.TMaxC - p.TMinC)
	c := -m * p.TMinC
	return clamp(m*tempC+c, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
