package fancontrol

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Backend names accepted by OpenFan.
const (
	BackendGPIO = "gpio" // software PWM over a gpiochip line
	BackendPWM  = "pwm"  // hardware PWM via /sys/class/pwm
)

var openBackendFn = openBackend

func openBackend(backend string, chip, pin int) (pwmDriver, error) {
	switch backend {
	case "", BackendGPIO:
		return openGPIO(chip, pin)
	case BackendPWM:
		return openPWM(pin)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

// Fan owns the hardware handle for the fan's PWM output line.
// Not safe for concurrent use; the control loop is its only caller.
type Fan struct {
	drv pwmDriver
	pin int
}

// OpenFan claims the fan line and fixes the PWM carrier frequency.
// The returned Fan exclusively owns the hardware handle until Close.
func OpenFan(backend string, chip, pin int) (*Fan, error) {
	drv, err := openBackendFn(backend, chip, pin)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHardwareInit, err)
	}
	if err := drv.SetFrequencyHz(PWMFrequencyHz); err != nil {
		_ = drv.Close()
		return nil, fmt.Errorf("%w: set frequency: %v", ErrHardwareInit, err)
	}
	log.Info().
		Str("backend", backend).
		Int("chip", chip).
		Int("pin", pin).
		Int("freq_hz", PWMFrequencyHz).
		Msg("fan line claimed")
	return &Fan{drv: drv, pin: pin}, nil
}

// Set commands a new duty cycle in percent. Repeated calls with the same
// value are safe and re-assert the same duty cycle.
func (f *Fan) Set(duty float64) error {
	if f == nil || f.drv == nil {
		return fmt.Errorf("%w: fan is closed", ErrHardwareWrite)
	}
	if err := f.drv.SetDutyPercent(duty); err != nil {
		return fmt.Errorf("%w: duty %.1f%%: %v", ErrHardwareWrite, duty, err)
	}
	log.Info().Float64("duty_pct", duty).Msg("fan speed set")
	return nil
}

// Close releases the hardware handle. Only the first call releases;
// later calls are no-ops.
func (f *Fan) Close() error {
	if f == nil || f.drv == nil {
		return nil
	}
	drv := f.drv
	f.drv = nil
	log.Info().Int("pin", f.pin).Msg("releasing fan line")
	return drv.Close()
}
