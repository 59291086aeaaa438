package fancontrol

// pwmDriver is the minimal interface the fan actuator needs from a
// PWM/GPIO backend.
//
// Duty is expressed in percent (0..100); callers are expected to pass
// in-range values. Close must leave the fan off and be best-effort.
type pwmDriver interface {
	SetFrequencyHz(hz int) error
	SetDutyPercent(p float64) error
	Close() error
}
