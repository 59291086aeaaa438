//go:build !linux

package fancontrol

import "fmt"

// Stub backends for non-Linux platforms; the daemon only runs on Linux
// but the package should build and unit-test everywhere.

func openGPIO(chip, pin int) (pwmDriver, error) {
	return nil, fmt.Errorf("gpio unsupported on this platform")
}

func openPWM(pin int) (pwmDriver, error) {
	return nil, fmt.Errorf("sysfs pwm unsupported on this platform")
}
