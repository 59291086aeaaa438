package fancontrol

import "errors"

// Sentinel errors for the three failure classes the service distinguishes.
// Callers classify wrapped errors with errors.Is.
var (
	// ErrSensorUnavailable marks a temperature read that failed because the
	// sensor file is missing, unreadable or not a number.
	ErrSensorUnavailable = errors.New("fancontrol: sensor unavailable")

	// ErrHardwareInit marks a failure to open the GPIO chip or claim the
	// fan pin at startup. Fatal: the loop is never entered.
	ErrHardwareInit = errors.New("fancontrol: hardware init failed")

	// ErrHardwareWrite marks a failed duty-cycle write mid-run.
	ErrHardwareWrite = errors.New("fancontrol: hardware write failed")
)
