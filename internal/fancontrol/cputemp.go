package fancontrol

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// DefaultSensorPath is where Linux exposes the SoC temperature on a
// Raspberry Pi, as an integer in milli-degrees Celsius.
const DefaultSensorPath = "/sys/class/thermal/thermal_zone0/temp"

// Sensor reads the CPU temperature from a sysfs thermal zone file.
// Each Read opens the file fresh; there is no caching.
type Sensor struct {
	path string
}

func NewSensor(path string) *Sensor {
	if path == "" {
		path = DefaultSensorPath
	}
	return &Sensor{path: path}
}

func parseMilliC(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: sensor file empty", ErrSensorUnavailable)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %q: %v", ErrSensorUnavailable, s, err)
	}
	// ParseFloat accepts "NaN" and "Inf"; a thermal zone never reports those.
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: non-finite value %q", ErrSensorUnavailable, s)
	}
	return n / 1000.0, nil
}

// Read returns the current CPU temperature in degrees Celsius.
func (s *Sensor) Read() (float64, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %v", ErrSensorUnavailable, s.path, err)
	}
	return parseMilliC(string(b))
}
