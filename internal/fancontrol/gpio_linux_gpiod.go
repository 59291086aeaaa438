//go:build linux

package fancontrol

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// openGPIO claims the given pin on /dev/gpiochip<chip> as an output via
// the Linux GPIO character device and drives it with a software PWM.
//
// This is intended for 2-wire fans switched by a transistor/MOSFET on a
// hat; the fan speed follows the on-time ratio of the line.
func openGPIO(chip, pin int) (pwmDriver, error) {
	if chip < 0 {
		return nil, fmt.Errorf("invalid gpio chip index %d", chip)
	}
	if pin < 0 {
		return nil, fmt.Errorf("invalid gpio pin %d", pin)
	}

	c, err := gpiocdev.NewChip(fmt.Sprintf("gpiochip%d", chip))
	if err != nil {
		return nil, fmt.Errorf("open gpiochip%d: %w", chip, err)
	}
	line, err := c.RequestLine(pin, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("rpi-fancontrol"))
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("claim gpio %d as output: %w", pin, err)
	}

	return &gpiodPWM{chip: c, line: line, soft: newSoftPWM(line.SetValue)}, nil
}

type gpiodPWM struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
	soft *softPWM
}

func (g *gpiodPWM) SetFrequencyHz(hz int) error {
	return g.soft.SetFrequencyHz(hz)
}

func (g *gpiodPWM) SetDutyPercent(p float64) error {
	return g.soft.SetDutyPercent(p)
}

func (g *gpiodPWM) Close() error {
	if g == nil || g.line == nil {
		return nil
	}
	g.soft.Stop()
	// Leave the fan off.
	_ = g.line.SetValue(0)
	err := g.line.Close()
	g.line = nil
	if g.chip != nil {
		_ = g.chip.Close()
		g.chip = nil
	}
	return err
}
