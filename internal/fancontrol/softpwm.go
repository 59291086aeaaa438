package fancontrol

import (
	"fmt"
	"sync"
	"time"
)

// softPWM generates a PWM waveform in software over a binary output line,
// the way lgpio's tx_pwm does for pins without a hardware PWM channel.
//
// One goroutine owns the line and alternates it between high and low for
// the on/off portion of each period. Duty changes take effect at the next
// period boundary. A failed line write stops the waveform; the error is
// sticky and reported from the next SetDutyPercent call.
type softPWM struct {
	setValue func(int) error

	mu      sync.Mutex
	period  time.Duration
	duty    float64
	err     error
	running bool

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func newSoftPWM(setValue func(int) error) *softPWM {
	return &softPWM{
		setValue: setValue,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// SetFrequencyHz sets the carrier frequency and starts the waveform
// goroutine on first call. The line idles low until a duty is set.
func (s *softPWM) SetFrequencyHz(hz int) error {
	if hz <= 0 {
		return fmt.Errorf("invalid pwm frequency %d", hz)
	}
	s.mu.Lock()
	s.period = time.Second / time.Duration(hz)
	start := !s.running
	if start {
		s.running = true
	}
	s.mu.Unlock()
	if start {
		go s.run()
	}
	return nil
}

func (s *softPWM) SetDutyPercent(p float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if !s.running {
		return fmt.Errorf("pwm not started")
	}
	s.duty = p
	return nil
}

// Stop terminates the waveform goroutine and waits for it to let go of
// the line. Safe to call more than once, and before the first
// SetFrequencyHz.
func (s *softPWM) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if running {
		<-s.done
	}
}

func (s *softPWM) run() {
	defer close(s.done)
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		s.mu.Lock()
		duty, period := s.duty, s.period
		s.mu.Unlock()

		on, off := pulseWidths(duty, period)
		if on > 0 && !s.drive(1, on) {
			return
		}
		if off > 0 && !s.drive(0, off) {
			return
		}
	}
}

// drive sets the line level and holds it for d, honoring stop requests.
func (s *softPWM) drive(level int, d time.Duration) bool {
	if err := s.setValue(level); err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return false
	}
	select {
	case <-s.stopCh:
		return false
	case <-time.After(d):
		return true
	}
}

// pulseWidths splits one PWM period into on and off portions for a duty
// cycle in percent. Out-of-range duty saturates to a constant level.
func pulseWidths(duty float64, period time.Duration) (on, off time.Duration) {
	if duty <= 0 {
		return 0, period
	}
	if duty >= 100 {
		return period, 0
	}
	on = time.Duration(float64(period) * duty / 100.0)
	return on, period - on
}
