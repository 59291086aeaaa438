package fancontrol

import (
	"errors"
	"fmt"
	"testing"
)

type fakeDriver struct {
	freqHz     int
	duties     []float64
	failSet    bool
	closeCalls int
}

func (d *fakeDriver) SetFrequencyHz(hz int) error {
	d.freqHz = hz
	return nil
}

func (d *fakeDriver) SetDutyPercent(p float64) error {
	if d.failSet {
		return fmt.Errorf("write rejected")
	}
	d.duties = append(d.duties, p)
	return nil
}

func (d *fakeDriver) Close() error {
	d.closeCalls++
	return nil
}

func swapBackend(t *testing.T, fn func(backend string, chip, pin int) (pwmDriver, error)) {
	t.Helper()
	old := openBackendFn
	openBackendFn = fn
	t.Cleanup(func() { openBackendFn = old })
}

func TestOpenFan_SetsCarrierFrequency(t *testing.T) {
	fake := &fakeDriver{}
	swapBackend(t, func(string, int, int) (pwmDriver, error) { return fake, nil })

	fan, err := OpenFan(BackendGPIO, 0, 14)
	if err != nil {
		t.Fatalf("OpenFan: %v", err)
	}
	defer fan.Close()

	if fake.freqHz != PWMFrequencyHz {
		t.Fatalf("freq=%d want %d", fake.freqHz, PWMFrequencyHz)
	}
}

func TestOpenFan_BackendFailureIsInitError(t *testing.T) {
	swapBackend(t, func(string, int, int) (pwmDriver, error) {
		return nil, fmt.Errorf("chip busy")
	})

	_, err := OpenFan(BackendGPIO, 0, 14)
	if !errors.Is(err, ErrHardwareInit) {
		t.Fatalf("err=%v want ErrHardwareInit", err)
	}
}

func TestFanSet_WriteFailure(t *testing.T) {
	fake := &fakeDriver{failSet: true}
	swapBackend(t, func(string, int, int) (pwmDriver, error) { return fake, nil })

	fan, err := OpenFan(BackendGPIO, 0, 14)
	if err != nil {
		t.Fatalf("OpenFan: %v", err)
	}
	defer fan.Close()

	if err := fan.Set(40); !errors.Is(err, ErrHardwareWrite) {
		t.Fatalf("err=%v want ErrHardwareWrite", err)
	}
}

func TestFanSet_Idempotent(t *testing.T) {
	fake := &fakeDriver{}
	swapBackend(t, func(string, int, int) (pwmDriver, error) { return fake, nil })

	fan, err := OpenFan(BackendGPIO, 0, 14)
	if err != nil {
		t.Fatalf("OpenFan: %v", err)
	}
	defer fan.Close()

	if err := fan.Set(40); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := fan.Set(40); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	if len(fake.duties) != 2 {
		t.Fatalf("duties=%v want two writes of 40", fake.duties)
	}
}

func TestFanClose_SecondCallIsNoOp(t *testing.T) {
	fake := &fakeDriver{}
	swapBackend(t, func(string, int, int) (pwmDriver, error) { return fake, nil })

	fan, err := OpenFan(BackendGPIO, 0, 14)
	if err != nil {
		t.Fatalf("OpenFan: %v", err)
	}

	if err := fan.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := fan.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if fake.closeCalls != 1 {
		t.Fatalf("closeCalls=%d want 1", fake.closeCalls)
	}
}

func TestFanSet_AfterCloseFails(t *testing.T) {
	fake := &fakeDriver{}
	swapBackend(t, func(string, int, int) (pwmDriver, error) { return fake, nil })

	fan, err := OpenFan(BackendGPIO, 0, 14)
	if err != nil {
		t.Fatalf("OpenFan: %v", err)
	}
	_ = fan.Close()

	if err := fan.Set(40); !errors.Is(err, ErrHardwareWrite) {
		t.Fatalf("err=%v want ErrHardwareWrite", err)
	}
}

func TestOpenBackend_UnknownName(t *testing.T) {
	_, err := openBackend("spi", 0, 14)
	if err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
