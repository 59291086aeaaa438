package fancontrol

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParamsDuty(t *testing.T) {
	p := Params{TMinC: 50, TMaxC: 75, Interval: 10 * time.Second, Epsilon: 1}

	tests := []struct {
		name  string
		tempC float64
		want  float64
	}{
		{name: "well below t_min", tempC: 20, want: 0},
		{name: "just below t_min", tempC: 49.9, want: 0},
		{name: "exactly t_min", tempC: 50, want: 0},
		{name: "quarter of the segment", tempC: 56.25, want: 25},
		{name: "midpoint", tempC: 62.5, want: 50},
		{name: "exactly t_max", tempC: 75, want: 100},
		{name: "above t_max", tempC: 90, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Duty(tt.tempC)
			require.InDelta(t, tt.want, got, 1e-9)
			require.False(t, math.IsNaN(got))
		})
	}
}

func TestParamsDuty_ExactlyLinearInsideSegment(t *testing.T) {
	p := Params{TMinC: 50, TMaxC: 75, Interval: time.Second}
	for tempC := 50.0; tempC <= 75.0; tempC += 0.5 {
		want := 100 * (tempC - p.TMinC) / (p.TMaxC - p.TMinC)
		require.InDelta(t, want, p.Duty(tempC), 1e-9, "tempC=%v", tempC)
	}
}

func TestParamsDuty_Monotonic(t *testing.T) {
	p := Params{TMinC: 50, TMaxC: 75, Interval: time.Second}
	prev := math.Inf(-1)
	for tempC := 30.0; tempC <= 95.0; tempC += 0.25 {
		got := p.Duty(tempC)
		require.GreaterOrEqual(t, got, prev, "tempC=%v", tempC)
		prev = got
	}
}

func TestParamsDuty_AtTMinIsExactlyZero(t *testing.T) {
	p := Params{TMinC: 50, TMaxC: 75, Interval: time.Second}
	got := p.Duty(50)
	require.Equal(t, 0.0, got)
	require.False(t, math.Signbit(got), "duty must not be negative zero")
}

func TestNewParams_Validation(t *testing.T) {
	tests := []struct {
		name     string
		tmin     float64
		tmax     float64
		interval time.Duration
		epsilon  float64
		wantErr  bool
	}{
		{name: "valid", tmin: 50, tmax: 75, interval: 10 * time.Second, epsilon: 1},
		{name: "zero epsilon is valid", tmin: 50, tmax: 75, interval: time.Second, epsilon: 0},
		{name: "t_min equals t_max", tmin: 60, tmax: 60, interval: time.Second, epsilon: 1, wantErr: true},
		{name: "t_min above t_max", tmin: 80, tmax: 60, interval: time.Second, epsilon: 1, wantErr: true},
		{name: "zero interval", tmin: 50, tmax: 75, interval: 0, epsilon: 1, wantErr: true},
		{name: "negative interval", tmin: 50, tmax: 75, interval: -time.Second, epsilon: 1, wantErr: true},
		{name: "negative epsilon", tmin: 50, tmax: 75, interval: time.Second, epsilon: -0.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParams(tt.tmin, tt.tmax, tt.interval, tt.epsilon)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
