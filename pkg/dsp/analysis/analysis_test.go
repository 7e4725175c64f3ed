package analysis

import (
	"math"
	"testing"

	"github.com/justyntemme/fxroute/pkg/dsp/gain"
)

const sampleRate = 96000.0

func TestPeakMeter(t *testing.T) {
	pm := NewPeakMeter(sampleRate)
	pm.Process([]float64{0.1, 0.5, 0.3, -0.7, 0.2})

	if math.Abs(pm.Peak()-0.7) > 0.001 {
		t.Errorf("peak = %f, want 0.7", pm.Peak())
	}
	if want := 20 * math.Log10(0.7); math.Abs(pm.PeakDB()-want) > 0.001 {
		t.Errorf("peak dB = %f, want %f", pm.PeakDB(), want)
	}
	if math.Abs(pm.Hold()-0.7) > 0.001 {
		t.Errorf("hold = %f, want 0.7", pm.Hold())
	}
}

func TestPeakMeterDecay(t *testing.T) {
	pm := NewPeakMeter(sampleRate)
	pm.SetDecayRate(20)
	pm.Process([]float64{1.0})

	pm.Process(make([]float64, int(0.1*sampleRate)))

	if got := pm.PeakDB(); math.Abs(got-(-2.0)) > 0.05 {
		t.Errorf("peak after 100 ms = %f dB, want about -2", got)
	}
	if pm.Hold() != 1.0 {
		t.Errorf("hold = %f, want 1 within the hold time", pm.Hold())
	}

	t.Run("HoldExpires", func(t *testing.T) {
		pm := NewPeakMeter(sampleRate)
		pm.SetHoldTime(0.05)
		pm.Process([]float64{1.0})
		pm.Process(make([]float64, int(0.06*sampleRate)))
		if pm.Hold() >= 1.0 {
			t.Errorf("hold = %f, want it to follow the falling peak", pm.Hold())
		}
		if pm.Hold() != pm.Peak() {
			t.Errorf("hold = %f, peak = %f", pm.Hold(), pm.Peak())
		}
	})
}

func TestPeakMeterReset(t *testing.T) {
	pm := NewPeakMeter(sampleRate)
	pm.Process([]float64{0.5, -0.8, 0.3})
	pm.Reset()
	if pm.Peak() != 0 || pm.Hold() != 0 {
		t.Error("reset did not clear the meter")
	}
	if pm.PeakDB() != gain.MinDB {
		t.Errorf("silent peak = %f dB, want %f", pm.PeakDB(), gain.MinDB)
	}
}

func sine(n int, sign float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = sign * math.Sin(2*math.Pi*1000*float64(i)/sampleRate)
	}
	return out
}

func TestCorrelationMeter(t *testing.T) {
	tests := []struct {
		name   string
		l, r   []float64
		want   float64
		status PhaseStatus
	}{
		{"Identical", sine(1024, 1), sine(1024, 1), 1, PhaseInPhase},
		{"Inverted", sine(1024, 1), sine(1024, -1), -1, PhaseOutOfPhase},
		{"OneSideSilent", sine(1024, 1), make([]float64, 1024), 0, PhasePartiallyCorrelated},
		{"BothSilent", make([]float64, 1024), make([]float64, 1024), 1, PhaseInPhase},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cm := NewCorrelationMeter(512)
			cm.SetAveraging(0)
			cm.Process(tc.l, tc.r)
			if math.Abs(cm.Correlation()-tc.want) > 0.01 {
				t.Errorf("correlation = %f, want %f", cm.Correlation(), tc.want)
			}
			if cm.PhaseStatus() != tc.status {
				t.Errorf("status = %s, want %s", cm.PhaseStatus(), tc.status)
			}
		})
	}
}

func TestCorrelationMeterWindow(t *testing.T) {
	t.Run("WaitsForFullWindow", func(t *testing.T) {
		cm := NewCorrelationMeter(512)
		cm.SetAveraging(0)
		cm.Process(sine(100, 1), sine(100, -1))
		if cm.Correlation() != 0 {
			t.Errorf("reading before the window filled: %f", cm.Correlation())
		}
	})

	t.Run("MismatchedLengthsIgnored", func(t *testing.T) {
		cm := NewCorrelationMeter(4)
		cm.SetAveraging(0)
		cm.Process([]float64{1, 2, 3, 4}, []float64{1})
		if cm.Correlation() != 0 {
			t.Errorf("mismatched frame changed the reading: %f", cm.Correlation())
		}
	})

	t.Run("Averaging", func(t *testing.T) {
		cm := NewCorrelationMeter(512)
		cm.SetAveraging(0.5)
		cm.Process(sine(512, 1), sine(512, 1))
		if math.Abs(cm.Correlation()-0.5) > 0.01 {
			t.Errorf("first averaged reading = %f, want 0.5", cm.Correlation())
		}
	})

	t.Run("Reset", func(t *testing.T) {
		cm := NewCorrelationMeter(16)
		cm.Process(sine(64, 1), sine(64, 1))
		cm.Reset()
		if cm.Correlation() != 0 {
			t.Error("reset did not clear the reading")
		}
	})
}
