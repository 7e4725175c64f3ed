package analysis

import (
	"math"
	"sync"

	"github.com/justyntemme/fxroute/pkg/dsp/gain"
)

// Peak meter ballistics.
const (
	DefaultHoldSeconds = 3.0
	DefaultDecayDB     = 20.0 // dB per second
)

// PeakMeter measures peak signal levels with a falling bar and a held peak.
type PeakMeter struct {
	peak       float64
	hold       float64
	holdTime   float64
	decayRate  float64
	sampleRate float64
	holdCount  int
	mu         sync.Mutex
}

// NewPeakMeter creates a new peak meter.
func NewPeakMeter(sampleRate float64) *PeakMeter {
	return &PeakMeter{
		sampleRate: sampleRate,
		holdTime:   DefaultHoldSeconds,
		decayRate:  DefaultDecayDB,
	}
}

// SetHoldTime sets the peak hold time in seconds.
func (pm *PeakMeter) SetHoldTime(seconds float64) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.holdTime = seconds
}

// SetDecayRate sets the peak decay rate in dB/second.
func (pm *PeakMeter) SetDecayRate(dbPerSecond float64) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.decayRate = dbPerSecond
}

// Process updates the meter with one frame of samples.
func (pm *PeakMeter) Process(samples []float64) {
	framePeak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > framePeak {
			framePeak = a
		}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	// dB/s expressed as a natural-log decay per sample.
	decayPerSample := pm.decayRate / pm.sampleRate / 20.0 * math.Ln10
	pm.peak *= math.Exp(-decayPerSample * float64(len(samples)))
	if framePeak > pm.peak {
		pm.peak = framePeak
	}

	if framePeak > pm.hold {
		pm.hold = framePeak
		pm.holdCount = int(pm.holdTime * pm.sampleRate)
		return
	}
	pm.holdCount -= len(samples)
	if pm.holdCount <= 0 {
		pm.hold = pm.peak
		pm.holdCount = 0
	}
}

// Peak returns the current peak level (linear).
func (pm *PeakMeter) Peak() float64 {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.peak
}

// PeakDB returns the current peak level in decibels, gain.MinDB for silence.
func (pm *PeakMeter) PeakDB() float64 {
	return gain.LinearToDb(pm.Peak())
}

// Hold returns the held peak level (linear).
func (pm *PeakMeter) Hold() float64 {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.hold
}

// HoldDB returns the held peak level in decibels.
func (pm *PeakMeter) HoldDB() float64 {
	return gain.LinearToDb(pm.Hold())
}

// Reset clears the peak and hold values.
func (pm *PeakMeter) Reset() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peak = 0
	pm.hold = 0
	pm.holdCount = 0
}
