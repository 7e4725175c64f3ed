// Package modulation provides the two-path chorus used in the effect chain and its LFO.
package modulation

import (
	"math"
)

// Waveform represents the LFO waveform shape.
type Waveform int

const (
	// WaveformSine produces a sine wave.
	WaveformSine Waveform = iota
	// WaveformTriangle produces a triangle wave.
	WaveformTriangle
)

// LFO implements a Low Frequency Oscillator for modulation.
type LFO struct {
	sampleRate float64

	frequency float64 // Hz
	phase     float64 // 0-1
	waveform  Waveform

	phaseInc float64
}

// NewLFO creates a new LFO.
func NewLFO(sampleRate float64) *LFO {
	lfo := &LFO{
		sampleRate: sampleRate,
		frequency:  1.0,
		waveform:   WaveformSine,
	}
	lfo.updatePhaseIncrement()
	return lfo
}

// SetFrequency sets the LFO frequency in Hz.
func (l *LFO) SetFrequency(hz float64) {
	l.frequency = math.Max(0.01, math.Min(20.0, hz))
	l.updatePhaseIncrement()
}

// Frequency returns the LFO frequency in Hz.
func (l *LFO) Frequency() float64 {
	return l.frequency
}

// SetWaveform sets the LFO waveform.
func (l *LFO) SetWaveform(waveform Waveform) {
	l.waveform = waveform
}

// SetPhase sets the current phase (0-1).
func (l *LFO) SetPhase(phase float64) {
	l.phase = phase - math.Floor(phase)
}

// Phase returns the current phase (0-1).
func (l *LFO) Phase() float64 {
	return l.phase
}

func (l *LFO) updatePhaseIncrement() {
	l.phaseInc = l.frequency / l.sampleRate
}

func (l *LFO) generateWaveform() float64 {
	switch l.waveform {
	case WaveformTriangle:
		if l.phase < 0.5 {
			return 4.0*l.phase - 1.0
		}
		return 3.0 - 4.0*l.phase
	default:
		return math.Sin(2.0 * math.Pi * l.phase)
	}
}

// Process generates the next LFO sample in [-1, 1].
func (l *LFO) Process() float64 {
	out := l.generateWaveform()

	l.phase += l.phaseInc
	if l.phase >= 1.0 {
		l.phase -= 1.0
	}
	return out
}

// Reset returns the LFO to phase zero.
func (l *LFO) Reset() {
	l.phase = 0.0
}
