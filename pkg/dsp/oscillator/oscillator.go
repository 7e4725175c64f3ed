// Package oscillator provides the periodic test signals used to exercise the
// engine offline.
package oscillator

import (
	"fmt"
	"math"
	"strings"

	"github.com/justyntemme/fxroute/pkg/dsp"
)

// Shape selects the waveform.
type Shape int

const (
	Sine Shape = iota
	Saw
	Square
	Triangle
)

var shapeNames = [...]string{"sine", "saw", "square", "triangle"}

// String returns the shape name.
func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// ParseShape maps a name to a Shape, ignoring case.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if strings.EqualFold(n, name) {
			return Shape(i), nil
		}
	}
	return Sine, fmt.Errorf("unknown waveform %q", name)
}

// Oscillator generates a naive periodic waveform with a normalized phase.
type Oscillator struct {
	sampleRate float64
	frequency  float64
	phase      float64
	phaseInc   float64
	shape      Shape
	gain       float64
}

// New creates a 440 Hz sine oscillator at unity gain.
func New(sampleRate float64) *Oscillator {
	return &Oscillator{
		sampleRate: sampleRate,
		frequency:  440.0,
		phaseInc:   440.0 / sampleRate,
		gain:       1.0,
	}
}

// SetFrequency sets the oscillator frequency.
func (o *Oscillator) SetFrequency(freq float64) {
	o.frequency = freq
	o.phaseInc = freq / o.sampleRate
}

// Frequency returns the oscillator frequency.
func (o *Oscillator) Frequency() float64 {
	return o.frequency
}

// SetShape selects the waveform.
func (o *Oscillator) SetShape(shape Shape) {
	o.shape = shape
}

// SetGain sets the peak amplitude.
func (o *Oscillator) SetGain(gain float64) {
	o.gain = gain
}

// SetPhase sets the oscillator phase (0-1).
func (o *Oscillator) SetPhase(phase float64) {
	o.phase = phase - math.Floor(phase)
}

// Reset resets the oscillator phase to 0.
func (o *Oscillator) Reset() {
	o.phase = 0.0
}

func (o *Oscillator) updatePhase() {
	o.phase += o.phaseInc
	if o.phase >= 1.0 {
		o.phase -= math.Floor(o.phase)
	}
}

// Next returns one sample and advances the phase.
func (o *Oscillator) Next() float64 {
	var s float64
	switch o.shape {
	case Saw:
		s = 2.0*o.phase - 1.0
	case Square:
		s = -1.0
		if o.phase < 0.5 {
			s = 1.0
		}
	case Triangle:
		if o.phase < 0.5 {
			s = 4.0*o.phase - 1.0
		} else {
			s = 3.0 - 4.0*o.phase
		}
	default:
		s = math.Sin(dsp.TwoPi * o.phase)
	}
	o.updatePhase()
	return s * o.gain
}

// Fill writes one block - no allocations.
func (o *Oscillator) Fill(b *dsp.Block) {
	for i := range b {
		b[i] = o.Next()
	}
}
