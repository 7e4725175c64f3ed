// Package filter provides the second-order filters used to shape effect inputs.
package filter

import (
	"math"

	"github.com/justyntemme/fxroute/pkg/dsp"
)

// ButterworthQ gives a maximally flat pass band.
const ButterworthQ = 0.7071067811865476

// Biquad implements a second-order IIR filter (biquad)
// Direct Form I implementation with pre-allocated state.
type Biquad struct {
	// Coefficients, normalized so a0 is 1.
	a1, a2     float64
	b0, b1, b2 float64

	// State variables (per-channel).
	x1, x2 []float64
	y1, y2 []float64
}

// NewBiquad creates a pass-through biquad for the specified number of channels.
func NewBiquad(channels int) *Biquad {
	return &Biquad{
		b0: 1.0,
		x1: make([]float64, channels),
		x2: make([]float64, channels),
		y1: make([]float64, channels),
		y2: make([]float64, channels),
	}
}

// Reset clears the filter state.
func (b *Biquad) Reset() {
	for i := range b.x1 {
		b.x1[i] = 0
		b.x2[i] = 0
		b.y1[i] = 0
		b.y2[i] = 0
	}
}

// SetCoefficients sets the filter coefficients directly.
func (b *Biquad) SetCoefficients(b0, b1, b2, a0, a1, a2 float64) {
	invA0 := 1.0 / a0
	b.b0 = b0 * invA0
	b.b1 = b1 * invA0
	b.b2 = b2 * invA0
	b.a1 = a1 * invA0
	b.a2 = a2 * invA0
}

// Tick filters one sample of a channel.
func (b *Biquad) Tick(x0 float64, channel int) float64 {
	y0 := b.b0*x0 + b.b1*b.x1[channel] + b.b2*b.x2[channel] - b.a1*b.y1[channel] - b.a2*b.y2[channel]
	b.x2[channel] = b.x1[channel]
	b.x1[channel] = x0
	b.y2[channel] = b.y1[channel]
	b.y1[channel] = y0
	return y0
}

// Process applies the filter to a block (single channel) - no allocations.
func (b *Biquad) Process(block *dsp.Block, channel int) {
	x1 := b.x1[channel]
	x2 := b.x2[channel]
	y1 := b.y1[channel]
	y2 := b.y2[channel]

	for i := range block {
		x0 := block[i]
		y0 := b.b0*x0 + b.b1*x1 + b.b2*x2 - b.a1*y1 - b.a2*y2

		x2 = x1
		x1 = x0
		y2 = y1
		y1 = y0

		block[i] = y0
	}

	b.x1[channel] = x1
	b.x2[channel] = x2
	b.y1[channel] = y1
	b.y2[channel] = y2
}

// clampFrequency keeps a cutoff inside (0, Nyquist).
func clampFrequency(sampleRate, frequency float64) float64 {
	nyquist := sampleRate / 2
	if frequency < 1 {
		return 1
	}
	if frequency > nyquist*0.99 {
		return nyquist * 0.99
	}
	return frequency
}

// SetLowpass configures as a lowpass filter.
func (b *Biquad) SetLowpass(sampleRate, frequency, q float64) {
	omega := 2.0 * math.Pi * clampFrequency(sampleRate, frequency) / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	alpha := sinOmega / (2.0 * q)

	b.SetCoefficients(
		(1.0-cosOmega)/2.0, 1.0-cosOmega, (1.0-cosOmega)/2.0,
		1.0+alpha, -2.0*cosOmega, 1.0-alpha)
}

// SetHighpass configures as a highpass filter.
func (b *Biquad) SetHighpass(sampleRate, frequency, q float64) {
	omega := 2.0 * math.Pi * clampFrequency(sampleRate, frequency) / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	alpha := sinOmega / (2.0 * q)

	b.SetCoefficients(
		(1.0+cosOmega)/2.0, -(1.0 + cosOmega), (1.0+cosOmega)/2.0,
		1.0+alpha, -2.0*cosOmega, 1.0-alpha)
}
