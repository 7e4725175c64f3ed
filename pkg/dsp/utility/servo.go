// Package utility provides small stages and helpers used around the effect chain.
package utility

import (
	"github.com/justyntemme/fxroute/pkg/dsp"
)

// DCServo removes DC from the analog return and undoes its phase inversion.
// Each channel tracks its own offset with a very low one-pole low pass;
// the output is the negated input plus that offset.
type DCServo struct {
	rate    float64
	offsetL float64
	offsetR float64
}

// NewDCServo creates a servo with the given tracking cutoff in Hz.
func NewDCServo(cutoffHz, sampleRate float64) *DCServo {
	return &DCServo{
		rate: dsp.OnePoleCoeff(cutoffHz, sampleRate),
	}
}

// Rate returns the tracker coefficient ω/(ω+1).
func (s *DCServo) Rate() float64 {
	return s.rate
}

// Offsets returns the tracked DC of each channel.
func (s *DCServo) Offsets() (left, right float64) {
	return s.offsetL, s.offsetR
}

// Process corrects one sample pair.
func (s *DCServo) Process(left, right float64) (float64, float64) {
	s.offsetL += (left - s.offsetL) * s.rate
	s.offsetR += (right - s.offsetR) * s.rate
	return -left + s.offsetL, -right + s.offsetR
}

// ProcessBlock corrects a stereo block in place.
func (s *DCServo) ProcessBlock(left, right *dsp.Block) {
	for i := 0; i < dsp.BlockSize; i++ {
		left[i], right[i] = s.Process(left[i], right[i])
	}
}

// Reset clears the tracked offsets.
func (s *DCServo) Reset() {
	s.offsetL = 0
	s.offsetR = 0
}
