// Package dynamics provides the protective level processors placed around the effect chain.
package dynamics

import (
	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/envelope"
	"github.com/justyntemme/fxroute/pkg/dsp/gain"
)

// Peak limiter tuning.
const (
	PeakThresholdDB = -33.0
	PeakOutputGain  = 2.0
	ReleaseSeconds  = 0.250
	HoldSeconds     = 0.0085
	OutputThreshold = -3.0
	OutputGain      = 1.0
	OutputPregain   = 3.98
	defaultVolume   = 1.0
)

// Limiter is a stereo-linked peak limiter built on a dual-hold envelope.
// The same gain is applied to both channels.
type Limiter struct {
	threshold  float64 // linear
	outputGain float64
	pregain    float64

	detector *envelope.HoldDetector

	// Volume ramp, advanced once per block.
	volume       float64
	volumeSmooth float64
	smoothVolume bool

	gain float64 // last computed gain
}

// NewLimiter creates the pre-chain peak limiter with a settable volume.
// The pre-reverb instance uses the same constructor.
func NewLimiter(sampleRate float64) *Limiter {
	return &Limiter{
		threshold:    gain.DbToLinear(PeakThresholdDB),
		outputGain:   PeakOutputGain,
		pregain:      1.0,
		detector:     envelope.NewHoldDetector(sampleRate, HoldSeconds, ReleaseSeconds),
		volume:       defaultVolume,
		volumeSmooth: defaultVolume,
		smoothVolume: true,
		gain:         PeakOutputGain,
	}
}

// NewOutputLimiter creates the final limiter with fixed makeup pregain.
func NewOutputLimiter(sampleRate float64) *Limiter {
	return &Limiter{
		threshold:  gain.DbToLinear(OutputThreshold),
		outputGain: OutputGain,
		pregain:    OutputPregain,
		detector:   envelope.NewHoldDetector(sampleRate, HoldSeconds, ReleaseSeconds),
		volume:     1.0,
		gain:       OutputGain,
	}
}

// SetVolume sets the volume target from a normalized control value.
// The control is squared for a more even taper.
func (l *Limiter) SetVolume(v float64) {
	l.volume = v * v
}

// Volume returns the current smoothed volume.
func (l *Limiter) Volume() float64 {
	return l.volumeSmooth
}

// DropVolume pulls the volume ramp to zero so it fades back in towards
// the target on the following blocks.
func (l *Limiter) DropVolume() {
	if l.smoothVolume {
		l.volumeSmooth = 0
	}
}

// Threshold returns the linear limiting threshold.
func (l *Limiter) Threshold() float64 {
	return l.threshold
}

// FixedGain returns the gain applied while below threshold.
func (l *Limiter) FixedGain() float64 {
	return l.outputGain
}

// HoldSamples returns the hold period of the envelope follower.
func (l *Limiter) HoldSamples() int {
	return l.detector.HoldSamples()
}

// Gain returns the gain computed for the most recent sample.
func (l *Limiter) Gain() float64 {
	return l.gain
}

// Run limits one block. Input and output may alias.
func (l *Limiter) Run(inL, inR, outL, outR *dsp.Block) {
	pre := l.pregain
	if l.smoothVolume {
		l.volumeSmooth = dsp.ParamSmooth(l.volume, l.volumeSmooth)
		pre = l.volumeSmooth
	}

	for i := 0; i < dsp.BlockSize; i++ {
		left := inL[i] * pre
		right := inR[i] * pre

		peak := left
		if peak < 0 {
			peak = -peak
		}
		if r := abs(right); r > peak {
			peak = r
		}

		env := l.detector.Detect(peak)
		g := l.outputGain
		if env > l.threshold {
			g = l.threshold * l.outputGain / env
		}
		l.gain = g

		outL[i] = left * g
		outR[i] = right * g
	}
}

// Reset clears the envelope and snaps the volume ramp to its target.
func (l *Limiter) Reset() {
	l.detector.Reset()
	l.volumeSmooth = l.volume
	l.gain = l.outputGain
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
