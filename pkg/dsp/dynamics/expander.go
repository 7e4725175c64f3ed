package dynamics

import (
	"math"

	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/gain"
)

// Expander tuning. Gain quantities are in log2 units.
const (
	ExpanderThresholdDB = -11.0
	ExpanderRatio       = 5.0
	ExpanderMaxGR       = -4.0
	RMSTimeSeconds      = 0.1
	rmsDecayTarget      = 0.37
)

// Expander is a downward expander driven by a one-pole RMS estimate of the
// summed stereo energy. It only ever attenuates.
type Expander struct {
	threshold float64 // linear
	slope     float64 // (ratio-1)/ratio
	maxGR     float64
	rmsCoef   float64

	rmsState      float64
	gainReduction float64

	// Scratch
	energy dsp.Block
	gains  dsp.Block
}

// NewExpander creates the post-limiter noise expander.
func NewExpander(sampleRate float64) *Expander {
	return &Expander{
		threshold: gain.DbToLinear(ExpanderThresholdDB),
		slope:     (ExpanderRatio - 1) / ExpanderRatio,
		maxGR:     ExpanderMaxGR,
		rmsCoef:   math.Pow(rmsDecayTarget, 1/(RMSTimeSeconds*sampleRate)),
	}
}

// RMSCoef returns the integrator feedback coefficient.
func (e *Expander) RMSCoef() float64 {
	return e.rmsCoef
}

// GainReduction returns the most recent gain reduction in log2 units (<= 0).
func (e *Expander) GainReduction() float64 {
	return e.gainReduction
}

// FloorReduction is the deepest reduction the expander can apply.
func (e *Expander) FloorReduction() float64 {
	return e.maxGR * e.slope
}

// Process expands one stereo block in place.
func (e *Expander) Process(left, right *dsp.Block) {
	dsp.Power(&e.energy, left, right)

	for i := 0; i < dsp.BlockSize; i++ {
		e.rmsState = e.energy[i] + e.rmsCoef*e.rmsState
		rms := dsp.FastSqrt(e.rmsState)

		under := dsp.FastLog2(rms/e.threshold, e.maxGR)
		if under < e.maxGR {
			under = e.maxGR
		} else if under > 0 {
			under = 0
		}
		e.gainReduction = under * e.slope
		e.gains[i] = dsp.FastPow2(e.gainReduction)
	}

	dsp.MulInPlace(left, &e.gains)
	dsp.MulInPlace(right, &e.gains)
}

// Reset clears the RMS integrator.
func (e *Expander) Reset() {
	e.rmsState = 0
	e.gainReduction = 0
}
