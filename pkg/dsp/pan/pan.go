// Package pan places mono test signals in the stereo field.
package pan

import (
	"math"

	"github.com/justyntemme/fxroute/pkg/dsp"
)

// Law represents different panning laws.
type Law int

const (
	// Linear uses linear panning (constant power not maintained).
	Linear Law = iota
	// ConstantPower uses sine/cosine panning (maintains constant power).
	ConstantPower
)

// Gains returns the left and right gains for a pan position.
// pan: -1.0 = hard left, 0.0 = center, 1.0 = hard right.
func Gains(pan float64, law Law) (left, right float64) {
	pan = math.Max(-1, math.Min(1, pan))
	if law == Linear {
		return (1 - pan) / 2, (1 + pan) / 2
	}
	angle := (pan + 1.0) * dsp.Pi / 4.0
	return math.Cos(angle), math.Sin(angle)
}

// Spread writes a panned copy of mono to left and right.
func Spread(mono *dsp.Block, pan float64, law Law, left, right *dsp.Block) {
	gl, gr := Gains(pan, law)
	for i := range mono {
		s := mono[i]
		left[i] = s * gl
		right[i] = s * gr
	}
}
