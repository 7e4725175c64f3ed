package dsp

import "math"

// ParamSmooth advances a per-block parameter ramp one step towards target.
// Larger jumps move proportionally faster so big steps settle quickly
// while small adjustments stay smooth.
func ParamSmooth(target, state float64) float64 {
	diff := target - state
	return state + diff*(ParamSmoothCoeff+DynSmoothCoeff*math.Abs(diff))
}

// OnePoleCoeff returns the bilinear one-pole coefficient ω/(ω+1) for a cutoff.
func OnePoleCoeff(cutoffHz, sampleRate float64) float64 {
	w := TwoPi * cutoffHz / sampleRate
	return w / (w + 1)
}

// ReleaseCoeff returns exp(-3/(fs*seconds)), the -60 dB style release factor.
func ReleaseCoeff(seconds, sampleRate float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return math.Exp(-3.0 / (sampleRate * seconds))
}
