package dsp

import (
	"github.com/meko-christian/algo-approx"
)

// FastLog2 approximates log2(x). Non-positive input returns floor.
func FastLog2(x, floor float64) float64 {
	if !(x > 0) {
		return floor
	}
	return approx.FastLog(x) / Ln2
}

// FastPow2 approximates 2^x.
func FastPow2(x float64) float64 {
	return approx.FastExp(x * Ln2)
}

// FastSqrt approximates sqrt(x) for x >= 0.
func FastSqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return approx.FastSqrt(x)
}
