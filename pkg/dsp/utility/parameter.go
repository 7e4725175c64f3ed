package utility

import "math"

// ScaleParameter performs linear scaling of a normalized parameter value (0-1) to a target range.
func ScaleParameter(normalized, min, max float64) float64 {
	return min + normalized*(max-min)
}

// ScaleParameterExp performs exponential scaling of a normalized parameter value (0-1) to a target range.
// Used for frequencies, where each step of the control covers the same number of octaves.
func ScaleParameterExp(normalized, min, max float64) float64 {
	if min <= 0 || max <= 0 {
		return ScaleParameter(normalized, min, max)
	}
	return min * math.Pow(max/min, normalized)
}

// ClampParameter ensures a parameter value stays within the specified range.
func ClampParameter(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// SquareTaper maps a normalized control onto a squared curve.
func SquareTaper(normalized float64) float64 {
	return normalized * normalized
}

// SelectIndex splits the normalized range into n equal regions and returns
// the region holding v. A value on a boundary belongs to the upper region.
func SelectIndex(v float64, n int) int {
	if n <= 1 || v <= 0 {
		return 0
	}
	idx := int(v * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}
