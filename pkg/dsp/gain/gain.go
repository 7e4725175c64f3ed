// Package gain provides amplitude and gain-related DSP operations.
package gain

import (
	"math"
)

// MinDB is the minimum dB value (effectively -infinity).
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// LinearToDb32 is the float32 version of LinearToDb, for host buffers.
func LinearToDb32(linear float32) float32 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * float32(math.Log10(float64(linear)))
}

// HardClip limits a host sample to [-threshold, threshold].
func HardClip(input, threshold float32) float32 {
	if input > threshold {
		return threshold
	}
	if input < -threshold {
		return -threshold
	}
	return input
}

// HardClipBuffer clips a host buffer in place - no allocations.
func HardClipBuffer(buffer []float32, threshold float32) {
	for i := range buffer {
		buffer[i] = HardClip(buffer[i], threshold)
	}
}
