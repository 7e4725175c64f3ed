// Package dsp provides the fixed-rate block primitives shared by the effects engine.
package dsp

// Engine timing. The engine runs at a single rate with a single block length.
const (
	SampleRate = 96000.0
	BlockSize  = 128
	BlockRate  = SampleRate / BlockSize // 750 blocks per second

	// Channels carried through the chain.
	Stereo = 2

	// Number of addressable effect rows above row 0.
	FXSlots = 3
)

// Smoothing used for every per-block parameter ramp.
const (
	ParamSmoothCoeff = 50.0 / BlockRate
	DynSmoothCoeff   = 0.02
)

// Timing of the protective stages.
const (
	ServoCutoff = 0.1 // Hz
	DuckSeconds = 0.2
)

// Monitoring frame: one block of interleaved stereo samples.
const MonitorSamples = BlockSize * Stereo

// Phase constants
const (
	TwoPi  = 6.283185307179586
	Pi     = 3.141592653589793
	HalfPi = 1.5707963267948966
)

// Ln2 is the natural logarithm of 2.
const Ln2 = 0.693147180559945309417232121458

// ProcessorType identifies the kind of stage placed in the chain.
type ProcessorType int

const (
	ProcessorTypeUnknown ProcessorType = iota
	ProcessorTypeModulation
	ProcessorTypeDelay
	ProcessorTypeReverb
)

// String returns the string representation of a ProcessorType.
func (pt ProcessorType) String() string {
	switch pt {
	case ProcessorTypeModulation:
		return "Modulation"
	case ProcessorTypeDelay:
		return "Delay"
	case ProcessorTypeReverb:
		return "Reverb"
	default:
		return "Unknown"
	}
}
