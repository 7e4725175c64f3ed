package fxengine

import "github.com/justyntemme/fxroute/pkg/dsp"

// Stage is the processing capability shared by every routed effect. It
// reads the chain input and overwrites the row buffers. Reset clears the
// stage's memory.
type Stage interface {
	ProcessBlock(inL, inR, outL, outR *dsp.Block)
	Reset()
}

// Modulation is the chorus collaborator.
type Modulation interface {
	Stage
	SetEnables(pathI, pathII bool)
	SetVolume(level float64)
}

// Delay is the stereo echo collaborator.
type Delay interface {
	Stage
	SetTime(v float64)
	SetTimeSync(v float64)
	SetTempoSync(on bool)
	SetTempo(beatsPerSecond float64)
	SetFeedback(v float64)
	SetTone(v float64)
	SetMix(v float64)
}

// Reverb is the reverb collaborator.
type Reverb interface {
	Stage
	SetPreset(v float64)
	SetDecay(v float64)
	SetPreDelay(v float64)
	SetEarlyMix(v float64)
	SetTone(v float64)
	SetShimmer(v float64)
	SetWetDry(v float64)
	HardMute()
}
