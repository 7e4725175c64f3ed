package delay

import (
	"math"

	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/mix"
	"github.com/justyntemme/fxroute/pkg/dsp/utility"
)

// Echo tuning
const (
	// MaxSeconds is the length of the echo memory.
	MaxSeconds = 2.0

	feedbackScale   = 1.1
	maxInputGain    = 2.5
	dcCutoffHz      = 200.0
	timeOffset      = 0.18
	timeRange       = 0.8 // fraction of the memory reachable by the time control
	loopSmoothing   = 0.01
	toneMinHz       = 32.0    // 2^5
	toneMaxHz       = 16384.0 // 2^14
	lfoRateScale    = 628.31853
	lfoAmountScale  = 100.0
	defaultTone     = 0.5
	defaultFeedback = 0.5
)

// In-loop soft clipper, working on log2 levels scaled by clipperAmp.
const (
	clipperAmp       = 8.6562
	clipperLimit     = -6.9
	clipperThreshold = -9.0 + clipperLimit
	clipperLinear    = 1.017
	clipperSquared   = -0.025
	clipperFloor     = -1000.0
)

// Echo is a bucket-brigade style mono delay. The loop carries a DC
// high-pass, a one-pole tone filter and a soft clipper so feedback above
// unity saturates instead of running away.
type Echo struct {
	line     *Line
	capacity float64 // samples addressable by the time control

	// Time
	timeSetting     float64
	timeSyncSetting float64
	tempoSync       bool
	tempo           float64 // beats per second
	targetSamples   float64
	loopPos         float64

	// Loop
	feedback float64
	filtA    float64
	filtB    float64
	filtY1   float64
	hpGain   float64
	hpState  float64

	// Modulation of the read position.
	lfoAmountSet float64
	lfoPhaseInc  float64
	lfoPhase     float64

	gain       float64
	gainSmooth float64
	mix        float64
}

// NewEcho creates an echo with MaxSeconds of memory.
func NewEcho(sampleRate float64) *Echo {
	size := int(MaxSeconds * sampleRate)
	e := &Echo{
		line:          NewLine(size + 1),
		capacity:      float64(size),
		tempo:         1.0,
		targetSamples: 1.0,
		feedback:      defaultFeedback,
		hpGain:        dcCutoffHz / (dsp.TwoPi * sampleRate),
		mix:           1.0,
	}
	e.SetTone(defaultTone)
	return e
}

// SetTime sets the free-running delay time from a normalized control.
func (e *Echo) SetTime(v float64) {
	e.timeSetting = v
}

// SetTimeSync sets the tempo-synced division from a normalized control.
func (e *Echo) SetTimeSync(v float64) {
	e.timeSyncSetting = v
}

// SetTempoSync switches between free-running and tempo-synced time.
func (e *Echo) SetTempoSync(on bool) {
	e.tempoSync = on
}

// SetTempo sets the host tempo in beats per second. Non-positive tempos are ignored.
func (e *Echo) SetTempo(beatsPerSecond float64) {
	if beatsPerSecond > 0 {
		e.tempo = beatsPerSecond
	}
}

// SetFeedback sets the loop gain. The top of the control runs slightly above unity.
func (e *Echo) SetFeedback(v float64) {
	e.feedback = feedbackScale * v
}

// Feedback returns the loop gain.
func (e *Echo) Feedback() float64 {
	return e.feedback
}

// SetTone sets the loop low-pass cutoff, 32 Hz to 16 kHz on an octave scale.
func (e *Echo) SetTone(v float64) {
	cutoff := utility.ScaleParameterExp(v, toneMinHz, toneMaxHz)
	e.filtA = dsp.OnePoleCoeff(cutoff, dsp.SampleRate)
	e.filtB = 1 - e.filtA
}

// SetLevel sets the input gain on a squared taper.
func (e *Echo) SetLevel(v float64) {
	e.gain = maxInputGain * utility.SquareTaper(v)
}

// SetMix sets the share of echo in the output.
func (e *Echo) SetMix(v float64) {
	e.mix = v
}

// Mix returns the echo share.
func (e *Echo) Mix() float64 {
	return e.mix
}

// SetLFO sets the read-position wobble. Rate is normalized, amount scales the excursion.
func (e *Echo) SetLFO(rate, amount float64) {
	e.lfoAmountSet = amount
	e.lfoPhaseInc = lfoRateScale * math.Pow(2, 3.4*(3*rate-2)) / dsp.SampleRate
}

// DelaySamples returns the delay the loop is heading towards.
func (e *Echo) DelaySamples() float64 {
	return e.targetSamples
}

// Reset clears the memory and every filter state.
func (e *Echo) Reset() {
	e.line.Reset()
	e.filtY1 = 0
	e.hpState = 0
	e.lfoPhase = 0
}

// Run processes one block. The output is the input blended with the echo
// by the mix amount. Input and output may alias.
func (e *Echo) Run(in, out *dsp.Block) {
	e.updateTime()

	lfoAmount := lfoAmountScale * e.lfoAmountSet * (0.2 + 0.2*e.timeSetting)
	pos := e.loopPos
	e.loopPos += loopSmoothing * (e.targetSamples - e.loopPos - lfoAmount*math.Sin(e.lfoPhase))
	step := (e.loopPos - pos) / dsp.BlockSize

	e.gainSmooth = dsp.ParamSmooth(e.gain, e.gainSmooth)
	e.lfoPhase += e.lfoPhaseInc
	if e.lfoPhase > dsp.TwoPi {
		e.lfoPhase -= dsp.TwoPi
	}

	for i := 0; i < dsp.BlockSize; i++ {
		x := in[i]
		pos += step

		echo := e.line.Read(pos)

		// DC block the loop so feedback above unity cannot accumulate offset
		tmp := x*e.gainSmooth + e.feedback*echo
		tmp -= e.hpState
		e.hpState += e.hpGain * tmp

		e.filtY1 = e.filtA*tmp + e.filtB*e.filtY1
		e.line.Write(softClip(e.filtY1))

		out[i] = mix.DryWet(x, echo, e.mix)
	}
}

func (e *Echo) updateTime() {
	if e.tempoSync {
		samples := 1.0 / (e.tempo * SyncMultiplier(SyncStep(e.timeSyncSetting))) * dsp.SampleRate
		e.targetSamples = utility.ClampParameter(samples, 1, e.capacity*timeRange)
		return
	}
	t := timeOffset + (1-timeOffset)*e.timeSetting
	e.targetSamples = t * t * e.capacity * timeRange
}

func softClip(x float64) float64 {
	if x == 0 {
		return 0
	}
	level := clipperAmp * dsp.FastLog2(math.Abs(x), clipperFloor)
	if level > clipperThreshold {
		over := level - clipperThreshold
		over = clipperLinear*over + clipperSquared*over*over
		level = math.Min(clipperThreshold+over, clipperLimit)
	}
	return math.Copysign(dsp.FastPow2(level/clipperAmp), x)
}
