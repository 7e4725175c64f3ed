package reverb

import (
	"math"

	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/delay"
	"github.com/justyntemme/fxroute/pkg/dsp/filter"
	"github.com/justyntemme/fxroute/pkg/dsp/utility"
)

// NumPresets is the number of selectable reverb characters.
const NumPresets = 4

// Freeverb tuning constants (scaled for 44.1kHz).
const (
	numCombs     = 8
	numAllpasses = 4
	fixedGain    = 0.015
	wetScale     = 3.0
	stereoSpread = 23
	tuningRate   = 44100.0
)

// Control ranges
const (
	MaxPreDelayMs = 600.0
	minDecay      = 0.2
	decayRange    = 10.0
	shimmerScale  = 0.25
	earlyScale    = 0.75
	sideCutoffHz  = 400.0
	shiftWindow   = 0.081 // seconds
	defaultDecay  = 0.5
	defaultTone   = 0.5
	defaultEarly  = 0.5
)

// Comb filter tuning values (in samples at 44.1kHz).
var combTuning = [numCombs]int{
	1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617,
}

// Allpass filter tuning values (in samples at 44.1kHz).
var allpassTuning = [numAllpasses]int{
	556, 441, 341, 225,
}

const numEarlyTaps = 8

// Early reflection taps after the pre-delay, in milliseconds and gain.
// The right channel uses slightly longer paths.
var earlyTapMs = [numEarlyTaps]float64{4.3, 9.1, 14.7, 21.5, 28.9, 37.3, 46.1, 55.7}
var earlyTapGain = [numEarlyTaps]float64{0.84, 0.71, 0.62, 0.53, 0.45, 0.38, 0.32, 0.27}

const earlyRightStretch = 1.1

// Preset describes one reverb character.
type Preset struct {
	Name      string
	Size      float64 // scale applied to the comb and allpass lengths
	Damping   float64
	InHighCut float64 // Hz
	InLowCut  float64 // Hz
	Width     float64
	EarlySend float64 // early reflections fed into the tail
}

var presets = [NumPresets]Preset{
	{Name: "room", Size: 0.55, Damping: 0.5, InHighCut: 10000, InLowCut: 150, Width: 0.8, EarlySend: 1.0},
	{Name: "plate", Size: 0.8, Damping: 0.2, InHighCut: 4000, InLowCut: 150, Width: 0.8, EarlySend: 0.4},
	{Name: "hall", Size: 1.1, Damping: 0.3, InHighCut: 4000, InLowCut: 50, Width: 1.0, EarlySend: 0.4},
	{Name: "cathedral", Size: 1.5, Damping: 0.25, InHighCut: 4000, InLowCut: 20, Width: 1.0, EarlySend: 0.4},
}

const maxPresetSize = 1.5

// Presets returns the available reverb characters in selection order.
func Presets() [NumPresets]Preset {
	return presets
}

// Reverb is a Freeverb style stereo reverb with input tone filters,
// pre-delay, early reflections and an octave-up shimmer fed back into the tail.
// The output blends the input with the reverb by the wet/dry amount.
type Reverb struct {
	sampleRate float64

	combL [numCombs]*CombFilter
	combR [numCombs]*CombFilter
	apL   [numAllpasses]*AllPassFilter
	apR   [numAllpasses]*AllPassFilter

	inHP *filter.Biquad
	inLP *filter.Biquad

	preL *delay.Line
	preR *delay.Line

	earlyL [numEarlyTaps]float64 // samples
	earlyR [numEarlyTaps]float64

	shifter *octaveShifter
	shimL   float64
	shimR   float64

	selected int
	preset   Preset

	decaySeconds float64
	tone         float64
	earlyMix     float64
	preDelay     float64 // samples
	shimmer      float64
	inGain       float64
	wetDry       float64
	mixSmooth    float64
	wet1, wet2   float64

	sideCoef  float64
	sideState float64

	hardMute bool
}

// NewReverb creates a reverb on the first preset.
func NewReverb(sampleRate float64) *Reverb {
	r := &Reverb{
		sampleRate: sampleRate,
		inHP:       filter.NewBiquad(dsp.Stereo),
		inLP:       filter.NewBiquad(dsp.Stereo),
		shifter:    newOctaveShifter(int(shiftWindow * sampleRate)),
		inGain:     1.0,
		preDelay:   1.0,
		sideCoef:   dsp.OnePoleCoeff(sideCutoffHz, sampleRate),
	}

	scale := sampleRate / tuningRate * maxPresetSize
	for i := 0; i < numCombs; i++ {
		r.combL[i] = NewCombFilter(int(float64(combTuning[i]) * scale))
		r.combR[i] = NewCombFilter(int(float64(combTuning[i]+stereoSpread) * scale))
	}
	for i := 0; i < numAllpasses; i++ {
		r.apL[i] = NewAllPassFilter(int(float64(allpassTuning[i]) * scale))
		r.apR[i] = NewAllPassFilter(int(float64(allpassTuning[i]+stereoSpread) * scale))
	}

	msToSamples := sampleRate / 1000.0
	for i := 0; i < numEarlyTaps; i++ {
		r.earlyL[i] = earlyTapMs[i] * msToSamples
		r.earlyR[i] = earlyTapMs[i] * earlyRightStretch * msToSamples
	}
	preSamples := int((MaxPreDelayMs+earlyTapMs[numEarlyTaps-1]*earlyRightStretch)*msToSamples) + 2
	r.preL = delay.NewLine(preSamples)
	r.preR = delay.NewLine(preSamples)

	r.decaySeconds = minDecay + decayRange*defaultDecay*defaultDecay
	r.tone = defaultTone
	r.earlyMix = defaultEarly
	r.selected = 0
	r.applyPreset(presets[0])
	return r
}

// SetPreset selects a character from a normalized control. Choosing the
// current preset does nothing; any other choice hard-mutes the reverb.
func (r *Reverb) SetPreset(v float64) {
	sel := utility.SelectIndex(v, NumPresets)
	if sel == r.selected {
		return
	}
	r.selected = sel
	r.hardMute = true
	r.applyPreset(presets[sel])
}

// PresetIndex returns the selected preset.
func (r *Reverb) PresetIndex() int {
	return r.selected
}

// SetDecay sets the tail length, 0.2 s to 10.2 s on a squared taper.
func (r *Reverb) SetDecay(v float64) {
	r.decaySeconds = minDecay + decayRange*utility.SquareTaper(v)
	r.updateFeedback()
}

// DecaySeconds returns the tail length.
func (r *Reverb) DecaySeconds() float64 {
	return r.decaySeconds
}

// SetTone tilts the input filters and the tail damping. Higher is brighter.
func (r *Reverb) SetTone(v float64) {
	r.tone = utility.ClampParameter(v, 0, 1)
	r.updateTone()
}

// SetEarlyMix sets the level of the early reflections.
func (r *Reverb) SetEarlyMix(v float64) {
	r.earlyMix = v
}

// SetPreDelay sets the pre-delay from a normalized control, up to 600 ms.
func (r *Reverb) SetPreDelay(v float64) {
	ms := utility.ScaleParameter(utility.ClampParameter(v, 0, 1), 0, MaxPreDelayMs)
	r.preDelay = math.Max(1, ms*r.sampleRate/1000.0)
}

// PreDelaySamples returns the pre-delay in samples.
func (r *Reverb) PreDelaySamples() float64 {
	return r.preDelay
}

// SetShimmer sets how much of the octave-up tail is fed back.
func (r *Reverb) SetShimmer(v float64) {
	r.shimmer = v * shimmerScale
}

// Shimmer returns the shimmer feedback gain.
func (r *Reverb) Shimmer() float64 {
	return r.shimmer
}

// SetInputGain sets the gain in front of the reverb.
func (r *Reverb) SetInputGain(g float64) {
	r.inGain = g
}

// SetWetDry sets the share of reverb in the output. It is smoothed per block.
func (r *Reverb) SetWetDry(v float64) {
	r.wetDry = v
}

// HardMute clears every line on the next Run.
func (r *Reverb) HardMute() {
	r.hardMute = true
}

// Reset clears every line immediately and drops any pending hard mute.
func (r *Reverb) Reset() {
	r.clear()
	r.hardMute = false
}

// Muting reports whether a hard mute is pending.
func (r *Reverb) Muting() bool {
	return r.hardMute
}

func (r *Reverb) applyPreset(p Preset) {
	r.preset = p
	scale := r.sampleRate / tuningRate * p.Size
	for i := 0; i < numCombs; i++ {
		r.combL[i].SetLength(int(float64(combTuning[i]) * scale))
		r.combR[i].SetLength(int(float64(combTuning[i]+stereoSpread) * scale))
	}
	for i := 0; i < numAllpasses; i++ {
		r.apL[i].SetLength(int(float64(allpassTuning[i]) * scale))
		r.apR[i].SetLength(int(float64(allpassTuning[i]+stereoSpread) * scale))
	}
	r.wet1 = wetScale * (p.Width/2 + 0.5)
	r.wet2 = wetScale * ((1 - p.Width) / 2)
	r.updateFeedback()
	r.updateTone()
}

// updateFeedback sets each comb so it decays by 60 dB over the tail length.
func (r *Reverb) updateFeedback() {
	for i := 0; i < numCombs; i++ {
		r.combL[i].SetFeedback(r.rt60Gain(r.combL[i].Length()))
		r.combR[i].SetFeedback(r.rt60Gain(r.combR[i].Length()))
	}
}

func (r *Reverb) rt60Gain(length int) float64 {
	return math.Pow(10, -3*float64(length)/(r.decaySeconds*r.sampleRate))
}

func (r *Reverb) updateTone() {
	damping := utility.ClampParameter(r.preset.Damping*(1.5-r.tone), 0, 0.9)
	for i := 0; i < numCombs; i++ {
		r.combL[i].SetDamping(damping)
		r.combR[i].SetDamping(damping)
	}
	r.inLP.SetLowpass(r.sampleRate, r.preset.InHighCut*(r.tone+0.5), filter.ButterworthQ)
	r.inHP.SetHighpass(r.sampleRate, r.preset.InLowCut*(1.5-r.tone), filter.ButterworthQ)
}

func (r *Reverb) clear() {
	for i := 0; i < numCombs; i++ {
		r.combL[i].Reset()
		r.combR[i].Reset()
	}
	for i := 0; i < numAllpasses; i++ {
		r.apL[i].Reset()
		r.apR[i].Reset()
	}
	r.inHP.Reset()
	r.inLP.Reset()
	r.preL.Reset()
	r.preR.Reset()
	r.shifter.reset()
	r.shimL, r.shimR = 0, 0
	r.sideState = 0
}

// ProcessBlock processes one stereo block. Input and output may alias.
func (r *Reverb) ProcessBlock(inL, inR, outL, outR *dsp.Block) {
	muted := r.hardMute
	if muted {
		r.clear()
		r.hardMute = false
	}

	r.mixSmooth = dsp.ParamSmooth(r.wetDry, r.mixSmooth)
	mix := r.mixSmooth
	dry := 1 - mix

	if muted {
		dsp.ScaleTo(outL, inL, dry)
		dsp.ScaleTo(outR, inR, dry)
		return
	}

	earlyLevel := r.earlyMix * earlyScale
	for i := 0; i < dsp.BlockSize; i++ {
		xl, xr := inL[i], inR[i]

		r.preL.Write(r.inGain * r.inLP.Tick(r.inHP.Tick(xl, 0), 0))
		r.preR.Write(r.inGain * r.inLP.Tick(r.inHP.Tick(xr, 1), 1))
		pl := r.preL.Read(r.preDelay)
		pr := r.preR.Read(r.preDelay)

		var el, er float64
		for k := 0; k < numEarlyTaps; k++ {
			el += earlyTapGain[k] * r.preL.Read(r.preDelay+r.earlyL[k])
			er += earlyTapGain[k] * r.preR.Read(r.preDelay+r.earlyR[k])
		}

		input := (pl + pr + r.preset.EarlySend*(el+er) + r.shimmer*(r.shimL+r.shimR)) * fixedGain

		var ll, lr float64
		for c := 0; c < numCombs; c++ {
			ll += r.combL[c].Process(input)
			lr += r.combR[c].Process(input)
		}
		for a := 0; a < numAllpasses; a++ {
			ll = r.apL[a].Process(ll)
			lr = r.apR[a].Process(lr)
		}
		r.shimL, r.shimR = r.shifter.process(ll, lr)

		wl := ll*r.wet1 + lr*r.wet2 + earlyLevel*el
		wr := lr*r.wet1 + ll*r.wet2 + earlyLevel*er

		// Keep the low end of the tail centred
		mid := 0.5 * (wl + wr)
		side := 0.5 * (wl - wr)
		r.sideState += r.sideCoef * (side - r.sideState)
		side -= r.sideState

		outL[i] = xl*dry + (mid+side)*mix
		outR[i] = xr*dry + (mid-side)*mix
	}
}
