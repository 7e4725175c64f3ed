package fxengine

import (
	"io"
	"math"
	"testing"

	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/framework/debug"
	"github.com/justyntemme/fxroute/pkg/framework/process"
)

const tolerance = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// fakeStage overwrites the row with a constant and records what it was fed
type fakeStage struct {
	fill   float64
	calls  int
	lastIn float64
	resets int
}

func (f *fakeStage) Reset() { f.resets++ }

func (f *fakeStage) ProcessBlock(inL, inR, outL, outR *dsp.Block) {
	f.calls++
	f.lastIn = inL[0]
	outL.Fill(f.fill)
	outR.Fill(f.fill)
}

type fakeModulation struct {
	fakeStage
	pathI, pathII bool
	volume        float64
	volumeCalls   int
}

func (f *fakeModulation) SetEnables(pathI, pathII bool) {
	f.pathI, f.pathII = pathI, pathII
}

func (f *fakeModulation) SetVolume(level float64) {
	f.volume = level
	f.volumeCalls++
}

type fakeDelay struct {
	fakeStage
	tempoSync     bool
	tempo         float64
	time          float64
	timeSync      float64
	feedback      float64
	tone          float64
	mix           float64
	mixCalls      int
	feedbackCalls int
}

func (f *fakeDelay) SetTime(v float64)     { f.time = v }
func (f *fakeDelay) SetTimeSync(v float64) { f.timeSync = v }
func (f *fakeDelay) SetTempoSync(on bool)  { f.tempoSync = on }
func (f *fakeDelay) SetTempo(bps float64)  { f.tempo = bps }
func (f *fakeDelay) SetTone(v float64)     { f.tone = v }

func (f *fakeDelay) SetFeedback(v float64) {
	f.feedback = v
	f.feedbackCalls++
}

func (f *fakeDelay) SetMix(v float64) {
	f.mix = v
	f.mixCalls++
}

type fakeReverb struct {
	fakeStage
	preset, decay, preDelay float64
	early, tone, shimmer    float64
	wetDry                  float64
	wetDryCalls             int
	hardMutes               int
}

func (f *fakeReverb) SetPreset(v float64)   { f.preset = v }
func (f *fakeReverb) SetDecay(v float64)    { f.decay = v }
func (f *fakeReverb) SetPreDelay(v float64) { f.preDelay = v }
func (f *fakeReverb) SetEarlyMix(v float64) { f.early = v }
func (f *fakeReverb) SetTone(v float64)     { f.tone = v }
func (f *fakeReverb) SetShimmer(v float64)  { f.shimmer = v }
func (f *fakeReverb) HardMute()             { f.hardMutes++ }

func (f *fakeReverb) SetWetDry(v float64) {
	f.wetDry = v
	f.wetDryCalls++
}

type fakes struct {
	mod *fakeModulation
	dly *fakeDelay
	rev *fakeReverb
}

func newFakes() fakes {
	return fakes{
		mod: &fakeModulation{fakeStage: fakeStage{fill: 0.1}},
		dly: &fakeDelay{fakeStage: fakeStage{fill: 0.2}},
		rev: &fakeReverb{fakeStage: fakeStage{fill: 0.3}},
	}
}

// newFakeEngine builds an engine around fake collaborators. The duck is
// off at start unless the caller's config enables it.
func newFakeEngine(t testing.TB, cfg Config) (*Engine, fakes) {
	t.Helper()
	f := newFakes()
	cfg.Modulation = f.mod
	cfg.Delay = f.dly
	cfg.Reverb = f.rev
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, f
}

func newTestLogger(w io.Writer) *debug.Logger {
	l := debug.New(w, "", debug.FlagLevel)
	l.SetLevel(debug.LogLevelDebug)
	return l
}

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.DuckOnStart = false
	return cfg
}

// harness drives an engine one block at a time
type harness struct {
	e       *Engine
	ctx     *process.Context
	changes *process.ChangeList
}

func newHarness(e *Engine) *harness {
	h := &harness{
		e:       e,
		ctx:     process.NewContext(dsp.Stereo, dsp.BlockSize, dsp.SampleRate),
		changes: process.NewChangeList(32, 8),
	}
	h.ctx.Changes = h.changes
	return h
}

// fillInput writes a sine of the given amplitude, continuing the phase
// from block n
func (h *harness) fillInput(n int, amplitude float64) {
	for i := 0; i < dsp.BlockSize; i++ {
		phase := dsp.TwoPi * 440 * float64(n*dsp.BlockSize+i) / dsp.SampleRate
		s := float32(amplitude * math.Sin(phase))
		h.ctx.Input[0][i] = s
		h.ctx.Input[1][i] = s
	}
}

type change struct {
	id    uint32
	value float64
}

// run processes one block carrying the given changes
func (h *harness) run(changes ...change) {
	h.changes.Reset()
	for _, c := range changes {
		h.changes.Add(c.id, 0, c.value)
	}
	h.e.ProcessAudio(h.ctx)
}

func (h *harness) outputSilent() bool {
	for ch := range h.ctx.Output {
		for _, s := range h.ctx.Output[ch] {
			if s != 0 {
				return false
			}
		}
	}
	return true
}

func (h *harness) outputPeak() float64 {
	peak := 0.0
	for ch := range h.ctx.Output {
		for _, s := range h.ctx.Output[ch] {
			peak = math.Max(peak, math.Abs(float64(s)))
		}
	}
	return peak
}
