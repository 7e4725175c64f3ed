// Package fxengine routes a stereo signal through the modulation, delay and
// reverb stages in an operator-selected order, guarded by peak limiters, a
// noise expander and an output duck for disruptive parameter changes.
package fxengine

import (
	"errors"
	"fmt"

	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/delay"
	"github.com/justyntemme/fxroute/pkg/dsp/dynamics"
	"github.com/justyntemme/fxroute/pkg/dsp/modulation"
	"github.com/justyntemme/fxroute/pkg/dsp/reverb"
	"github.com/justyntemme/fxroute/pkg/dsp/utility"
	"github.com/justyntemme/fxroute/pkg/framework/bus"
	"github.com/justyntemme/fxroute/pkg/framework/chain"
	"github.com/justyntemme/fxroute/pkg/framework/debug"
	"github.com/justyntemme/fxroute/pkg/framework/param"
	"github.com/justyntemme/fxroute/pkg/framework/plugin"
	"github.com/justyntemme/fxroute/pkg/framework/process"
	"github.com/justyntemme/fxroute/pkg/midi"
	"github.com/justyntemme/fxroute/pkg/monitor"
)

var (
	// ErrUnsupportedSampleRate is returned by SetupProcessing for any rate
	// other than dsp.SampleRate.
	ErrUnsupportedSampleRate = errors.New("unsupported sample rate")
	// ErrUnsupportedBlockSize is returned by SetupProcessing for any block
	// length other than dsp.BlockSize.
	ErrUnsupportedBlockSize = errors.New("unsupported block size")
	// ErrUnknownDispatchMode is returned by New for an invalid Config.Dispatch.
	ErrUnknownDispatchMode = errors.New("unknown dispatch mode")
)

// ReverbInputGain is the send level into the built-in reverb.
const ReverbInputGain = 0.9

// PluginInfo returns the identity of the engine component.
func PluginInfo() plugin.Info {
	return plugin.Info{
		ID:       "com.fxroute.effects",
		Name:     "FX Route",
		Version:  "1.0.0",
		Vendor:   "fxroute",
		Category: "Fx",
	}
}

// Engine is the block processor. All methods except the accessors must be
// called from the audio thread, or with the audio thread stopped.
type Engine struct {
	*plugin.Base

	cfg     Config
	log     *debug.Logger
	table   *param.Table
	changed changeSet
	mapping midi.Mapping

	// Protective stages
	limiter   *dynamics.Limiter
	expander  *dynamics.Expander
	preReverb *dynamics.Limiter
	output    *dynamics.Limiter
	front     *chain.Chain

	modulation Modulation
	delay      Delay
	reverb     Reverb
	router     *slotRouter
	duck       duck

	monitor monitor.Sender
	frame   monitor.Message

	// Working buffers
	inL, inR   dsp.Block
	outL, outR dsp.Block

	printing bool
	active   bool

	blocks uint64
	ducked uint64
	drops  uint64
}

// New creates an engine with every parameter at its default.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("fxengine: %w", err)
	}

	e := &Engine{
		Base:    plugin.NewBase(PluginInfo(), bus.NewEffectsConfiguration()),
		cfg:     cfg,
		log:     cfg.Logger,
		table:   param.NewTable(int(NumParams)),
		mapping: midi.NewMapping(ParamPitchBend, ParamModWheel),
		monitor: cfg.Monitor,
	}
	if e.log == nil {
		e.log = debug.Discard()
	}
	if err := RegisterParameters(e.Parameters()); err != nil {
		return nil, fmt.Errorf("fxengine: %w", err)
	}
	e.table.LoadDefaults(e.Parameters())

	e.limiter = dynamics.NewLimiter(dsp.SampleRate)
	e.expander = dynamics.NewExpander(dsp.SampleRate)
	e.preReverb = dynamics.NewLimiter(dsp.SampleRate)
	e.output = dynamics.NewOutputLimiter(dsp.SampleRate)

	front, err := chain.NewProtectionChain(
		utility.NewDCServo(dsp.ServoCutoff, dsp.SampleRate),
		e.limiter,
		e.expander,
	)
	if err != nil {
		return nil, fmt.Errorf("fxengine: %w", err)
	}
	e.front = front

	e.modulation = cfg.Modulation
	if e.modulation == nil {
		c := modulation.NewChorusEngine(dsp.SampleRate)
		c.SetRates(modulation.DefaultRateI, modulation.DefaultRateII)
		e.modulation = c
	}
	e.delay = cfg.Delay
	if e.delay == nil {
		e.delay = delay.NewStereo(dsp.SampleRate)
	}
	e.reverb = cfg.Reverb
	if e.reverb == nil {
		r := reverb.NewReverb(dsp.SampleRate)
		r.SetInputGain(ReverbInputGain)
		e.reverb = r
	}
	e.router = newSlotRouter(e.modulation, e.delay, e.reverb, e.preReverb)

	for id := uint32(0); id < NumParams; id++ {
		e.apply(id)
	}
	e.router.snapLevels()
	e.duck.reset()
	if cfg.DuckOnStart {
		e.duck.arm()
	}
	return e, nil
}

// SetupProcessing checks the host processing setup. Only the fixed rate and
// block length are accepted.
func (e *Engine) SetupProcessing(sampleRate float64, maxBlockSize int32) error {
	if sampleRate != dsp.SampleRate {
		e.log.Warn("setup rejected: sample rate %g", sampleRate)
		return fmt.Errorf("fxengine: %w: %g Hz", ErrUnsupportedSampleRate, sampleRate)
	}
	if maxBlockSize != dsp.BlockSize {
		e.log.Warn("setup rejected: block size %d", maxBlockSize)
		return fmt.Errorf("fxengine: %w: %d", ErrUnsupportedBlockSize, maxBlockSize)
	}
	e.log.Info("setup: %g Hz, %d samples", sampleRate, maxBlockSize)
	return nil
}

// SetBusArrangements accepts exactly one stereo pair of mono ports in
// each direction.
func (e *Engine) SetBusArrangements(inputs, outputs []bus.SpeakerArrangement) error {
	if err := bus.ValidateArrangement(inputs, outputs); err != nil {
		e.log.Warn("arrangement rejected: %v", err)
		return fmt.Errorf("fxengine: %w", err)
	}
	return nil
}

// CanProcessSampleSize accepts 32-bit float processing only.
func (e *Engine) CanProcessSampleSize(symbolicSampleSize int32) error {
	if err := bus.ValidateSampleSize(symbolicSampleSize); err != nil {
		return fmt.Errorf("fxengine: %w", err)
	}
	return nil
}

// SetActive starts or stops processing. Activation clears the memory of
// every stage, limiter and router row and, when configured, starts with a
// duck.
func (e *Engine) SetActive(active bool) error {
	if active == e.active {
		return nil
	}
	e.active = active
	if !active {
		e.log.Info("deactivated after %d blocks", e.blocks)
		return nil
	}

	e.front.Reset()
	e.modulation.Reset()
	e.delay.Reset()
	e.reverb.Reset()
	e.preReverb.Reset()
	e.output.Reset()
	e.router.reset()
	e.duck.reset()
	if e.cfg.DuckOnStart {
		e.duck.arm()
	}
	e.log.Info("activated (%s dispatch)", e.cfg.Dispatch)
	return nil
}

// ControllerAssignment maps a MIDI controller to a parameter ID.
func (e *Engine) ControllerAssignment(busIndex int32, channel, controller int16) (uint32, bool) {
	return e.mapping.ControllerAssignment(busIndex, channel, controller)
}

// MIDIMapping returns the controller mapping.
func (e *Engine) MIDIMapping() midi.Mapping {
	return e.mapping
}

// ProcessAudio processes one block. Contexts that are not exactly one
// stereo block get silent outputs.
func (e *Engine) ProcessAudio(ctx *process.Context) {
	if ctx == nil {
		return
	}
	if !validShape(ctx) {
		ctx.Clear()
		return
	}
	e.blocks++

	collect(ctx.Changes, e.table, &e.changed)
	e.dispatch()
	if ctx.Tempo > 0 {
		e.delay.SetTempo(ctx.Tempo / 60)
	}

	if ducking, first := e.duck.step(); ducking {
		if first {
			e.reverb.HardMute()
		}
		e.limiter.DropVolume()
		ctx.ClearInput()
		ctx.Clear()
		e.outL.Clear()
		e.outR.Clear()
		e.ducked++
		e.post()
		return
	}

	e.inL.Load(ctx.Input[0])
	e.inR.Load(ctx.Input[1])
	e.front.Process(&e.inL, &e.inR)

	chainL, chainR := e.router.process(&e.inL, &e.inR)
	e.output.Run(chainL, chainR, &e.outL, &e.outR)

	e.outL.Store(ctx.Output[0])
	e.outR.Store(ctx.Output[1])
	e.post()
}

// post offers the output block to the monitor. A refused message is
// counted and dropped.
func (e *Engine) post() {
	if e.monitor == nil {
		return
	}
	dsp.Interleave(e.frame.Samples[:], &e.outL, &e.outR)
	if e.monitor.TrySend(&e.frame) {
		return
	}
	e.drops++
	if e.drops == 1 {
		e.log.Warn("monitor: first frame dropped")
	}
}

func validShape(ctx *process.Context) bool {
	if len(ctx.Input) != dsp.Stereo || len(ctx.Output) != dsp.Stereo {
		return false
	}
	for ch := 0; ch < dsp.Stereo; ch++ {
		if len(ctx.Input[ch]) != dsp.BlockSize || len(ctx.Output[ch]) != dsp.BlockSize {
			return false
		}
	}
	return true
}

// Value returns the table value of a parameter.
func (e *Engine) Value(id uint32) float64 {
	return e.table.Get(id)
}

// Slots returns the current row of each stage.
func (e *Engine) Slots() (mod, dly, rev int) {
	return e.router.slot(stageModulation), e.router.slot(stageDelay), e.router.slot(stageReverb)
}

// Ducking reports whether the output is currently held silent.
func (e *Engine) Ducking() bool {
	return e.duck.active
}

// Printing reports whether applied changes are logged.
func (e *Engine) Printing() bool {
	return e.printing
}

// Blocks returns the number of blocks processed.
func (e *Engine) Blocks() uint64 {
	return e.blocks
}

// DuckedBlocks returns the number of blocks silenced by the duck.
func (e *Engine) DuckedBlocks() uint64 {
	return e.ducked
}

// MonitorDrops returns the number of monitor frames that were refused.
func (e *Engine) MonitorDrops() uint64 {
	return e.drops
}

// Dispatch returns the configured dispatch mode.
func (e *Engine) Dispatch() DispatchMode {
	return e.cfg.Dispatch
}
