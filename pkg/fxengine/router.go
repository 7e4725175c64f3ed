package fxengine

import (
	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/dynamics"
	"github.com/justyntemme/fxroute/pkg/dsp/mix"
	"github.com/justyntemme/fxroute/pkg/framework/param"
)

// Routed stages in execution order. When several share a row the later
// one overwrites the earlier, so reverb wins over delay over modulation.
const (
	stageModulation = iota
	stageDelay
	stageReverb
	numStages
)

const numRows = dsp.FXSlots + 1

// DryLevel returns the unsmoothed dry share of a row. The final row gets
// no dry signal when the row before it held no effect.
func DryLevel(levelSum float64, final, prevHadEffect bool) float64 {
	if final && !prevHadEffect {
		return 0
	}
	return mix.Complement(levelSum)
}

// SlotFromValue rounds a normalized slot control to a row index.
func SlotFromValue(v float64) int {
	slot := int(v*dsp.FXSlots + 0.5)
	if slot < 0 {
		return 0
	}
	if slot > dsp.FXSlots {
		return dsp.FXSlots
	}
	return slot
}

type stereoBlock struct {
	l, r dsp.Block
}

type routedStage struct {
	kind  dsp.ProcessorType
	stage Stage
	slot  int
	level *param.Smoother

	// Optional per-stage hooks.
	volume interface{ SetVolume(float64) }
	pre    *dynamics.Limiter
}

// slotRouter runs the stages row by row. Each row starts as the smoothed
// dry share of the chain input, assigned stages overwrite it, and the row
// becomes the chain input of the next one.
type slotRouter struct {
	stages [numStages]routedStage
	dry    [numRows]float64
	bufs   [2]stereoBlock
}

func newSlotRouter(m Modulation, d Delay, r Reverb, preReverb *dynamics.Limiter) *slotRouter {
	sr := &slotRouter{}
	sr.stages[stageModulation] = routedStage{
		kind:   dsp.ProcessorTypeModulation,
		stage:  m,
		slot:   DefaultChorusSlot,
		volume: m,
	}
	sr.stages[stageDelay] = routedStage{
		kind:  dsp.ProcessorTypeDelay,
		stage: d,
		slot:  DefaultDelaySlot,
	}
	sr.stages[stageReverb] = routedStage{
		kind:  dsp.ProcessorTypeReverb,
		stage: r,
		slot:  DefaultReverbSlot,
		pre:   preReverb,
	}
	for i := range sr.stages {
		sr.stages[i].level = param.NewSmoother(param.BlockSmoothing, 0)
	}
	sr.reset()
	return sr
}

func (r *slotRouter) setSlot(stage, slot int) {
	r.stages[stage].slot = slot
}

func (r *slotRouter) slot(stage int) int {
	return r.stages[stage].slot
}

func (r *slotRouter) kind(stage int) dsp.ProcessorType {
	return r.stages[stage].kind
}

func (r *slotRouter) setLevel(stage int, level float64) {
	r.stages[stage].level.SetTarget(level)
}

func (r *slotRouter) level(stage int) float64 {
	return r.stages[stage].level.Value()
}

func (r *slotRouter) lastSlot() int {
	last := 0
	for i := range r.stages {
		if r.stages[i].slot > last {
			last = r.stages[i].slot
		}
	}
	return last
}

// rowLevel sums the levels of the stages assigned to row.
func (r *slotRouter) rowLevel(row int) (sum float64, assigned bool) {
	for i := range r.stages {
		if r.stages[i].slot == row {
			sum += r.stages[i].level.Value()
			assigned = true
		}
	}
	return sum, assigned
}

// process routes one block. in is consumed as the first chain input and
// may be modified. The returned blocks hold the chain output and stay
// valid until the next call.
func (r *slotRouter) process(inL, inR *dsp.Block) (outL, outR *dsp.Block) {
	for i := range r.stages {
		r.stages[i].level.Next()
	}

	chain, row := &r.bufs[0], &r.bufs[1]
	chain.l.CopyFrom(inL)
	chain.r.CopyFrom(inR)

	last := r.lastSlot()
	prev := false
	for n := 0; n <= last; n++ {
		sum, assigned := r.rowLevel(n)
		r.dry[n] = dsp.ParamSmooth(DryLevel(sum, n == last, prev), r.dry[n])
		prev = assigned

		dsp.ScaleTo(&row.l, &chain.l, r.dry[n])
		dsp.ScaleTo(&row.r, &chain.r, r.dry[n])

		for i := range r.stages {
			s := &r.stages[i]
			if s.slot != n {
				continue
			}
			if s.volume != nil {
				s.volume.SetVolume(s.level.Value())
			}
			if s.pre != nil {
				s.pre.Run(&chain.l, &chain.r, &chain.l, &chain.r)
			}
			s.stage.ProcessBlock(&chain.l, &chain.r, &row.l, &row.r)
		}
		chain, row = row, chain
	}
	return &chain.l, &chain.r
}

func (r *slotRouter) reset() {
	for i := range r.dry {
		r.dry[i] = 1
	}
	for i := range r.bufs {
		r.bufs[i] = stereoBlock{}
	}
}

// snapLevels jumps every level ramp to its target.
func (r *slotRouter) snapLevels() {
	for i := range r.stages {
		r.stages[i].level.Reset(r.stages[i].level.Target())
	}
}
