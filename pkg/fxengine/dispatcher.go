package fxengine

import (
	"github.com/justyntemme/fxroute/pkg/framework/param"
	"github.com/justyntemme/fxroute/pkg/framework/process"
)

// TempoSyncThreshold is the control value above which the delays follow
// the host tempo.
const TempoSyncThreshold = 0.25

// legacyCascade is the order in which the legacy dispatcher re-applies
// routing parameters after one of them changes.
var legacyCascade = [...]uint32{
	ParamDelaySlot,
	ParamChorusSlot,
	ParamReverbSlot,
	ParamDelayLevel,
	ParamReverbLevel,
	ParamDelayFeedback,
}

// changeSet collects the parameters touched in one block, in arrival
// order and at most once each.
type changeSet struct {
	ids  [NumParams]uint32
	seen [NumParams]bool
	n    int
}

func (c *changeSet) add(id uint32) {
	if c.seen[id] {
		return
	}
	c.seen[id] = true
	c.ids[c.n] = id
	c.n++
}

func (c *changeSet) clear() {
	for i := 0; i < c.n; i++ {
		c.seen[c.ids[i]] = false
	}
	c.n = 0
}

// Len returns the number of changed parameters.
func (c *changeSet) Len() int {
	return c.n
}

// At returns the i-th changed parameter.
func (c *changeSet) At(i int) uint32 {
	return c.ids[i]
}

// collect drains the host change list into the table. Only the last point
// of each queue is kept. IDs outside the table and empty queues are
// skipped.
func collect(changes process.ParameterChanges, table *param.Table, set *changeSet) {
	set.clear()
	if changes == nil {
		return
	}
	count := changes.ParameterCount()
	for i := int32(0); i < count; i++ {
		queue := changes.ParameterData(i)
		if queue == nil {
			continue
		}
		id := MaskParamID(queue.ParameterID())
		if id >= NumParams {
			continue
		}
		points := queue.PointCount()
		if points <= 0 {
			continue
		}
		_, value, ok := queue.Point(points - 1)
		if !ok {
			continue
		}
		table.Set(id, clamp01(value))
		set.add(id)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// dispatch applies every parameter in the change set, in arrival order.
func (e *Engine) dispatch() {
	for i := 0; i < e.changed.Len(); i++ {
		id := e.changed.At(i)
		if e.printing {
			e.log.Debug("param %s = %.4f", ParamName(e.Parameters(), id), e.table.Get(id))
		}
		e.apply(id)
	}
}

// apply pushes the table value of id into the engine.
func (e *Engine) apply(id uint32) {
	v := e.table.Get(id)
	switch id {
	case ParamVolume:
		e.limiter.SetVolume(v)

	case ParamReverbPreset:
		e.reverb.SetPreset(v)
		e.duck.arm()
	case ParamReverbDecay:
		e.reverb.SetDecay(v)
		e.duck.arm()
	case ParamReverbPreDelay:
		e.reverb.SetPreDelay(v)
		e.duck.arm()
	case ParamReverbTone:
		e.reverb.SetTone(v)
	case ParamReverbShimmer:
		e.reverb.SetShimmer(v)
	case ParamReverbEarlyMix:
		e.reverb.SetEarlyMix(v)

	case ParamTempoSync:
		e.delay.SetTempoSync(v > TempoSyncThreshold)
	case ParamDelayTime:
		e.delay.SetTime(v)
	case ParamDelayTimeSync:
		e.delay.SetTimeSync(v)
	case ParamDelayTone:
		e.delay.SetTone(v)

	case ParamChorusMode:
		e.modulation.SetEnables(DecodeChorusMode(v).Enables())
	case ParamChorusLevel:
		e.router.setLevel(stageModulation, v)

	case ParamChorusSlot, ParamDelaySlot, ParamReverbSlot,
		ParamDelayLevel, ParamReverbLevel, ParamDelayFeedback:
		if e.cfg.Dispatch == DispatchLegacyCascade {
			e.cascade(id)
			return
		}
		e.applyRouting(id)

	case ParamPrint:
		e.printing = v > 0.5
	}
}

// routeStage moves a stage to slot and, in print mode, reports the move.
func (e *Engine) routeStage(stage, slot int) {
	e.router.setSlot(stage, slot)
	if e.printing {
		e.log.Debug("%s -> slot %d", e.router.kind(stage), slot+1)
	}
}

// cascade applies id and every routing parameter after it in legacyCascade.
func (e *Engine) cascade(id uint32) {
	for i, next := range legacyCascade {
		if next != id {
			continue
		}
		for _, follow := range legacyCascade[i:] {
			e.applyRouting(follow)
		}
		return
	}
}

func (e *Engine) applyRouting(id uint32) {
	v := e.table.Get(id)
	switch id {
	case ParamChorusSlot:
		e.routeStage(stageModulation, SlotFromValue(v))
	case ParamDelaySlot:
		e.routeStage(stageDelay, SlotFromValue(v))
	case ParamReverbSlot:
		e.routeStage(stageReverb, SlotFromValue(v))
	case ParamDelayLevel:
		e.delay.SetMix(v)
		e.router.setLevel(stageDelay, v)
	case ParamReverbLevel:
		e.reverb.SetWetDry(v)
		e.router.setLevel(stageReverb, v)
	case ParamDelayFeedback:
		e.delay.SetFeedback(v)
	}
}
