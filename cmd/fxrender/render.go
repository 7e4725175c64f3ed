package main

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/gain"
	"github.com/justyntemme/fxroute/pkg/dsp/oscillator"
	"github.com/justyntemme/fxroute/pkg/dsp/pan"
	"github.com/justyntemme/fxroute/pkg/dsp/utility"
	"github.com/justyntemme/fxroute/pkg/framework/debug"
	"github.com/justyntemme/fxroute/pkg/framework/param"
	"github.com/justyntemme/fxroute/pkg/framework/process"
	"github.com/justyntemme/fxroute/pkg/fxengine"
	"gitlab.com/gomidi/midi/v2"
)

// Noise test signals next to the oscillator shapes.
const (
	toneNoise = "noise"
	tonePink  = "pink"
)

// change is a parameter change applied at the start of a block. When msg
// is set the change comes from a MIDI message instead of id and value.
type change struct {
	block int
	id    uint32
	value float64 // normalized
	msg   midi.Message
}

// parseSetting parses name=value. The value is in display units, so
// "Reverb Slot=Slot 3" and "delay level=40" both work.
func parseSetting(r *param.Registry, s string) (uint32, float64, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("%q: want name=value", s)
	}
	p, found := r.Lookup(strings.TrimSpace(name))
	if !found {
		return 0, 0, fmt.Errorf("%q: unknown parameter", name)
	}
	v, err := p.ParseValue(strings.TrimSpace(value))
	if err != nil {
		return 0, 0, err
	}
	return p.ID, v, nil
}

// parseMIDI parses block:bytes, where bytes is a hex encoded message such
// as "E0 00 40" or "b00140".
func parseMIDI(s string) (change, error) {
	at, raw, ok := strings.Cut(s, ":")
	if !ok {
		return change{}, fmt.Errorf("--midi %q: want block:bytes", s)
	}
	block, err := strconv.Atoi(strings.TrimSpace(at))
	if err != nil || block < 0 {
		return change{}, fmt.Errorf("--midi %q: invalid block", s)
	}
	b, err := hex.DecodeString(strings.ReplaceAll(raw, " ", ""))
	if err != nil || len(b) == 0 {
		return change{}, fmt.Errorf("--midi %q: invalid message bytes", s)
	}
	return change{block: block, msg: midi.Message(b)}, nil
}

// parseChanges turns the --set, --at and --midi flags into a block ordered
// list.
func parseChanges(r *param.Registry, sets, ats, msgs []string) ([]change, error) {
	out := make([]change, 0, len(sets)+len(ats)+len(msgs))
	for _, s := range sets {
		id, v, err := parseSetting(r, s)
		if err != nil {
			return nil, fmt.Errorf("--set %w", err)
		}
		out = append(out, change{block: 0, id: id, value: v})
	}
	for _, s := range ats {
		at, setting, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("--at %q: want block:name=value", s)
		}
		block, err := strconv.Atoi(strings.TrimSpace(at))
		if err != nil || block < 0 {
			return nil, fmt.Errorf("--at %q: invalid block", s)
		}
		id, v, err := parseSetting(r, setting)
		if err != nil {
			return nil, fmt.Errorf("--at %w", err)
		}
		out = append(out, change{block: block, id: id, value: v})
	}
	for _, s := range msgs {
		c, err := parseMIDI(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].block < out[j].block })
	return out, nil
}

// toneSpec describes a generated test signal.
type toneSpec struct {
	kind    string
	freq    float64
	amp     float64
	pan     float64
	seconds float64
}

// blockSource fills one mono block.
type blockSource interface {
	Fill(b *dsp.Block)
}

// generateTone renders a panned test signal of whole blocks.
func generateTone(spec toneSpec) (*stereo, error) {
	var src blockSource
	switch spec.kind {
	case toneNoise:
		src = utility.NewNoiseGenerator(utility.WhiteNoise, 1, spec.amp)
	case tonePink:
		src = utility.NewNoiseGenerator(utility.PinkNoise, 1, spec.amp)
	default:
		shape, err := oscillator.ParseShape(spec.kind)
		if err != nil {
			return nil, err
		}
		o := oscillator.New(dsp.SampleRate)
		o.SetShape(shape)
		o.SetFrequency(spec.freq)
		o.SetGain(spec.amp)
		src = o
	}

	blocks := int(spec.seconds * dsp.BlockRate)
	s := newStereo(blocks * dsp.BlockSize)
	var mono, l, r dsp.Block
	for n := 0; n < blocks; n++ {
		src.Fill(&mono)
		pan.Spread(&mono, spec.pan, pan.ConstantPower, &l, &r)
		off := n * dsp.BlockSize
		for i := 0; i < dsp.BlockSize; i++ {
			s.l[off+i] = float32(l[i])
			s.r[off+i] = float32(r[i])
		}
	}
	return s, nil
}

// renderResult is the processed signal plus its statistics.
type renderResult struct {
	out    *stereo
	blocks int
	stats  debug.AnalysisResult
}

// render runs in through eng block by block. The final partial block is
// zero padded and the output is trimmed back to the input length plus tail.
func render(eng *fxengine.Engine, in *stereo, tailFrames int, tempo float64, changes []change, prof *debug.AudioProcessProfiler) renderResult {
	total := in.frames() + tailFrames
	blocks := (total + dsp.BlockSize - 1) / dsp.BlockSize
	out := newStereo(total)

	ctx := process.NewContext(dsp.Stereo, dsp.BlockSize, dsp.SampleRate)
	list := process.NewChangeList(int(fxengine.NumParams)+2, 4)
	ctx.Tempo = tempo
	analyzer := debug.NewAudioAnalyzer()

	mapping := eng.MIDIMapping()
	next := 0
	for n := 0; n < blocks; n++ {
		list.Reset()
		for next < len(changes) && changes[next].block <= n {
			c := changes[next]
			if c.msg != nil {
				mapping.Feed(list, 0, c.msg)
			} else {
				list.Add(c.id, 0, c.value)
			}
			next++
		}
		ctx.Changes = list

		off := n * dsp.BlockSize
		for i := 0; i < dsp.BlockSize; i++ {
			var l, r float32
			if off+i < in.frames() {
				l, r = in.l[off+i], in.r[off+i]
			}
			ctx.Input[0][i] = l
			ctx.Input[1][i] = r
		}

		stop := prof.Start(debug.ProcessSection)
		eng.ProcessAudio(ctx)
		stop()

		for ch := range ctx.Output {
			gain.HardClipBuffer(ctx.Output[ch], 1.0)
			analyzer.Accumulate(ctx.Output[ch])
		}
		m := min(dsp.BlockSize, total-off)
		copy(out.l[off:off+m], ctx.Output[0][:m])
		copy(out.r[off:off+m], ctx.Output[1][:m])
	}
	prof.UpdateCPULoad()

	return renderResult{out: out, blocks: blocks, stats: analyzer.Total()}
}
