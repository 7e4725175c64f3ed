package modulation

import (
	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/delay"
	"github.com/justyntemme/fxroute/pkg/dsp/mix"
)

// Default path rates in Hz.
const (
	DefaultRateI  = 0.3
	DefaultRateII = 0.7
)

// Path timing in milliseconds.
const (
	baseDelayI  = 6.0
	depthI      = 1.5
	baseDelayII = 8.0
	depthII     = 2.5
	maxDelayMs  = 20.0
)

type chorusPath struct {
	lfo     *LFO
	enabled bool
	base    float64 // samples
	depth   float64 // samples
}

// ChorusEngine is a two-path stereo chorus. Both paths read the same input
// lines at their own modulated taps; the right channel is modulated in
// opposite phase to the left.
type ChorusEngine struct {
	lineL *delay.Line
	lineR *delay.Line
	paths [2]chorusPath
	level float64
}

// NewChorusEngine creates a chorus with path I enabled.
func NewChorusEngine(sampleRate float64) *ChorusEngine {
	msToSamples := sampleRate / 1000.0
	maxSamples := int(maxDelayMs * msToSamples)

	c := &ChorusEngine{
		lineL: delay.NewLine(maxSamples),
		lineR: delay.NewLine(maxSamples),
	}
	c.paths[0] = chorusPath{
		lfo:     NewLFO(sampleRate),
		enabled: true,
		base:    baseDelayI * msToSamples,
		depth:   depthI * msToSamples,
	}
	c.paths[1] = chorusPath{
		lfo:   NewLFO(sampleRate),
		base:  baseDelayII * msToSamples,
		depth: depthII * msToSamples,
	}
	for i := range c.paths {
		c.paths[i].lfo.SetWaveform(WaveformTriangle)
	}
	c.SetRates(DefaultRateI, DefaultRateII)
	return c
}

// SetEnables turns the two paths on or off.
func (c *ChorusEngine) SetEnables(pathI, pathII bool) {
	c.paths[0].enabled = pathI
	c.paths[1].enabled = pathII
}

// Enables reports which paths are active.
func (c *ChorusEngine) Enables() (pathI, pathII bool) {
	return c.paths[0].enabled, c.paths[1].enabled
}

// SetRates sets the LFO rate of each path in Hz.
func (c *ChorusEngine) SetRates(rateI, rateII float64) {
	c.paths[0].lfo.SetFrequency(rateI)
	c.paths[1].lfo.SetFrequency(rateII)
}

// SetVolume sets the share of chorus in the output.
func (c *ChorusEngine) SetVolume(level float64) {
	c.level = level
}

// Volume returns the chorus share.
func (c *ChorusEngine) Volume() float64 {
	return c.level
}

// Process runs one stereo sample through the chorus.
func (c *ChorusEngine) Process(inL, inR float64) (outL, outR float64) {
	var wetL, wetR float64
	active := 0
	for i := range c.paths {
		p := &c.paths[i]
		mod := p.lfo.Process() * p.depth
		if !p.enabled {
			continue
		}
		wetL += c.lineL.Read(p.base + mod)
		wetR += c.lineR.Read(p.base - mod)
		active++
	}
	c.lineL.Write(inL)
	c.lineR.Write(inR)

	switch active {
	case 0:
		wetL, wetR = inL, inR
	case 2:
		wetL *= 0.5
		wetR *= 0.5
	}

	return mix.DryWet(inL, wetL, c.level), mix.DryWet(inR, wetR, c.level)
}

// ProcessBlock runs a stereo block. Input and output may alias.
func (c *ChorusEngine) ProcessBlock(inL, inR, outL, outR *dsp.Block) {
	for i := 0; i < dsp.BlockSize; i++ {
		outL[i], outR[i] = c.Process(inL[i], inR[i])
	}
}

// Reset clears the delay lines and the LFO phases.
func (c *ChorusEngine) Reset() {
	c.lineL.Reset()
	c.lineR.Reset()
	for i := range c.paths {
		c.paths[i].lfo.Reset()
	}
}
