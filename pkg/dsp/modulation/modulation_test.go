package modulation

import (
	"math"
	"testing"

	"github.com/justyntemme/fxroute/pkg/dsp"
)

func TestLFOWaveforms(t *testing.T) {
	lfo := NewLFO(48000.0)

	testCases := []struct {
		waveform  Waveform
		name      string
		phase     float64
		expected  float64
		tolerance float64
	}{
		{WaveformSine, "sine at 0", 0.0, 0.0, 0.001},
		{WaveformSine, "sine at 0.25", 0.25, 1.0, 0.001},
		{WaveformSine, "sine at 0.75", 0.75, -1.0, 0.001},
		{WaveformTriangle, "triangle at 0", 0.0, -1.0, 0.001},
		{WaveformTriangle, "triangle at 0.25", 0.25, 0.0, 0.001},
		{WaveformTriangle, "triangle at 0.5", 0.5, 1.0, 0.001},
		{WaveformTriangle, "triangle at 0.75", 0.75, 0.0, 0.001},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lfo.SetWaveform(tc.waveform)
			lfo.SetPhase(tc.phase)
			output := lfo.Process()
			if math.Abs(output-tc.expected) > tc.tolerance {
				t.Errorf("got %f, expected %f", output, tc.expected)
			}
		})
	}
}

func TestLFOFrequency(t *testing.T) {
	sampleRate := 48000.0
	lfo := NewLFO(sampleRate)
	lfo.SetFrequency(2.0)

	start := lfo.Phase()
	for i := 0; i < int(sampleRate); i++ {
		lfo.Process()
	}
	if math.Abs(lfo.Phase()-start) > 0.01 {
		t.Errorf("phase after two cycles: start %f, end %f", start, lfo.Phase())
	}

	lfo.SetFrequency(100)
	if lfo.Frequency() != 20 {
		t.Errorf("frequency not clamped: %f", lfo.Frequency())
	}
}

func TestChorusDefaults(t *testing.T) {
	c := NewChorusEngine(dsp.SampleRate)
	if i, ii := c.Enables(); !i || ii {
		t.Errorf("default enables = (%v, %v), want (true, false)", i, ii)
	}
	if c.paths[0].lfo.Frequency() != DefaultRateI || c.paths[1].lfo.Frequency() != DefaultRateII {
		t.Error("default rates not applied")
	}
	if c.Volume() != 0 {
		t.Errorf("default volume = %f, want 0", c.Volume())
	}
}

func TestChorusDryAtZeroVolume(t *testing.T) {
	c := NewChorusEngine(dsp.SampleRate)
	c.SetVolume(0)
	for i := 0; i < 1000; i++ {
		x := math.Sin(float64(i) * 0.05)
		l, r := c.Process(x, -x)
		if l != x || r != -x {
			t.Fatalf("sample %d altered: (%f, %f)", i, l, r)
		}
	}
}

func TestChorusWetIsDelayed(t *testing.T) {
	c := NewChorusEngine(dsp.SampleRate)
	c.SetVolume(1)

	minDelay := int((baseDelayI - depthI) * dsp.SampleRate / 1000.0)
	l, r := c.Process(1, 1)
	if l != 0 || r != 0 {
		t.Fatalf("wet output not delayed: (%f, %f)", l, r)
	}
	for i := 1; i < minDelay-1; i++ {
		l, r = c.Process(0, 0)
		if l != 0 || r != 0 {
			t.Fatalf("impulse arrived early at sample %d", i)
		}
	}
	var energy float64
	for i := 0; i < 2*minDelay; i++ {
		l, r = c.Process(0, 0)
		energy += l*l + r*r
	}
	if energy == 0 {
		t.Error("impulse never arrived")
	}
}

func TestChorusModesDiffer(t *testing.T) {
	render := func(pathI, pathII bool) []float64 {
		c := NewChorusEngine(dsp.SampleRate)
		c.SetEnables(pathI, pathII)
		c.SetVolume(1)
		out := make([]float64, 4000)
		for i := range out {
			out[i], _ = c.Process(math.Sin(float64(i)*0.01), 0)
		}
		return out
	}

	a := render(true, false)
	b := render(false, true)
	both := render(true, true)

	differs := func(x, y []float64) bool {
		for i := range x {
			if math.Abs(x[i]-y[i]) > 1e-9 {
				return true
			}
		}
		return false
	}
	if !differs(a, b) || !differs(a, both) || !differs(b, both) {
		t.Error("chorus modes should produce distinct outputs")
	}
}

func TestChorusStereoOppositeModulation(t *testing.T) {
	c := NewChorusEngine(dsp.SampleRate)
	c.SetVolume(1)
	var maxDiff float64
	for i := 0; i < 20000; i++ {
		x := math.Sin(float64(i) * 0.02)
		l, r := c.Process(x, x)
		maxDiff = math.Max(maxDiff, math.Abs(l-r))
	}
	if maxDiff < 1e-3 {
		t.Error("left and right should be modulated differently")
	}
}

func TestChorusSilence(t *testing.T) {
	c := NewChorusEngine(dsp.SampleRate)
	c.SetEnables(true, true)
	c.SetVolume(0.8)
	var l, r dsp.Block
	for block := 0; block < 20; block++ {
		c.ProcessBlock(&l, &r, &l, &r)
		if !dsp.IsSilent(&l) || !dsp.IsSilent(&r) {
			t.Fatalf("block %d: silence produced output", block)
		}
	}
}
