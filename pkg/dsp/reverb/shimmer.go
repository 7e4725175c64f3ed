package reverb

import (
	"github.com/justyntemme/fxroute/pkg/dsp/delay"
)

// octaveShifter raises a stereo signal by an octave with two read heads
// sweeping a short window in opposite phase, crossfaded by triangles.
type octaveShifter struct {
	lineL  *delay.Line
	lineR  *delay.Line
	window float64
	phase  float64
	step   float64
}

func newOctaveShifter(windowSamples int) *octaveShifter {
	return &octaveShifter{
		lineL:  delay.NewLine(windowSamples + 2),
		lineR:  delay.NewLine(windowSamples + 2),
		window: float64(windowSamples),
		step:   1.0 / float64(windowSamples),
	}
}

func (s *octaveShifter) process(l, r float64) (outL, outR float64) {
	s.lineL.Write(l)
	s.lineR.Write(r)

	for _, offset := range [2]float64{0, 0.5} {
		p := s.phase + offset
		if p >= 1 {
			p--
		}
		// The delay shrinks by one sample per sample, so the head reads at twice the rate.
		d := 1 + (1-p)*s.window
		w := 1 - abs(2*p-1)
		outL += w * s.lineL.Read(d)
		outR += w * s.lineR.Read(d)
	}

	s.phase += s.step
	if s.phase >= 1 {
		s.phase--
	}
	return outL, outR
}

func (s *octaveShifter) reset() {
	s.lineL.Reset()
	s.lineR.Reset()
	s.phase = 0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
