package fxengine

import (
	"testing"

	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/dynamics"
)

func newFakeRouter() (*slotRouter, fakes) {
	f := newFakes()
	return newSlotRouter(f.mod, f.dly, f.rev, dynamics.NewLimiter(dsp.SampleRate)), f
}

func TestDryLevel(t *testing.T) {
	tests := []struct {
		name     string
		levelSum float64
		final    bool
		prev     bool
		want     float64
	}{
		{"NoEffectLevel", 0, false, false, 1},
		{"PartialLevel", 0.3, false, true, 0.7},
		{"TwoEffects", 0.25 + 0.5, false, true, 0.25},
		{"JustUnderUnity", 0.99, true, true, 0.01},
		{"Unity", 1, false, true, 0},
		{"OverUnity", 1.7, false, true, 0},
		{"FinalAfterEmptyRow", 0.3, true, false, 0},
		{"FinalAfterEffect", 0.3, true, true, 0.7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DryLevel(tc.levelSum, tc.final, tc.prev)
			if !approxEqual(got, tc.want, tolerance) {
				t.Errorf("DryLevel(%g, %v, %v) = %g, want %g", tc.levelSum, tc.final, tc.prev, got, tc.want)
			}
			if tc.levelSum < 1 && (!tc.final || tc.prev) && !approxEqual(got+tc.levelSum, 1, tolerance) {
				t.Errorf("dry %g + levels %g != 1", got, tc.levelSum)
			}
		})
	}
}

func TestSlotFromValue(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{0, 0},
		{0.16, 0},
		{0.17, 1},
		{1.0 / 3, 1},
		{0.5, 2},
		{2.0 / 3, 2},
		{0.9, 3},
		{1, 3},
		{-0.5, 0},
		{1.5, dsp.FXSlots},
	}
	for _, tc := range tests {
		if got := SlotFromValue(tc.v); got != tc.want {
			t.Errorf("SlotFromValue(%g) = %d, want %d", tc.v, got, tc.want)
		}
	}
}

// A stage sharing a row with a later stage is executed but its output is
// discarded: reverb wins over delay, which wins over modulation.
func TestRouterCollisionOverwrite(t *testing.T) {
	tests := []struct {
		name            string
		mod, dly, rev   int
		want            float64
		modulationCalls int
	}{
		{"ModulationAndReverb", 1, 0, 1, 0.3, 1},
		{"ModulationAndDelay", 1, 1, 0, 0.2, 1},
		{"DelayAndReverb", 0, 2, 2, 0.3, 1},
		{"AllThree", 0, 0, 0, 0.3, 1},
		{"ModulationAndReverbLastRow", 2, 0, 2, 0.3, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, f := newFakeRouter()
			r.setSlot(stageModulation, tc.mod)
			r.setSlot(stageDelay, tc.dly)
			r.setSlot(stageReverb, tc.rev)

			var inL, inR dsp.Block
			inL.Fill(1)
			inR.Fill(1)
			outL, outR := r.process(&inL, &inR)

			for i := range outL {
				if outL[i] != tc.want || outR[i] != tc.want {
					t.Fatalf("sample %d: got %g/%g, want %g", i, outL[i], outR[i], tc.want)
				}
			}
			if f.mod.calls != tc.modulationCalls {
				t.Errorf("modulation ran %d times, want %d", f.mod.calls, tc.modulationCalls)
			}
		})
	}
}

func TestRouterChainOrder(t *testing.T) {
	r, f := newFakeRouter()
	r.setSlot(stageDelay, 0)
	r.setSlot(stageModulation, 1)
	r.setSlot(stageReverb, 2)

	var inL, inR dsp.Block
	inL.Fill(1)
	inR.Fill(1)
	outL, _ := r.process(&inL, &inR)

	if f.dly.lastIn != 1 {
		t.Errorf("delay input = %g, want the chain input", f.dly.lastIn)
	}
	if f.mod.lastIn != f.dly.fill {
		t.Errorf("modulation input = %g, want the delay row %g", f.mod.lastIn, f.dly.fill)
	}
	if outL[0] != f.rev.fill {
		t.Errorf("output = %g, want the reverb row %g", outL[0], f.rev.fill)
	}
}

func TestRouterPreReverbLimiter(t *testing.T) {
	r, f := newFakeRouter()
	var inL, inR dsp.Block
	inL.Fill(1)
	inR.Fill(1)
	r.process(&inL, &inR)

	// The reverb sees the delay row after the peak limiter
	if f.rev.lastIn >= f.dly.fill {
		t.Errorf("reverb input %g was not limited", f.rev.lastIn)
	}
	if f.rev.lastIn <= 0 {
		t.Errorf("reverb input %g lost its sign", f.rev.lastIn)
	}
}

func TestRouterEmptyRowPassesDry(t *testing.T) {
	r, f := newFakeRouter()
	r.setSlot(stageModulation, 0)
	r.setSlot(stageDelay, 2)
	r.setSlot(stageReverb, 3)

	var inL, inR dsp.Block
	inL.Fill(1)
	inR.Fill(1)
	r.process(&inL, &inR)

	if f.dly.lastIn != f.mod.fill {
		t.Errorf("delay input = %g, want the modulation row %g passed through", f.dly.lastIn, f.mod.fill)
	}
	if r.lastSlot() != 3 {
		t.Errorf("last slot = %d, want 3", r.lastSlot())
	}
}

func TestRouterSmoothing(t *testing.T) {
	t.Run("DryPerRow", func(t *testing.T) {
		r, _ := newFakeRouter()
		r.setLevel(stageModulation, 0.4)
		r.snapLevels()

		var inL, inR dsp.Block
		r.process(&inL, &inR)

		want := dsp.ParamSmooth(0.6, 1)
		if !approxEqual(r.dry[0], want, tolerance) {
			t.Errorf("row 0 dry = %g, want %g", r.dry[0], want)
		}
		if r.dry[1] != 1 {
			t.Errorf("row 1 dry = %g, want 1", r.dry[1])
		}
	})

	t.Run("LevelRamp", func(t *testing.T) {
		r, f := newFakeRouter()
		r.setLevel(stageModulation, 0.5)

		var inL, inR dsp.Block
		r.process(&inL, &inR)

		want := dsp.ParamSmooth(0.5, 0)
		if !approxEqual(f.mod.volume, want, tolerance) {
			t.Errorf("modulation volume = %g, want %g after one block", f.mod.volume, want)
		}
		for block := 0; block < 2000; block++ {
			r.process(&inL, &inR)
		}
		if f.mod.volume != 0.5 {
			t.Errorf("modulation volume = %g, want 0.5 once settled", f.mod.volume)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		r, _ := newFakeRouter()
		r.dry[2] = 0.3
		r.reset()
		for i, d := range r.dry {
			if d != 1 {
				t.Errorf("row %d dry = %g after reset, want 1", i, d)
			}
		}
	})
}
