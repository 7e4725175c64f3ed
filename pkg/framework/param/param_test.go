package param

import (
	"errors"
	"math"
	"testing"

	"github.com/justyntemme/fxroute/pkg/dsp"
)

func TestParameterValue(t *testing.T) {
	p := New(1, "Delay Time").Range(0, 2000).Unit("ms").Default(500).Build()

	if math.Abs(p.GetValue()-0.25) > 1e-12 {
		t.Errorf("default normalized = %f, want 0.25", p.GetValue())
	}
	if math.Abs(p.Denormalize(p.GetValue())-500) > 1e-9 {
		t.Errorf("plain = %f, want 500", p.Denormalize(p.GetValue()))
	}

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"InRange", 0.6, 0.6},
		{"ClampLow", -1, 0},
		{"ClampHigh", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.SetValue(tt.in)
			if p.GetValue() != tt.want {
				t.Errorf("SetValue(%f) stored %f, want %f", tt.in, p.GetValue(), tt.want)
			}
		})
	}

	p.SetValue(p.Normalize(1000))
	if math.Abs(p.GetValue()-0.5) > 1e-12 {
		t.Errorf("Normalize(1000) = %f, want 0.5", p.GetValue())
	}
}

func TestParameterSteps(t *testing.T) {
	p := New(2, "Slot").Range(0, 3).List(3).Build()
	if got := p.Denormalize(0.4); got != 1 {
		t.Errorf("Denormalize(0.4) = %f, want 1", got)
	}
	if got := p.FormatValue(2.0 / 3.0); got != "2" {
		t.Errorf("FormatValue = %q, want \"2\"", got)
	}
}

func TestParameterParse(t *testing.T) {
	p := New(3, "Pre Delay").Range(0, 600).Formatter(TimeFormatter, TimeParser).Build()

	v, err := p.ParseValue("300 ms")
	if err != nil {
		t.Fatalf("ParseValue: %v", err)
	}
	if math.Abs(v-0.5) > 1e-12 {
		t.Errorf("ParseValue(300 ms) = %f, want 0.5", v)
	}
	if got := p.FormatValue(0.5); got != "300.0 ms" {
		t.Errorf("FormatValue(0.5) = %q", got)
	}
	if _, err := p.ParseValue("abc"); err == nil {
		t.Error("expected parse error")
	}
}

func TestToggleAndList(t *testing.T) {
	toggle := New(4, "Sync").Toggle().Build()
	if toggle.FormatValue(1) != "On" || toggle.FormatValue(0) != "Off" {
		t.Error("toggle formatting")
	}
	if v, err := toggle.ParseValue("on"); err != nil || v != 1 {
		t.Errorf("ParseValue(on) = %f, %v", v, err)
	}

	list := New(5, "Mode").Range(0, 2).List(2).
		Formatter(ListFormatter("I", "II", "I+II"), ListParser("I", "II", "I+II")).Build()
	if list.Flags&IsList == 0 {
		t.Error("list flag not set")
	}
	if got := list.FormatValue(1); got != "I+II" {
		t.Errorf("FormatValue(1) = %q, want I+II", got)
	}
	if v, err := list.ParseValue("ii"); err != nil || v != 0.5 {
		t.Errorf("ParseValue(ii) = %f, %v", v, err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := New(0, "Volume").ShortName("vol").Build()
	b := New(1, "Reverb Level").Build()

	if err := r.Add(a, b); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if r.Count() != 2 {
		t.Errorf("Count = %d, want 2", r.Count())
	}
	if all := r.All(); len(all) != 2 || all[0] != a || all[1] != b {
		t.Error("All does not keep registration order")
	}
	if p, ok := r.Lookup("VOL"); !ok || p != a {
		t.Error("Lookup by short name failed")
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("Lookup found a missing parameter")
	}

	err := r.Add(New(2, "Other").Build(), New(1, "Dup").Build())
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if r.Count() != 2 {
		t.Error("failed Add must not register anything")
	}
}

func TestTable(t *testing.T) {
	r := NewRegistry()
	_ = r.Add(
		New(0, "A").DefaultNormalized(0.25).Build(),
		New(2, "B").DefaultNormalized(1).Build(),
		New(10, "Outside").DefaultNormalized(1).Build(),
	)

	tbl := NewTable(3)
	tbl.LoadDefaults(r)
	if tbl.Get(0) != 0.25 || tbl.Get(1) != 0 || tbl.Get(2) != 1 {
		t.Errorf("defaults not loaded: %f %f %f", tbl.Get(0), tbl.Get(1), tbl.Get(2))
	}
	if tbl.Set(3, 1) {
		t.Error("Set past the end should be refused")
	}
	if tbl.Get(99) != 0 {
		t.Error("Get past the end should return 0")
	}
}

func TestSmoother(t *testing.T) {
	t.Run("BlockSmoothingMatchesParamSmooth", func(t *testing.T) {
		s := NewSmoother(BlockSmoothing, 0)
		s.SetTarget(1)
		state := 0.0
		for i := 0; i < 10; i++ {
			state = dsp.ParamSmooth(1, state)
			if got := s.Next(); got != state {
				t.Fatalf("step %d: got %f, want %f", i, got, state)
			}
		}
	})

	t.Run("Converges", func(t *testing.T) {
		s := NewSmoother(ExponentialSmoothing, 0.9)
		s.SetTarget(0.5)
		for i := 0; i < 1000 && s.IsSmoothing(); i++ {
			s.Next()
		}
		if s.IsSmoothing() || s.Value() != 0.5 {
			t.Errorf("did not settle: %f", s.Value())
		}
	})

	t.Run("Reset", func(t *testing.T) {
		s := NewSmoother(BlockSmoothing, 0)
		s.SetTarget(1)
		s.Next()
		s.Reset(0.3)
		if s.IsSmoothing() || s.Next() != 0.3 || s.Target() != 0.3 {
			t.Error("reset did not jump")
		}
	})
}
