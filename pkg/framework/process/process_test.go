package process

import (
	"testing"
)

func TestContext(t *testing.T) {
	ctx := NewContext(2, 128, 96000)

	if ctx.NumSamples() != 128 || ctx.NumInputChannels() != 2 || ctx.NumOutputChannels() != 2 {
		t.Fatalf("shape = %d samples, %d in, %d out", ctx.NumSamples(), ctx.NumInputChannels(), ctx.NumOutputChannels())
	}

	ctx.Input[0][5] = 0.5
	ctx.Input[1][7] = -0.25
	ctx.PassThrough()
	if ctx.Output[0][5] != 0.5 || ctx.Output[1][7] != -0.25 {
		t.Error("PassThrough did not copy input")
	}

	ctx.Clear()
	ctx.ClearInput()
	for ch := 0; ch < 2; ch++ {
		for i := range ctx.Output[ch] {
			if ctx.Output[ch][i] != 0 || ctx.Input[ch][i] != 0 {
				t.Fatalf("channel %d sample %d not cleared", ch, i)
			}
		}
	}

	empty := &Context{}
	if empty.NumSamples() != 0 {
		t.Error("empty context should report zero samples")
	}
}

func TestChangeList(t *testing.T) {
	l := NewChangeList(2, 3)

	t.Run("GroupsPointsByID", func(t *testing.T) {
		l.Add(7, 0, 0.1)
		l.Add(3, 10, 0.2)
		l.Add(7, 64, 0.9)

		if l.ParameterCount() != 2 {
			t.Fatalf("ParameterCount = %d, want 2", l.ParameterCount())
		}
		q := l.ParameterData(0)
		if q.ParameterID() != 7 || q.PointCount() != 2 {
			t.Fatalf("queue 0 = id %d with %d points", q.ParameterID(), q.PointCount())
		}
		offset, value, ok := q.Point(1)
		if !ok || offset != 64 || value != 0.9 {
			t.Errorf("Point(1) = %d, %f, %v", offset, value, ok)
		}
		if _, _, ok := q.Point(2); ok {
			t.Error("Point past the end should fail")
		}
	})

	t.Run("Capacity", func(t *testing.T) {
		if l.Add(9, 0, 1) {
			t.Error("third parameter should not fit")
		}
		l.Add(3, 20, 0.3)
		l.Add(3, 30, 0.4)
		if l.Add(3, 40, 0.5) {
			t.Error("fourth point should not fit")
		}
		if l.ParameterData(2) != nil || l.ParameterData(-1) != nil {
			t.Error("ParameterData out of range should be nil")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		l.Reset()
		if l.ParameterCount() != 0 {
			t.Fatal("reset did not empty the list")
		}
		l.Add(3, 0, 1)
		if l.ParameterData(0).PointCount() != 1 {
			t.Error("reused queue kept stale points")
		}
	})

	t.Run("NoAllocations", func(t *testing.T) {
		allocs := testing.AllocsPerRun(100, func() {
			l.Reset()
			l.Add(1, 0, 0.5)
			l.Add(1, 1, 0.6)
		})
		if allocs != 0 {
			t.Errorf("allocations = %f, want 0", allocs)
		}
	})
}
