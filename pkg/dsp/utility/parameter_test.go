package utility

import (
	"math"
	"testing"
)

func TestScaleParameter(t *testing.T) {
	tests := []struct {
		name       string
		normalized float64
		min        float64
		max        float64
		expected   float64
	}{
		{"Zero to min", 0.0, -60.0, 0.0, -60.0},
		{"One to max", 1.0, -60.0, 0.0, 0.0},
		{"Half", 0.5, -60.0, 0.0, -30.0},
		{"Predelay", 0.25, 0.0, 600.0, 150.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScaleParameter(tt.normalized, tt.min, tt.max)
			if math.Abs(result-tt.expected) > 1e-6 {
				t.Errorf("ScaleParameter(%f, %f, %f) = %f, want %f",
					tt.normalized, tt.min, tt.max, result, tt.expected)
			}
		})
	}
}

func TestScaleParameterExp(t *testing.T) {
	tests := []struct {
		name       string
		normalized float64
		min        float64
		max        float64
		expected   float64
	}{
		{"Zero to min", 0.0, 32.0, 16384.0, 32.0},
		{"One to max", 1.0, 32.0, 16384.0, 16384.0},
		{"Matches octave law", 0.5, 32.0, 16384.0, math.Pow(2, 5+9*0.5)},
		{"Negative min fallback", 0.5, -10.0, 10.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScaleParameterExp(tt.normalized, tt.min, tt.max)
			if math.Abs(result-tt.expected) > 1e-6 {
				t.Errorf("ScaleParameterExp(%f, %f, %f) = %f, want %f",
					tt.normalized, tt.min, tt.max, result, tt.expected)
			}
		})
	}
}

func TestClampParameter(t *testing.T) {
	if ClampParameter(-1, 0, 1) != 0 || ClampParameter(2, 0, 1) != 1 || ClampParameter(0.3, 0, 1) != 0.3 {
		t.Error("ClampParameter returned a value outside the range")
	}
}

func TestSquareTaper(t *testing.T) {
	if SquareTaper(0.5) != 0.25 || SquareTaper(1) != 1 || SquareTaper(0) != 0 {
		t.Error("SquareTaper mismatch")
	}
}

func TestSelectIndex(t *testing.T) {
	tests := []struct {
		v    float64
		n    int
		want int
	}{
		{0.0, 4, 0},
		{0.24, 4, 0},
		{0.25, 4, 1},
		{0.5, 4, 2},
		{0.99, 4, 3},
		{1.0, 4, 3},
		{-0.5, 4, 0},
		{0.7, 1, 0},
	}
	for _, tt := range tests {
		if got := SelectIndex(tt.v, tt.n); got != tt.want {
			t.Errorf("SelectIndex(%f, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}
