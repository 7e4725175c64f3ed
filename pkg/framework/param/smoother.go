package param

import (
	"math"

	"github.com/justyntemme/fxroute/pkg/dsp"
)

// SmoothingType selects the smoothing law of a Smoother.
type SmoothingType int

const (
	// BlockSmoothing steps once per block with dsp.ParamSmooth, which moves
	// faster for larger jumps.
	BlockSmoothing SmoothingType = iota
	// ExponentialSmoothing is a plain one-pole filter: y += (x - y) * (1 - rate)
	ExponentialSmoothing
)

// Smoother provides parameter smoothing to prevent zipper noise.
type Smoother struct {
	smoothingType SmoothingType
	current       float64
	target        float64
	rate          float64
	threshold     float64
	isSmoothing   bool
}

// NewSmoother creates a new parameter smoother. rate is only used by
// ExponentialSmoothing.
func NewSmoother(smoothingType SmoothingType, rate float64) *Smoother {
	return &Smoother{
		smoothingType: smoothingType,
		rate:          rate,
		threshold:     1e-9,
	}
}

// SetTarget sets the target value for smoothing.
func (s *Smoother) SetTarget(target float64) {
	s.target = target
	s.isSmoothing = s.current != target
}

// Target returns the value being approached.
func (s *Smoother) Target() float64 {
	return s.target
}

// Next advances one step and returns the smoothed value.
func (s *Smoother) Next() float64 {
	if !s.isSmoothing {
		return s.current
	}

	switch s.smoothingType {
	case BlockSmoothing:
		s.current = dsp.ParamSmooth(s.target, s.current)
	case ExponentialSmoothing:
		s.current += (s.target - s.current) * (1.0 - s.rate)
	}

	if math.Abs(s.current-s.target) < s.threshold {
		s.current = s.target
		s.isSmoothing = false
	}
	return s.current
}

// Value returns the current smoothed value without advancing.
func (s *Smoother) Value() float64 {
	return s.current
}

// IsSmoothing returns true if the smoother is currently smoothing.
func (s *Smoother) IsSmoothing() bool {
	return s.isSmoothing
}

// Reset jumps to value with no ramp.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.isSmoothing = false
}

