// Package reverb provides the reverb used in the effect chain.
package reverb

import (
	"math"
)

// CombFilter implements a damped feedback comb filter.
// Its buffer is sized once; SetLength picks the active part.
type CombFilter struct {
	buffer      []float64
	length      int
	bufferIdx   int
	feedback    float64
	filterstore float64
	damp1       float64
	damp2       float64
}

// NewCombFilter creates a comb filter able to hold maxSamples of delay.
func NewCombFilter(maxSamples int) *CombFilter {
	if maxSamples < 1 {
		maxSamples = 1
	}
	return &CombFilter{
		buffer:   make([]float64, maxSamples),
		length:   maxSamples,
		feedback: 0.5,
		damp1:    0.5,
		damp2:    0.5,
	}
}

// SetLength sets the active delay in samples, clamped to the buffer size.
func (c *CombFilter) SetLength(samples int) {
	if samples < 1 {
		samples = 1
	} else if samples > len(c.buffer) {
		samples = len(c.buffer)
	}
	c.length = samples
	if c.bufferIdx >= c.length {
		c.bufferIdx = 0
	}
}

// Length returns the active delay in samples.
func (c *CombFilter) Length() int {
	return c.length
}

// SetFeedback sets the feedback amount (0-1).
func (c *CombFilter) SetFeedback(feedback float64) {
	c.feedback = math.Max(0.0, math.Min(0.999, feedback))
}

// Feedback returns the feedback amount.
func (c *CombFilter) Feedback() float64 {
	return c.feedback
}

// SetDamping sets the damping amount (0-1).
func (c *CombFilter) SetDamping(damping float64) {
	c.damp1 = damping
	c.damp2 = 1.0 - damping
}

// Process processes a single sample through the comb filter.
func (c *CombFilter) Process(input float64) float64 {
	output := c.buffer[c.bufferIdx]

	c.filterstore = output*c.damp2 + c.filterstore*c.damp1
	c.buffer[c.bufferIdx] = input + c.feedback*c.filterstore

	c.bufferIdx++
	if c.bufferIdx >= c.length {
		c.bufferIdx = 0
	}
	return output
}

// Reset clears the comb filter state.
func (c *CombFilter) Reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
	c.bufferIdx = 0
	c.filterstore = 0
}

// AllPassFilter implements an all-pass filter for reverb diffusion.
type AllPassFilter struct {
	buffer    []float64
	length    int
	bufferIdx int
	feedback  float64
}

// NewAllPassFilter creates an all-pass filter able to hold maxSamples of delay.
func NewAllPassFilter(maxSamples int) *AllPassFilter {
	if maxSamples < 1 {
		maxSamples = 1
	}
	return &AllPassFilter{
		buffer:   make([]float64, maxSamples),
		length:   maxSamples,
		feedback: 0.5,
	}
}

// SetLength sets the active delay in samples, clamped to the buffer size.
func (a *AllPassFilter) SetLength(samples int) {
	if samples < 1 {
		samples = 1
	} else if samples > len(a.buffer) {
		samples = len(a.buffer)
	}
	a.length = samples
	if a.bufferIdx >= a.length {
		a.bufferIdx = 0
	}
}

// SetFeedback sets the feedback amount (typically around 0.5).
func (a *AllPassFilter) SetFeedback(feedback float64) {
	a.feedback = feedback
}

// Process processes a single sample through the all-pass filter.
func (a *AllPassFilter) Process(input float64) float64 {
	bufout := a.buffer[a.bufferIdx]

	// y[n] = -x[n] + x[n-D] + C * y[n-D]
	output := -input + bufout
	a.buffer[a.bufferIdx] = input + a.feedback*bufout

	a.bufferIdx++
	if a.bufferIdx >= a.length {
		a.bufferIdx = 0
	}
	return output
}

// Reset clears the all-pass filter state.
func (a *AllPassFilter) Reset() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
	a.bufferIdx = 0
}
