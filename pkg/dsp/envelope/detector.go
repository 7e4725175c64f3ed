// Package envelope provides the peak envelope followers used by the limiters.
package envelope

import (
	"github.com/justyntemme/fxroute/pkg/dsp"
)

// HoldDetector tracks the peak of a signal with two interleaved hold windows.
// Each window keeps its running maximum for two hold periods and then restarts
// from zero. The second window runs one hold period behind the first, so
// whenever one window restarts the other has covered at least the last
// holdSamples. A peak is therefore held for at least holdSamples and at most
// twice that.
type HoldDetector struct {
	holdSamples int

	windows [2]holdWindow

	// Release stage
	releaseCoef float64
	envelope    float64
}

// holdWindow is one hold-and-reset maximum.
type holdWindow struct {
	timer int
	peak  float64
}

func (w *holdWindow) feed(peak float64, period int) float64 {
	w.timer++
	if w.timer > period {
		w.timer = 0
		w.peak = 0
	}
	if peak > w.peak {
		w.peak = peak
	}
	return w.peak
}

// NewHoldDetector creates a detector with the given hold and release times in seconds.
func NewHoldDetector(sampleRate, holdSeconds, releaseSeconds float64) *HoldDetector {
	d := &HoldDetector{
		holdSamples: int(holdSeconds * sampleRate),
		releaseCoef: dsp.ReleaseCoeff(releaseSeconds, sampleRate),
	}
	if d.holdSamples < 1 {
		d.holdSamples = 1
	}
	d.Reset()
	return d
}

// HoldSamples returns the hold period in samples.
func (d *HoldDetector) HoldSamples() int {
	return d.holdSamples
}

// ReleaseCoef returns the per-sample release factor.
func (d *HoldDetector) ReleaseCoef() float64 {
	return d.releaseCoef
}

// Hold feeds one peak value and returns the larger of the two windows.
func (d *HoldDetector) Hold(peak float64) float64 {
	a := d.windows[0].feed(peak, 2*d.holdSamples)
	b := d.windows[1].feed(peak, 2*d.holdSamples)
	return max(a, b)
}

// Detect feeds one peak value and returns the released envelope.
// The envelope jumps up instantly and decays exponentially towards the held peak.
func (d *HoldDetector) Detect(peak float64) float64 {
	target := d.Hold(peak)
	if d.envelope < target {
		d.envelope = target
	} else {
		d.envelope = target + d.releaseCoef*(d.envelope-target)
	}
	return d.envelope
}

// Envelope returns the current envelope value.
func (d *HoldDetector) Envelope() float64 {
	return d.envelope
}

// Reset clears the detector and re-staggers the two windows.
func (d *HoldDetector) Reset() {
	d.windows[0] = holdWindow{}
	d.windows[1] = holdWindow{timer: d.holdSamples}
	d.envelope = 0
}
