package monitor

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/analysis"
)

// Frames is the number of stereo frames per message.
const Frames = Samples / dsp.Stereo

// correlationWindow covers 20 ms at the engine rate.
const correlationWindow = dsp.SampleRate / 50

// Reading is a snapshot of the display meters. Levels are in dB.
type Reading struct {
	Messages    uint64
	PeakL       float64
	PeakR       float64
	HoldL       float64
	HoldR       float64
	Correlation float64
	Phase       analysis.PhaseStatus
}

// Display is the consumer side of the transport. It drains a queue and
// keeps level and phase meters of the engine output.
type Display struct {
	left     *analysis.PeakMeter
	right    *analysis.PeakMeter
	phase    *analysis.CorrelationMeter
	messages atomic.Uint64

	// Deinterleave scratch, owned by the feeding goroutine.
	l, r [Frames]float64
}

// NewDisplay creates a display for output at sampleRate.
func NewDisplay(sampleRate float64) *Display {
	return &Display{
		left:  analysis.NewPeakMeter(sampleRate),
		right: analysis.NewPeakMeter(sampleRate),
		phase: analysis.NewCorrelationMeter(correlationWindow),
	}
}

// Feed splits one interleaved message and updates the meters.
func (d *Display) Feed(msg *Message) {
	for i := 0; i < Frames; i++ {
		d.l[i] = float64(msg.Samples[2*i])
		d.r[i] = float64(msg.Samples[2*i+1])
	}
	d.left.Process(d.l[:])
	d.right.Process(d.r[:])
	d.phase.Process(d.l[:], d.r[:])
	d.messages.Add(1)
}

// Run feeds every message received from q until the queue closes or ctx
// ends. A closed queue ends the run without error.
func (d *Display) Run(ctx context.Context, q *Queue) error {
	var msg Message
	for {
		err := q.Receive(ctx, &msg)
		switch {
		case err == nil:
			d.Feed(&msg)
		case errors.Is(err, ErrNotOpen):
			return nil
		default:
			return err
		}
	}
}

// Reading returns the current meter values. Safe to call while Run is active.
func (d *Display) Reading() Reading {
	return Reading{
		Messages:    d.messages.Load(),
		PeakL:       d.left.PeakDB(),
		PeakR:       d.right.PeakDB(),
		HoldL:       d.left.HoldDB(),
		HoldR:       d.right.HoldDB(),
		Correlation: d.phase.Correlation(),
		Phase:       d.phase.PhaseStatus(),
	}
}

// Reset clears the meters.
func (d *Display) Reset() {
	d.left.Reset()
	d.right.Reset()
	d.phase.Reset()
	d.messages.Store(0)
}
