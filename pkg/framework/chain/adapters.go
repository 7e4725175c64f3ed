package chain

import (
	"github.com/justyntemme/fxroute/pkg/dsp"
	"github.com/justyntemme/fxroute/pkg/dsp/dynamics"
	"github.com/justyntemme/fxroute/pkg/dsp/utility"
)

// ServoAdapter adapts a DC servo to the Processor interface.
type ServoAdapter struct {
	servo *utility.DCServo
}

// NewServoAdapter wraps s.
func NewServoAdapter(s *utility.DCServo) *ServoAdapter {
	return &ServoAdapter{servo: s}
}

func (a *ServoAdapter) ProcessStereo(left, right *dsp.Block) {
	a.servo.ProcessBlock(left, right)
}

func (a *ServoAdapter) Reset() {
	a.servo.Reset()
}

// LimiterAdapter runs a limiter in place.
type LimiterAdapter struct {
	limiter *dynamics.Limiter
}

// NewLimiterAdapter wraps l.
func NewLimiterAdapter(l *dynamics.Limiter) *LimiterAdapter {
	return &LimiterAdapter{limiter: l}
}

func (a *LimiterAdapter) ProcessStereo(left, right *dsp.Block) {
	a.limiter.Run(left, right, left, right)
}

func (a *LimiterAdapter) Reset() {
	a.limiter.Reset()
}

// ExpanderAdapter adapts an expander to the Processor interface.
type ExpanderAdapter struct {
	expander *dynamics.Expander
}

// NewExpanderAdapter wraps e.
func NewExpanderAdapter(e *dynamics.Expander) *ExpanderAdapter {
	return &ExpanderAdapter{expander: e}
}

func (a *ExpanderAdapter) ProcessStereo(left, right *dsp.Block) {
	a.expander.Process(left, right)
}

func (a *ExpanderAdapter) Reset() {
	a.expander.Reset()
}

// NewProtectionChain builds the input conditioning stages: DC servo,
// pre-chain peak limiter and noise expander, in that order.
func NewProtectionChain(servo *utility.DCServo, limiter *dynamics.Limiter, expander *dynamics.Expander) (*Chain, error) {
	b := NewBuilder("Protection")
	if servo != nil {
		b.WithProcessor(NewServoAdapter(servo))
	} else {
		b.WithProcessor(nil)
	}
	if limiter != nil {
		b.WithProcessor(NewLimiterAdapter(limiter))
	} else {
		b.WithProcessor(nil)
	}
	if expander != nil {
		b.WithProcessor(NewExpanderAdapter(expander))
	} else {
		b.WithProcessor(nil)
	}
	return b.Build()
}
