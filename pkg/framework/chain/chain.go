// Package chain runs fixed sequences of stereo block processors.
package chain

import (
	"errors"
	"fmt"

	"github.com/justyntemme/fxroute/pkg/dsp"
)

// Processor is a stereo stage that works on one block in place.
type Processor interface {
	// ProcessStereo processes one stereo block in place.
	ProcessStereo(left, right *dsp.Block)

	// Reset resets the processor state.
	Reset()
}

// ProcessorFunc allows using a function as a Processor.
type ProcessorFunc func(left, right *dsp.Block)

func (f ProcessorFunc) ProcessStereo(left, right *dsp.Block) {
	f(left, right)
}

func (f ProcessorFunc) Reset() {
	// No-op for function processors
}

// Chain represents a chain of stereo processors run in insertion order.
type Chain struct {
	name       string
	processors []Processor
	bypass     bool
}

// NewChain creates a new chain.
func NewChain(name string) *Chain {
	return &Chain{
		name:       name,
		processors: make([]Processor, 0, 4),
	}
}

// Name returns the chain name.
func (c *Chain) Name() string {
	return c.name
}

// Add adds a processor to the chain.
func (c *Chain) Add(processor Processor) *Chain {
	c.processors = append(c.processors, processor)
	return c
}

// Process runs the block through every processor.
func (c *Chain) Process(left, right *dsp.Block) {
	if c.bypass {
		return
	}
	for _, p := range c.processors {
		p.ProcessStereo(left, right)
	}
}

// Reset resets all processors in the chain.
func (c *Chain) Reset() {
	for _, p := range c.processors {
		p.Reset()
	}
}

// SetBypass sets the bypass state of the chain.
func (c *Chain) SetBypass(bypass bool) {
	c.bypass = bypass
}

// IsBypassed reports whether the chain passes audio through untouched.
func (c *Chain) IsBypassed() bool {
	return c.bypass
}

// IsEmpty returns true if the chain has no processors.
func (c *Chain) IsEmpty() bool {
	return len(c.processors) == 0
}

// Count returns the number of processors in the chain.
func (c *Chain) Count() int {
	return len(c.processors)
}

// Builder provides a fluent API for building chains.
type Builder struct {
	chain  *Chain
	errors []error
}

// NewBuilder creates a new chain builder.
func NewBuilder(name string) *Builder {
	return &Builder{chain: NewChain(name)}
}

// WithProcessor adds a processor to the chain.
func (b *Builder) WithProcessor(processor Processor) *Builder {
	if processor == nil {
		b.errors = append(b.errors, fmt.Errorf("processor %d cannot be nil", b.chain.Count()))
		return b
	}
	b.chain.Add(processor)
	return b
}

// WithFunc adds a processing function to the chain.
func (b *Builder) WithFunc(process func(left, right *dsp.Block)) *Builder {
	if process == nil {
		b.errors = append(b.errors, fmt.Errorf("process function %d cannot be nil", b.chain.Count()))
		return b
	}
	b.chain.Add(ProcessorFunc(process))
	return b
}

// Build builds the chain and returns any errors.
func (b *Builder) Build() (*Chain, error) {
	if len(b.errors) > 0 {
		return nil, fmt.Errorf("chain %q: %w", b.chain.name, errors.Join(b.errors...))
	}
	if b.chain.IsEmpty() {
		return nil, fmt.Errorf("chain %q is empty", b.chain.name)
	}
	return b.chain, nil
}
