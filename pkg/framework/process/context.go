// Package process provides the per-block processing context and the host
// parameter change queues.
package process

// Context carries one block of audio and the parameter changes that arrived
// with it.
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	// Changes is the host change list for this block. It may be nil.
	Changes ParameterChanges

	// Tempo is the host tempo in beats per minute, 0 when unknown.
	Tempo float64
}

// NewContext creates a context with preallocated channel buffers.
func NewContext(channels, blockSize int, sampleRate float64) *Context {
	c := &Context{
		Input:      make([][]float32, channels),
		Output:     make([][]float32, channels),
		SampleRate: sampleRate,
	}
	for ch := 0; ch < channels; ch++ {
		c.Input[ch] = make([]float32, blockSize)
		c.Output[ch] = make([]float32, blockSize)
	}
	return c
}

// NumSamples returns the number of samples to process.
func (c *Context) NumSamples() int {
	if len(c.Input) > 0 && len(c.Input[0]) > 0 {
		return len(c.Input[0])
	}
	if len(c.Output) > 0 && len(c.Output[0]) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumInputChannels returns the number of input channels.
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels.
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// PassThrough copies input to output.
func (c *Context) PassThrough() {
	numChannels := c.NumInputChannels()
	if c.NumOutputChannels() < numChannels {
		numChannels = c.NumOutputChannels()
	}

	for ch := 0; ch < numChannels; ch++ {
		copy(c.Output[ch], c.Input[ch])
	}
}

// Clear zeros the output buffers.
func (c *Context) Clear() {
	for ch := range c.Output {
		clear(c.Output[ch])
	}
}

// ClearInput zeros the input buffers.
func (c *Context) ClearInput() {
	for ch := range c.Input {
		clear(c.Input[ch])
	}
}
