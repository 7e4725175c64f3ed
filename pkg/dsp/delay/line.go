// Package delay provides the delay lines and the echo used by the effect chain.
package delay

// Line implements a basic delay line with linear interpolation.
// The buffer is allocated once; reads and writes never allocate.
type Line struct {
	buffer     []float64
	bufferSize int
	writePos   int
}

// NewLine creates a delay line that can hold maxDelaySamples of history.
func NewLine(maxDelaySamples int) *Line {
	bufferSize := maxDelaySamples + 1
	if bufferSize < 2 {
		bufferSize = 2
	}
	return &Line{
		buffer:     make([]float64, bufferSize),
		bufferSize: bufferSize,
	}
}

// MaxDelay returns the longest delay that can be read, in samples.
func (d *Line) MaxDelay() float64 {
	return float64(d.bufferSize - 1)
}

// Reset clears the delay buffer.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// Write adds a sample to the delay line.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= d.bufferSize {
		d.writePos = 0
	}
}

// Read returns the sample written delaySamples ago. Fractional delays are
// linearly interpolated; the delay is clamped to [1, MaxDelay].
func (d *Line) Read(delaySamples float64) float64 {
	if delaySamples < 1 {
		delaySamples = 1
	} else if limit := d.MaxDelay(); delaySamples > limit {
		delaySamples = limit
	}

	readPos := float64(d.writePos) - delaySamples
	if readPos < 0 {
		readPos += float64(d.bufferSize)
	}

	readPosInt := int(readPos)
	frac := readPos - float64(readPosInt)
	if readPosInt >= d.bufferSize {
		readPosInt -= d.bufferSize
	}
	next := readPosInt + 1
	if next >= d.bufferSize {
		next = 0
	}

	return d.buffer[readPosInt]*(1.0-frac) + d.buffer[next]*frac
}

// Process reads then writes in one operation.
func (d *Line) Process(input, delaySamples float64) float64 {
	output := d.Read(delaySamples)
	d.Write(input)
	return output
}
