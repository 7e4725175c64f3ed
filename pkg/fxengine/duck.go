package fxengine

import "github.com/justyntemme/fxroute/pkg/dsp"

// DuckBlocks is the length of one duck in blocks.
const DuckBlocks = int(dsp.DuckSeconds * dsp.BlockRate)

// duck silences the output for DuckBlocks blocks after a disruptive change.
// Arming it again while it runs does not restart the count.
type duck struct {
	active  bool
	counter int
}

func (d *duck) arm() {
	d.active = true
}

// step advances one block. It reports whether the block must be silenced
// and whether it is the first silenced block of this duck.
func (d *duck) step() (ducking, first bool) {
	if !d.active {
		return false, false
	}
	d.counter++
	first = d.counter == 1
	if d.counter >= DuckBlocks {
		d.active = false
		d.counter = 0
	}
	return true, first
}

func (d *duck) reset() {
	d.active = false
	d.counter = 0
}
