package utility

import (
	"math/rand"

	"github.com/justyntemme/fxroute/pkg/dsp"
)

// NoiseType represents different types of noise.
type NoiseType int

const (
	// WhiteNoise has equal energy at all frequencies.
	WhiteNoise NoiseType = iota
	// PinkNoise has equal energy per octave (1/f spectrum).
	PinkNoise
)

// NoiseGenerator produces reproducible test noise for renders and tests.
type NoiseGenerator struct {
	noiseType NoiseType
	gain      float64

	// Voss-McCartney rows.
	pinkRows       [16]float64
	pinkRunningSum float64
	pinkIndex      int

	rand *rand.Rand
}

// NewNoiseGenerator creates a seeded generator with the given peak gain.
func NewNoiseGenerator(noiseType NoiseType, seed int64, gain float64) *NoiseGenerator {
	n := &NoiseGenerator{
		noiseType: noiseType,
		gain:      gain,
		rand:      rand.New(rand.NewSource(seed)),
	}
	for i := range n.pinkRows {
		n.pinkRows[i] = n.white()
		n.pinkRunningSum += n.pinkRows[i]
	}
	return n
}

// Next returns one sample.
func (n *NoiseGenerator) Next() float64 {
	if n.noiseType == PinkNoise {
		return n.pink() * n.gain
	}
	return n.white() * n.gain
}

// Fill writes one block of noise.
func (n *NoiseGenerator) Fill(b *dsp.Block) {
	for i := range b {
		b[i] = n.Next()
	}
}

func (n *NoiseGenerator) white() float64 {
	return n.rand.Float64()*2.0 - 1.0
}

func (n *NoiseGenerator) pink() float64 {
	n.pinkIndex = (n.pinkIndex + 1) & 15
	if n.pinkIndex != 0 {
		row := 0
		for idx := n.pinkIndex; idx&1 == 0; idx >>= 1 {
			row++
		}
		n.pinkRunningSum -= n.pinkRows[row]
		n.pinkRows[row] = n.white()
		n.pinkRunningSum += n.pinkRows[row]
	}

	out := (n.pinkRunningSum + n.white()) / 17.0
	if out > 1.0 {
		return 1.0
	} else if out < -1.0 {
		return -1.0
	}
	return out
}
