package dsp

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Block is one channel of one processing block.
// Its length is fixed so nothing in the audio path needs to allocate.
type Block [BlockSize]float64

// Clear zeroes the block.
func (b *Block) Clear() {
	*b = Block{}
}

// Fill sets every sample to v.
func (b *Block) Fill(v float64) {
	for i := range b {
		b[i] = v
	}
}

// CopyFrom copies src into b.
func (b *Block) CopyFrom(src *Block) {
	*b = *src
}

// Load converts a host buffer into the block. Missing samples are zero.
func (b *Block) Load(src []float32) {
	n := copyLen(len(src))
	for i := 0; i < n; i++ {
		b[i] = float64(src[i])
	}
	for i := n; i < BlockSize; i++ {
		b[i] = 0
	}
}

// Store writes the block into a host buffer.
func (b *Block) Store(dst []float32) {
	n := copyLen(len(dst))
	for i := 0; i < n; i++ {
		dst[i] = float32(b[i])
	}
}

func copyLen(n int) int {
	if n > BlockSize {
		return BlockSize
	}
	return n
}

// ScaleTo writes src*gain into dst - no allocations.
func ScaleTo(dst, src *Block, gain float64) {
	vecmath.ScaleBlock(dst[:], src[:], gain)
}

// MulInPlace multiplies dst by gains sample by sample.
func MulInPlace(dst, gains *Block) {
	vecmath.MulBlockInPlace(dst[:], gains[:])
}

// Power writes a²+b² into dst, the summed stereo energy per sample.
func Power(dst, a, b *Block) {
	vecmath.Power(dst[:], a[:], b[:])
}

// Peak returns the maximum absolute value in the block.
func Peak(b *Block) float64 {
	peak := 0.0
	for _, s := range b {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return peak
}

// IsSilent reports whether every sample is exactly zero.
func IsSilent(b *Block) bool {
	for _, s := range b {
		if s != 0 {
			return false
		}
	}
	return true
}

// Interleave writes l and r as LRLR... into dst, which must hold 2*BlockSize samples.
func Interleave(dst []float32, l, r *Block) {
	if len(dst) < MonitorSamples {
		return
	}
	for i := 0; i < BlockSize; i++ {
		dst[2*i] = float32(l[i])
		dst[2*i+1] = float32(r[i])
	}
}
