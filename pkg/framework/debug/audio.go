package debug

import (
	"fmt"
	"math"
)

// AudioAnalyzer measures level statistics of float32 buffers. Successive
// calls to Accumulate build totals across many blocks.
type AudioAnalyzer struct {
	clippingThreshold float32
	dcThreshold       float32
	silenceThreshold  float32

	total      AnalysisResult
	sum        float64
	sumSquares float64
	count      int
}

// NewAudioAnalyzer creates a new audio analyzer with default settings.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		clippingThreshold: 0.99,
		dcThreshold:       0.01,
		silenceThreshold:  0.0001,
	}
}

// AnalysisResult contains the results of audio buffer analysis.
type AnalysisResult struct {
	Samples        int
	Peak           float32
	RMS            float32
	DC             float32
	Clipping       bool
	ClippedSamples int
	Silent         bool
	HasNaN         bool
	NaNCount       int
}

// Analyze measures a single buffer.
func (a *AudioAnalyzer) Analyze(buffer []float32) AnalysisResult {
	var result AnalysisResult
	var sum, sumSquares float64
	a.scan(buffer, &result, &sum, &sumSquares)
	a.finish(&result, sum, sumSquares)
	return result
}

// Accumulate adds a buffer to the running totals.
func (a *AudioAnalyzer) Accumulate(buffer []float32) {
	a.scan(buffer, &a.total, &a.sum, &a.sumSquares)
}

// Total returns the statistics of everything accumulated so far.
func (a *AudioAnalyzer) Total() AnalysisResult {
	result := a.total
	a.finish(&result, a.sum, a.sumSquares)
	return result
}

// Reset clears the running totals.
func (a *AudioAnalyzer) Reset() {
	a.total = AnalysisResult{}
	a.sum = 0
	a.sumSquares = 0
}

func (a *AudioAnalyzer) scan(buffer []float32, result *AnalysisResult, sum, sumSquares *float64) {
	for _, sample := range buffer {
		if math.IsNaN(float64(sample)) {
			result.HasNaN = true
			result.NaNCount++
			continue
		}
		result.Samples++

		abs := sample
		if abs < 0 {
			abs = -abs
		}
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs >= a.clippingThreshold {
			result.Clipping = true
			result.ClippedSamples++
		}

		*sum += float64(sample)
		*sumSquares += float64(sample) * float64(sample)
	}
}

func (a *AudioAnalyzer) finish(result *AnalysisResult, sum, sumSquares float64) {
	if result.Samples == 0 {
		result.Silent = true
		return
	}
	n := float64(result.Samples)
	result.RMS = float32(math.Sqrt(sumSquares / n))
	result.DC = float32(sum / n)
	result.Silent = result.RMS < a.silenceThreshold
}

// Check lists problems found in a result.
func (a *AudioAnalyzer) Check(result AnalysisResult, name string) []string {
	var issues []string

	if result.HasNaN {
		issues = append(issues, fmt.Sprintf("%s: contains %d NaN values", name, result.NaNCount))
	}
	if result.Clipping {
		issues = append(issues, fmt.Sprintf("%s: clipping detected (%d samples)", name, result.ClippedSamples))
	}
	if math.Abs(float64(result.DC)) > float64(a.dcThreshold) {
		issues = append(issues, fmt.Sprintf("%s: DC offset detected (%.3f)", name, result.DC))
	}
	if result.Peak > 1.0 {
		issues = append(issues, fmt.Sprintf("%s: peak exceeds 1.0 (%.3f)", name, result.Peak))
	}
	return issues
}

// LogBufferStats writes a result to a logger.
func LogBufferStats(l *Logger, name string, result AnalysisResult) {
	l.Info("%s: %d samples, peak %.3f, rms %.3f, dc %.6f", name, result.Samples, result.Peak, result.RMS, result.DC)
	if result.Clipping {
		l.Warn("%s: clipping on %d samples", name, result.ClippedSamples)
	}
	if result.HasNaN {
		l.Error("%s: %d NaN values", name, result.NaNCount)
	}
}
