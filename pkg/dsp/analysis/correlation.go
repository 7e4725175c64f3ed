package analysis

import (
	"math"
	"sync"
)

// CorrelationMeter measures the phase relationship of a stereo pair as a
// smoothed Pearson coefficient over a sliding window.
type CorrelationMeter struct {
	windowSize  int
	bufferL     []float64
	bufferR     []float64
	writePos    int
	count       int
	correlation float64
	averaging   float64
	mu          sync.Mutex
}

// NewCorrelationMeter creates a meter over windowSize samples.
func NewCorrelationMeter(windowSize int) *CorrelationMeter {
	if windowSize < 1 {
		windowSize = 1
	}
	return &CorrelationMeter{
		windowSize: windowSize,
		bufferL:    make([]float64, windowSize),
		bufferR:    make([]float64, windowSize),
		averaging:  0.9,
	}
}

// SetAveraging sets the exponential averaging factor (0-1).
func (cm *CorrelationMeter) SetAveraging(factor float64) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if factor >= 0 && factor <= 1 {
		cm.averaging = factor
	}
}

// Process adds stereo samples. The reading updates once the window is full.
func (cm *CorrelationMeter) Process(samplesL, samplesR []float64) {
	if len(samplesL) != len(samplesR) {
		return
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	for i := range samplesL {
		cm.bufferL[cm.writePos] = samplesL[i]
		cm.bufferR[cm.writePos] = samplesR[i]
		cm.writePos = (cm.writePos + 1) % cm.windowSize
		if cm.count < cm.windowSize {
			cm.count++
		}
	}
	if cm.count == cm.windowSize {
		cm.correlation = cm.correlation*cm.averaging + cm.pearson()*(1-cm.averaging)
	}
}

func (cm *CorrelationMeter) pearson() float64 {
	n := float64(cm.count)
	meanL, meanR := 0.0, 0.0
	for i := 0; i < cm.count; i++ {
		meanL += cm.bufferL[i]
		meanR += cm.bufferR[i]
	}
	meanL /= n
	meanR /= n

	var num, varL, varR float64
	for i := 0; i < cm.count; i++ {
		dl := cm.bufferL[i] - meanL
		dr := cm.bufferR[i] - meanR
		num += dl * dr
		varL += dl * dl
		varR += dr * dr
	}

	// Silence on both sides reads as correlated, on one side as unrelated.
	if varL == 0 || varR == 0 {
		if varL == 0 && varR == 0 {
			return 1
		}
		return 0
	}
	return math.Max(-1, math.Min(1, num/math.Sqrt(varL*varR)))
}

// Correlation returns the smoothed correlation (-1 to 1).
func (cm *CorrelationMeter) Correlation() float64 {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.correlation
}

// PhaseStatus returns a qualitative reading of Correlation.
func (cm *CorrelationMeter) PhaseStatus() PhaseStatus {
	corr := cm.Correlation()
	switch {
	case corr > 0.9:
		return PhaseInPhase
	case corr > 0.5:
		return PhaseMostlyInPhase
	case corr > -0.5:
		return PhasePartiallyCorrelated
	case corr > -0.9:
		return PhaseMostlyOutOfPhase
	default:
		return PhaseOutOfPhase
	}
}

// Reset clears the window and the reading.
func (cm *CorrelationMeter) Reset() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	clear(cm.bufferL)
	clear(cm.bufferR)
	cm.writePos = 0
	cm.count = 0
	cm.correlation = 0
}

// PhaseStatus represents the qualitative phase relationship.
type PhaseStatus int

const (
	PhaseInPhase PhaseStatus = iota
	PhaseMostlyInPhase
	PhasePartiallyCorrelated
	PhaseMostlyOutOfPhase
	PhaseOutOfPhase
)

// String returns the status label.
func (ps PhaseStatus) String() string {
	switch ps {
	case PhaseInPhase:
		return "In Phase"
	case PhaseMostlyInPhase:
		return "Mostly In Phase"
	case PhasePartiallyCorrelated:
		return "Partially Correlated"
	case PhaseMostlyOutOfPhase:
		return "Mostly Out of Phase"
	case PhaseOutOfPhase:
		return "Out of Phase"
	default:
		return "Unknown"
	}
}
