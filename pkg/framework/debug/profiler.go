package debug

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler records timing statistics for named sections.
type Profiler struct {
	mu           sync.RWMutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
	maxSamples   int
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	name        string
	count       uint64
	totalTime   time.Duration
	minTime     time.Duration
	maxTime     time.Duration
	lastTime    time.Duration
	samples     []time.Duration
	sampleIndex int
}

// NewProfiler creates a profiler keeping the last maxSamples timings per section.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples < 1 {
		maxSamples = 1
	}
	p := &Profiler{
		measurements: make(map[string]*Measurement),
		maxSamples:   maxSamples,
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// Start begins timing a named section and returns the stop function.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Time measures the execution time of a function.
func (p *Profiler) Time(name string, fn func()) {
	if !p.enabled.Load() {
		fn()
		return
	}
	start := time.Now()
	fn()
	p.Record(name, time.Since(start))
}

// Record stores a timing measurement.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{
			name:    name,
			minTime: elapsed,
			maxTime: elapsed,
			samples: make([]time.Duration, p.maxSamples),
		}
		p.measurements[name] = m
	}

	m.count++
	m.totalTime += elapsed
	m.lastTime = elapsed
	m.minTime = min(m.minTime, elapsed)
	m.maxTime = max(m.maxTime, elapsed)

	m.samples[m.sampleIndex] = elapsed
	m.sampleIndex = (m.sampleIndex + 1) % p.maxSamples
}

// GetMeasurement returns a copy of the measurement for a named section.
func (p *Profiler) GetMeasurement(name string) (*Measurement, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	m, exists := p.measurements[name]
	if !exists {
		return nil, false
	}
	c := *m
	c.samples = slices.Clone(m.samples)
	return &c, true
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Report generates a performance report sorted by section name.
func (p *Profiler) Report() string {
	p.mu.RLock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.RUnlock()

	if len(names) == 0 {
		return "No measurements recorded"
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		m, _ := p.GetMeasurement(name)
		fmt.Fprintf(&sb, "%s: count %d, avg %v, min %v, max %v, p99 %v\n",
			name, m.count, m.Average(), m.minTime, m.maxTime, m.Percentile(99))
	}
	return sb.String()
}

// Count returns how many timings were recorded.
func (m *Measurement) Count() uint64 {
	return m.count
}

// Max returns the longest recorded timing.
func (m *Measurement) Max() time.Duration {
	return m.maxTime
}

// Average returns the average time for this measurement.
func (m *Measurement) Average() time.Duration {
	if m.count == 0 {
		return 0
	}
	return m.totalTime / time.Duration(m.count)
}

// Percentile returns the given percentile of the retained samples.
func (m *Measurement) Percentile(p float64) time.Duration {
	n := min(int(m.count), len(m.samples))
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(m.samples[:n])
	slices.Sort(sorted)
	index := int(float64(n-1) * p / 100.0)
	return sorted[index]
}

// ProcessSection is the section name used for the block callback.
const ProcessSection = "ProcessAudio"

// AudioProcessProfiler relates block callback timings to the block period.
type AudioProcessProfiler struct {
	*Profiler
	bufferSize     int
	sampleRate     float64
	cpuLoadPercent atomic.Uint64
}

// NewAudioProcessProfiler creates a profiler specialized for audio processing.
func NewAudioProcessProfiler(sampleRate float64, bufferSize int) *AudioProcessProfiler {
	return &AudioProcessProfiler{
		Profiler:   NewProfiler(1000),
		sampleRate: sampleRate,
		bufferSize: bufferSize,
	}
}

// BlockPeriod is the real time covered by one block.
func (a *AudioProcessProfiler) BlockPeriod() time.Duration {
	return time.Duration(float64(a.bufferSize) / a.sampleRate * float64(time.Second))
}

// UpdateCPULoad recomputes the average load of the block callback.
func (a *AudioProcessProfiler) UpdateCPULoad() {
	m, exists := a.GetMeasurement(ProcessSection)
	if !exists || m.count == 0 {
		return
	}
	cpuLoad := float64(m.Average()) / float64(a.BlockPeriod()) * 100.0
	// Fixed point with two decimals.
	a.cpuLoadPercent.Store(uint64(cpuLoad * 100))
}

// GetCPULoad returns the last computed CPU load percentage.
func (a *AudioProcessProfiler) GetCPULoad() float64 {
	return float64(a.cpuLoadPercent.Load()) / 100.0
}

// Overruns counts retained callback timings longer than one block period.
func (a *AudioProcessProfiler) Overruns() int {
	m, exists := a.GetMeasurement(ProcessSection)
	if !exists {
		return 0
	}
	period := a.BlockPeriod()
	n := min(int(m.count), len(m.samples))
	over := 0
	for _, d := range m.samples[:n] {
		if d > period {
			over++
		}
	}
	return over
}
