package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler collects timing statistics for named sections.
type Profiler struct {
	mu           sync.Mutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name    string
	Count   uint64
	Samples uint64 // audio samples covered, for real-time load
	Total   time.Duration
	Min     time.Duration
	Max     time.Duration
}

// NewProfiler creates an enabled profiler.
func NewProfiler() *Profiler {
	p := &Profiler{
		measurements: make(map[string]*Measurement),
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// IsEnabled returns whether profiling is enabled.
func (p *Profiler) IsEnabled() bool {
	return p.enabled.Load()
}

// Start begins timing a section that processes the given number of audio
// samples. Call the returned function when the section ends.
func (p *Profiler) Start(name string, samples int) func() {
	if !p.enabled.Load() {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.Record(name, samples, time.Since(start))
	}
}

// Record stores one timing measurement.
func (p *Profiler) Record(name string, samples int, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		m = &Measurement{Name: name, Min: elapsed, Max: elapsed}
		p.measurements[name] = m
	}

	m.Count++
	m.Samples += uint64(samples)
	m.Total += elapsed
	if elapsed < m.Min {
		m.Min = elapsed
	}
	if elapsed > m.Max {
		m.Max = elapsed
	}
}

// Get returns a copy of the measurement for a named section.
func (p *Profiler) Get(name string) (Measurement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, exists := p.measurements[name]
	if !exists {
		return Measurement{}, false
	}
	return *m, true
}

// Merge adds every measurement of other into p.
func (p *Profiler) Merge(other *Profiler) {
	other.mu.Lock()
	snapshot := make([]Measurement, 0, len(other.measurements))
	for _, m := range other.measurements {
		snapshot = append(snapshot, *m)
	}
	other.mu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, o := range snapshot {
		m, exists := p.measurements[o.Name]
		if !exists {
			c := o
			p.measurements[o.Name] = &c
			continue
		}
		m.Count += o.Count
		m.Samples += o.Samples
		m.Total += o.Total
		if o.Min < m.Min {
			m.Min = o.Min
		}
		if o.Max > m.Max {
			m.Max = o.Max
		}
	}
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.measurements = make(map[string]*Measurement)
}

// Report generates a performance report. Load is the share of real time
// spent processing at sampleRate.
func (p *Profiler) Report(sampleRate float64) string {
	p.mu.Lock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.Unlock()

	if len(names) == 0 {
		return "No measurements recorded"
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Performance Report:\n")
	for _, name := range names {
		m, _ := p.Get(name)
		fmt.Fprintf(&sb, "%s: count=%d avg=%v min=%v max=%v per-sample=%v load=%.3f%%\n",
			name, m.Count, m.Average(), m.Min, m.Max, m.PerSample(), m.Load(sampleRate)*100)
	}
	return sb.String()
}

// Average returns the average time per call.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// PerSample returns the average time spent per audio sample.
func (m Measurement) PerSample() time.Duration {
	if m.Samples == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Samples)
}

// Load returns processing time as a fraction of the real time the
// processed samples represent at sampleRate.
func (m Measurement) Load(sampleRate float64) float64 {
	if m.Samples == 0 || sampleRate <= 0 {
		return 0
	}
	realtime := float64(m.Samples) / sampleRate * float64(time.Second)
	return float64(m.Total) / realtime
}
