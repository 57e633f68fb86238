// Package trigger turns continuous gate, clock and reset voltages into
// discrete transition events.
package trigger

import "github.com/justyntemme/cvarp/pkg/dsp"

// Edge is the transition observed between two consecutive samples.
type Edge int

const (
	// None means the signal stayed on the same side of the threshold.
	None Edge = iota
	// Rising means the signal crossed from low to high.
	Rising
	// Falling means the signal crossed from high to low.
	Falling
)

// String returns the string representation of the edge.
func (e Edge) String() string {
	switch e {
	case None:
		return "none"
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	default:
		return "unknown"
	}
}

// Detect compares a previous and current sample against threshold.
func Detect(prev, cur, threshold float32) Edge {
	wasHigh := dsp.Sanitize(prev) >= threshold
	isHigh := dsp.Sanitize(cur) >= threshold
	switch {
	case isHigh && !wasHigh:
		return Rising
	case !isHigh && wasHigh:
		return Falling
	}
	return None
}

// Trigger owns the previous sample of one signal. The zero value starts
// low, so a signal that is already high on the first sample reports
// Rising.
type Trigger struct {
	prev float32
}

// Process feeds one sample and returns the edge it produced. The stored
// previous sample is updated whether or not an edge fired.
func (t *Trigger) Process(v float32) Edge {
	e := Detect(t.prev, v, dsp.GateThreshold)
	t.prev = dsp.Sanitize(v)
	return e
}

// High reports whether the last processed sample was high.
func (t *Trigger) High() bool {
	return t.prev >= dsp.GateThreshold
}

// Reset forgets the previous sample.
func (t *Trigger) Reset() {
	t.prev = 0
}
