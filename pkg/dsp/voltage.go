package dsp

import "math"

// Sanitize maps a raw input voltage onto a usable value.
// NaN reads as 0V and infinities clamp to ±MaxVoltage.
func Sanitize(v float32) float32 {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return 0
	case f > MaxVoltage:
		return MaxVoltage
	case f < -MaxVoltage:
		return -MaxVoltage
	}
	return v
}

// IsHigh reports whether a gate-like voltage is asserted.
func IsHigh(v float32) bool {
	return Sanitize(v) >= GateThreshold
}

// SamplesFor converts a duration in seconds to a whole number of samples,
// never less than one.
func SamplesFor(seconds, sampleRate float64) int {
	n := int(math.Round(seconds * sampleRate))
	if n < 1 {
		return 1
	}
	return n
}
