// Package dsp provides shared control-voltage constants and helpers.
package dsp

// Common control-voltage constants used throughout the engine and plugins.
const (
	// Voltage levels
	GateHigh      = 10.0 // Asserted gate output
	GateLow       = 0.0  // De-asserted gate output
	GateThreshold = 1.0  // Gate/clock/reset inputs read high at or above this
	RestVoltage   = 0.0  // CV output while no note is latched

	// MaxVoltage bounds infinite inputs; finite voltages pass through.
	MaxVoltage = 1e6

	// Polyphony
	MaxChannels = 16
	Mono        = 1

	// Common sample rates
	SampleRate32k  = 32000.0
	SampleRate44k1 = 44100.0
	SampleRate48k  = 48000.0

	// Smallest block a process context accepts
	MinBufferSize = 1

	// Timing windows (in seconds)
	DefaultSettleTime     = 0.0001 // 100µs CV settle window after a gate
	DefaultRefractoryTime = 0.001  // 1ms clock suppression after a reset
	MinRefractoryTime     = 0.0001
	MaxRefractoryTime     = 0.010
)
