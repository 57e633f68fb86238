package arp

import "github.com/justyntemme/cvarp/pkg/dsp"

// Frame is one sample of engine input.
//
// Channels is the number of pitch lanes connected. GateChannels and
// SecondaryChannels describe their own inputs: a single channel is
// broadcast to every lane, and lanes past a polyphonic input's channel
// count read 0V.
type Frame struct {
	Channels          int
	GateChannels      int
	SecondaryChannels int

	Primary   [dsp.MaxChannels]float32
	Secondary [dsp.MaxChannels]float32
	Gate      [dsp.MaxChannels]float32

	Clock float32
	Reset float32
}

// Output is one sample of engine output.
type Output struct {
	Primary   float32
	Secondary float32
	Gate      float32
}

// lanes returns the usable lane count.
func (f *Frame) lanes() int {
	switch {
	case f.Channels <= 0:
		return 0
	case f.Channels > dsp.MaxChannels:
		return dsp.MaxChannels
	}
	return f.Channels
}

func (f *Frame) gate(ch int) float32 {
	return polyVoltage(&f.Gate, f.GateChannels, ch)
}

func (f *Frame) secondary(ch int) float32 {
	return polyVoltage(&f.Secondary, f.SecondaryChannels, ch)
}

func polyVoltage(v *[dsp.MaxChannels]float32, channels, ch int) float32 {
	if channels == dsp.Mono {
		return v[0]
	}
	if ch >= channels || ch >= dsp.MaxChannels {
		return 0
	}
	return v[ch]
}
