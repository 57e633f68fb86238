package process

import "github.com/justyntemme/cvarp/pkg/dsp"

// Port is one input jack carrying up to dsp.MaxChannels channels.
type Port struct {
	// Channels is how many channels the host connected; 0 means unpatched.
	Channels int
	Buffers  [dsp.MaxChannels][]float32
}

func (p *Port) allocate(size int) {
	for ch := range p.Buffers {
		p.Buffers[ch] = make([]float32, size)
	}
}

// Voltage returns channel ch at sample i. Channels that are not connected
// read 0V.
func (p *Port) Voltage(ch, i int) float32 {
	if ch < 0 || ch >= p.Channels || ch >= dsp.MaxChannels {
		return 0
	}
	buf := p.Buffers[ch]
	if i < 0 || i >= len(buf) {
		return 0
	}
	return buf[i]
}

// SetChannels sets the connected channel count, clamped to the supported
// polyphony.
func (p *Port) SetChannels(n int) {
	if n < 0 {
		n = 0
	} else if n > dsp.MaxChannels {
		n = dsp.MaxChannels
	}
	p.Channels = n
}

// Fill writes v to every sample of channel ch.
func (p *Port) Fill(ch int, v float32) {
	if ch < 0 || ch >= dsp.MaxChannels {
		return
	}
	dsp.Fill(p.Buffers[ch], v)
}

// Set writes v to sample i of channel ch.
func (p *Port) Set(ch, i int, v float32) {
	if ch < 0 || ch >= dsp.MaxChannels || i < 0 || i >= len(p.Buffers[ch]) {
		return
	}
	p.Buffers[ch][i] = v
}
