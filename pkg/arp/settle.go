package arp

import "github.com/justyntemme/cvarp/pkg/dsp"

// SettleSamples returns the settle window for a sample rate.
func SettleSamples(sampleRate float64) int {
	return dsp.SamplesFor(dsp.DefaultSettleTime, sampleRate)
}

// Sampler decides when a freshly gated lane's voltages are read.
//
// With a zero delay the values present on the trigger sample are taken.
// Otherwise reading waits until delay samples have elapsed, letting an
// upstream module finish slewing the CV.
type Sampler struct {
	delay  int
	frozen [dsp.MaxChannels]bool
}

// NewSampler creates a sampler with the given delay in samples.
func NewSampler(delay int) *Sampler {
	s := &Sampler{}
	s.SetDelay(delay)
	return s
}

// SetDelay sets the settle window in samples. Zero samples immediately.
func (s *Sampler) SetDelay(samples int) {
	if samples < 0 {
		samples = 0
	}
	s.delay = samples
}

// Delay returns the settle window in samples.
func (s *Sampler) Delay() int {
	return s.delay
}

// Arm starts a new lifetime for channel.
func (s *Sampler) Arm(channel int) {
	if channel >= 0 && channel < dsp.MaxChannels {
		s.frozen[channel] = false
	}
}

// Sample offers the raw voltages of channel, samplesSinceTrigger samples
// after its gate rose. It returns ok exactly once per armed lifetime, on
// the first call at or past the settle window; the caller keeps the
// returned pair for the rest of the note's life.
func (s *Sampler) Sample(channel int, rawPrimary, rawSecondary float32, samplesSinceTrigger int) (primary, secondary float32, ok bool) {
	if channel < 0 || channel >= dsp.MaxChannels || s.frozen[channel] {
		return 0, 0, false
	}
	if samplesSinceTrigger < s.delay {
		return 0, 0, false
	}
	s.frozen[channel] = true
	return dsp.Sanitize(rawPrimary), dsp.Sanitize(rawSecondary), true
}
