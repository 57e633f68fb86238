package arp

import (
	"math"
	"sync/atomic"

	"github.com/justyntemme/cvarp/pkg/dsp"
)

// Options are the user-facing switches of an Engine. Each option lives in
// its own atomic word, so a control goroutine may change them while the
// audio goroutine is processing.
type Options struct {
	hold        atomic.Bool
	resetMode   atomic.Uint32
	settleDelay atomic.Bool
	length      atomic.Int32
	refractory  atomic.Uint64 // float64 bits, seconds
}

// Config is a snapshot of Options taken once per sample.
type Config struct {
	Hold        bool
	ResetMode   ResetMode
	SettleDelay bool
	Length      int
	Refractory  float64 // seconds
}

// NewOptions returns options with hold off, immediate reset, no settle
// delay, no length limit and the default refractory window.
func NewOptions() *Options {
	o := &Options{}
	o.SetRefractory(dsp.DefaultRefractoryTime)
	return o
}

// Load returns a snapshot of every option.
func (o *Options) Load() Config {
	return Config{
		Hold:        o.hold.Load(),
		ResetMode:   ResetMode(o.resetMode.Load()),
		SettleDelay: o.settleDelay.Load(),
		Length:      int(o.length.Load()),
		Refractory:  math.Float64frombits(o.refractory.Load()),
	}
}

// Store writes every option from c.
func (o *Options) Store(c Config) {
	o.SetHold(c.Hold)
	o.SetResetMode(c.ResetMode)
	o.SetSettleDelay(c.SettleDelay)
	o.SetLength(c.Length)
	o.SetRefractory(c.Refractory)
}

// SetHold enables or disables hold.
func (o *Options) SetHold(on bool) {
	o.hold.Store(on)
}

// SetResetMode selects the reset behavior. Unknown modes fall back to
// ResetImmediate.
func (o *Options) SetResetMode(m ResetMode) {
	if m != ResetDeferred {
		m = ResetImmediate
	}
	o.resetMode.Store(uint32(m))
}

// SetSettleDelay enables or disables the settle window for new notes.
func (o *Options) SetSettleDelay(on bool) {
	o.settleDelay.Store(on)
}

// SetLength sets the pattern length in steps; zero means unlimited.
func (o *Options) SetLength(steps int) {
	if steps < 0 {
		steps = 0
	}
	if steps > math.MaxInt32 {
		steps = math.MaxInt32
	}
	o.length.Store(int32(steps))
}

// SetRefractory sets how long clock edges are ignored after an immediate
// reset, in seconds. The value is clamped to the supported range.
func (o *Options) SetRefractory(seconds float64) {
	if math.IsNaN(seconds) || seconds < dsp.MinRefractoryTime {
		seconds = dsp.MinRefractoryTime
	} else if seconds > dsp.MaxRefractoryTime {
		seconds = dsp.MaxRefractoryTime
	}
	o.refractory.Store(math.Float64bits(seconds))
}
