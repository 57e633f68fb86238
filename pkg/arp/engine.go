package arp

import (
	"fmt"
	"math"

	"github.com/justyntemme/cvarp/pkg/dsp"
	"github.com/justyntemme/cvarp/pkg/dsp/trigger"
	"github.com/justyntemme/cvarp/pkg/framework/debug"
	"github.com/justyntemme/cvarp/pkg/framework/process"
)

// Engine is one arpeggiator instance. Process must only be called from a
// single goroutine; Options may be changed from anywhere.
type Engine struct {
	opts       *Options
	logger     *debug.Logger
	sampleRate float64

	capture Capture
	player  Player
	rhythm  Rhythm
	reset   ResetPolicy
	clock   trigger.Trigger
	resetIn trigger.Trigger

	settle     int
	refractory float64 // seconds the reset policy was last sized for

	out     Output
	latched bool

	frame Frame
}

// New creates an engine running at sampleRate. A nil opts gets defaults.
func New(sampleRate float64, opts *Options) (*Engine, error) {
	if opts == nil {
		opts = NewOptions()
	}
	e := &Engine{
		opts:   opts,
		logger: debug.Default(),
	}
	e.player.clear()
	e.rhythm.player = &e.player
	if err := e.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	e.logger.Debug("arpeggiator engine created at %.0f Hz", sampleRate)
	return e, nil
}

// SetLogger replaces the logger used for control-path messages.
func (e *Engine) SetLogger(l *debug.Logger) {
	if l != nil {
		e.logger = l
	}
}

// Options returns the options the engine reads every sample.
func (e *Engine) Options() *Options {
	return e.opts
}

// SampleRate returns the current sample rate.
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// SetSampleRate resizes the settle and refractory windows. Call it from
// the control path while audio is stopped.
func (e *Engine) SetSampleRate(sampleRate float64) error {
	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	e.sampleRate = sampleRate
	e.settle = SettleSamples(sampleRate)
	e.refractory = e.opts.Load().Refractory
	e.reset.SetRefractory(dsp.SamplesFor(e.refractory, sampleRate))
	e.logger.Debug("sample rate %.0f Hz: settle %d samples, reset suppress %d samples",
		sampleRate, e.settle, e.reset.Refractory())
	return nil
}

// Reset returns the engine to its freshly constructed state.
func (e *Engine) Reset() {
	e.capture.Clear()
	e.player.clear()
	e.rhythm.counter = 0
	e.reset.Clear()
	e.clock.Reset()
	e.resetIn.Reset()
	e.out = Output{}
	e.latched = false
	e.logger.Debug("arpeggiator engine reset")
}

// Output returns the most recent output sample.
func (e *Engine) Output() Output {
	return e.out
}

// Sequence returns the captured notes in play order.
func (e *Engine) Sequence() *Sequence {
	return e.capture.Sequence()
}

// Pointer returns the play pointer, or -1 when rewound or empty.
func (e *Engine) Pointer() int {
	return e.player.Pointer()
}

// State returns the play pointer state.
func (e *Engine) State() State {
	return e.player.State(e.capture.Sequence())
}

// Process runs one sample.
func (e *Engine) Process(f *Frame) Output {
	cfg := e.opts.Load()
	e.configure(cfg)
	e.reset.Tick()

	clockEdge := e.clock.Process(f.Clock)
	resetEdge := e.resetIn.Process(f.Reset)
	seq := e.capture.Sequence()

	changed := e.capture.Update(f, cfg.Hold, e.player.Channel())
	if !cfg.Hold {
		changed = e.capture.PruneHeld(-1) || changed
	}
	if changed {
		e.player.Rebuilt(seq)
	}
	if seq.Len() == 0 {
		e.latched = false
		e.out.Primary, e.out.Secondary = dsp.RestVoltage, dsp.RestVoltage
	}

	moved := false
	if resetEdge == trigger.Rising && e.reset.Trigger(cfg.ResetMode) {
		e.play(e.rhythm.Restart(seq))
		moved = true
	}
	if clockEdge == trigger.Rising && !e.reset.Absorb() {
		if e.reset.TakeQueued() {
			e.play(e.rhythm.Restart(seq))
		} else {
			e.play(e.rhythm.Clock(seq))
		}
		moved = true
	}
	if moved && e.capture.PruneHeld(e.player.Channel()) {
		e.player.Rebuilt(seq)
	}

	if e.latched && e.clock.High() && seq.Len() > 0 {
		e.out.Gate = dsp.GateHigh
	} else {
		e.out.Gate = dsp.GateLow
	}
	return e.out
}

// ProcessBlock runs every sample of ctx, reading its input ports and
// writing its output buffers.
func (e *Engine) ProcessBlock(ctx *process.Context) {
	f := &e.frame
	f.Channels = ctx.CV.Channels
	f.GateChannels = ctx.Gate.Channels
	f.SecondaryChannels = ctx.CV2.Channels

	n := ctx.NumSamples()
	for i := 0; i < n; i++ {
		for ch := 0; ch < dsp.MaxChannels; ch++ {
			f.Primary[ch] = ctx.CV.Voltage(ch, i)
			f.Secondary[ch] = ctx.CV2.Voltage(ch, i)
			f.Gate[ch] = ctx.Gate.Voltage(ch, i)
		}
		f.Clock = ctx.Clock.Voltage(0, i)
		f.Reset = ctx.Reset.Voltage(0, i)

		out := e.Process(f)
		ctx.OutCV[i] = out.Primary
		ctx.OutCV2[i] = out.Secondary
		ctx.OutGate[i] = out.Gate
	}
}

func (e *Engine) configure(cfg Config) {
	if cfg.SettleDelay {
		e.capture.sampler.SetDelay(e.settle)
	} else {
		e.capture.sampler.SetDelay(0)
	}
	e.rhythm.SetLength(cfg.Length)
	if cfg.Refractory != e.refractory {
		e.refractory = cfg.Refractory
		e.reset.SetRefractory(dsp.SamplesFor(cfg.Refractory, e.sampleRate))
	}
}

// play latches the selected note when ok, or lets the gate fall.
func (e *Engine) play(ok bool) {
	if !ok {
		e.latched = false
		return
	}
	if note, found := e.player.Selected(e.capture.Sequence()); found {
		e.out.Primary = note.Primary
		e.out.Secondary = note.Secondary
		e.latched = true
	}
}
