package arp

import (
	"fmt"

	"github.com/justyntemme/cvarp/pkg/dsp"
	"github.com/justyntemme/cvarp/pkg/framework/bus"
	"github.com/justyntemme/cvarp/pkg/framework/debug"
	"github.com/justyntemme/cvarp/pkg/framework/param"
	"github.com/justyntemme/cvarp/pkg/framework/plugin"
	"github.com/justyntemme/cvarp/pkg/framework/process"
)

// Parameter IDs
const (
	ParamHold = iota
	ParamResetMode
	ParamGateDelay
	ParamLength
	ParamResetSuppress
)

// MaxLength is the longest pattern the Length parameter allows.
const MaxLength = 64

// ModuleInfo describes the arpeggiator to a host.
var ModuleInfo = plugin.Info{
	ID:      "cvarp-arpeggiator",
	Name:    "Arpeggiator",
	Version: "1.0.0",
	Vendor:  "cvarp",
	Tags:    []string{"Arpeggiator", "Polyphonic", "Sequencer"},
}

// Jacks returns the arpeggiator panel layout. The process.Context ports
// follow the same order.
func Jacks() *bus.Configuration {
	return bus.NewConfiguration(
		bus.Info{Name: "CV", Direction: bus.DirectionInput, Signal: bus.SignalCV, Channels: dsp.MaxChannels},
		bus.Info{Name: "CV2", Direction: bus.DirectionInput, Signal: bus.SignalCV, Channels: dsp.MaxChannels},
		bus.Info{Name: "Gate", Direction: bus.DirectionInput, Signal: bus.SignalGate, Channels: dsp.MaxChannels},
		bus.Info{Name: "Clock", Direction: bus.DirectionInput, Signal: bus.SignalTrigger, Channels: dsp.Mono},
		bus.Info{Name: "Reset", Direction: bus.DirectionInput, Signal: bus.SignalTrigger, Channels: dsp.Mono},
		bus.Info{Name: "CV Out", Direction: bus.DirectionOutput, Signal: bus.SignalCV, Channels: dsp.Mono},
		bus.Info{Name: "CV2 Out", Direction: bus.DirectionOutput, Signal: bus.SignalCV, Channels: dsp.Mono},
		bus.Info{Name: "Gate Out", Direction: bus.DirectionOutput, Signal: bus.SignalGate, Channels: dsp.Mono},
	)
}

// Module is the host-facing arpeggiator: parameters, state and
// block processing around an Engine.
//
// The parameters are the only source of option values. Each block copies
// them into the engine options, so writes made through Engine().Options()
// do not survive the next parameter change.
type Module struct {
	*plugin.BaseProcessor

	engine *Engine
	opts   *Options
	last   Config
}

// NewModule creates an arpeggiator module with default parameters.
func NewModule() *Module {
	m := &Module{
		BaseProcessor: plugin.NewBaseProcessor(ModuleInfo),
		opts:          NewOptions(),
	}
	m.SetBuses(Jacks())

	if err := m.Parameters().Add(
		param.SwitchParameter(ParamHold, "Hold", false).Build(),
		param.Choice(ParamResetMode, "Reset Mode", []param.ChoiceOption{
			{Value: float64(ResetImmediate), Name: "Immediate", Aliases: []string{"classic"}},
			{Value: float64(ResetDeferred), Name: "Deferred", Aliases: []string{"queued", "nord"}},
		}).Build(),
		param.SwitchParameter(ParamGateDelay, "Gate Delay", false).Build(),
		param.StepsParameter(ParamLength, "Length", MaxLength).Build(),
		param.TimeParameter(ParamResetSuppress, "Reset Suppress",
			dsp.MinRefractoryTime*1000, dsp.MaxRefractoryTime*1000, dsp.DefaultRefractoryTime*1000).Build(),
	); err != nil {
		panic(fmt.Sprintf("%s: %v", ModuleInfo.ID, err))
	}
	m.last = m.opts.Load()
	m.syncParams()

	m.OnInitialize(m.initialize)
	m.OnReset(func() {
		if m.engine != nil {
			m.engine.Reset()
		}
	})
	m.OnLoad(func() {
		m.syncParams()
		debug.Info("%s: state loaded (%s)", ModuleInfo.ID, describe(m.last))
	})
	return m
}

// Engine returns the running engine, or nil before Initialize.
func (m *Module) Engine() *Engine {
	return m.engine
}

// Config returns the option values the engine is running with.
func (m *Module) Config() Config {
	return m.opts.Load()
}

func (m *Module) initialize(sampleRate float64, maxBlockSize int) error {
	if m.engine == nil {
		e, err := New(sampleRate, m.opts)
		if err != nil {
			return err
		}
		m.engine = e
	} else if err := m.engine.SetSampleRate(sampleRate); err != nil {
		return err
	}
	m.syncParams()
	debug.Info("%s: initialized at %.0f Hz, block %d", ModuleInfo.ID, sampleRate, maxBlockSize)
	return nil
}

// ProcessAudio syncs parameters into the engine options and runs one block.
func (m *Module) ProcessAudio(ctx *process.Context) {
	if m.engine == nil {
		ctx.Clear()
		return
	}
	m.syncParams()
	m.engine.ProcessBlock(ctx)
}

// syncParams copies parameter values into the engine options when any
// of them changed since the last call.
func (m *Module) syncParams() {
	read := func(id uint32) float64 {
		if p := m.Parameters().Get(id); p != nil {
			return p.GetPlainValue()
		}
		return 0
	}

	cfg := Config{
		Hold:        read(ParamHold) >= 0.5,
		ResetMode:   ResetMode(read(ParamResetMode) + 0.5),
		SettleDelay: read(ParamGateDelay) >= 0.5,
		Length:      int(read(ParamLength) + 0.5),
		Refractory:  read(ParamResetSuppress) / 1000,
	}
	if cfg == m.last {
		return
	}
	m.opts.Store(cfg)
	m.last = cfg
}

func describe(c Config) string {
	return fmt.Sprintf("hold %s, reset %s, gate delay %s, length %s, suppress %s",
		param.OnOffFormatter(boolValue(c.Hold)), c.ResetMode,
		param.OnOffFormatter(boolValue(c.SettleDelay)),
		param.StepsFormatter(float64(c.Length)), param.TimeFormatter(c.Refractory*1000))
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
