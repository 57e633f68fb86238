// Package plugin provides base processor functionality to reduce boilerplate in CV modules.
package plugin

import (
	"fmt"
	"io"

	"github.com/justyntemme/cvarp/pkg/framework/bus"
	"github.com/justyntemme/cvarp/pkg/framework/param"
	"github.com/justyntemme/cvarp/pkg/framework/process"
	"github.com/justyntemme/cvarp/pkg/framework/state"
)

// Processor is implemented by every module the host can run
type Processor interface {
	Initialize(sampleRate float64, maxBlockSize int) error
	Parameters() *param.Registry
	Buses() *bus.Configuration
	SetActive(active bool) error
	ProcessAudio(ctx *process.Context)
}

// BaseProcessor provides common functionality for module processors
type BaseProcessor struct {
	Info Info

	params       *param.Registry
	buses        *bus.Configuration
	state        *state.Manager
	sampleRate   float64
	maxBlockSize int

	// Optional callbacks for customization
	onInitialize func(sampleRate float64, maxBlockSize int) error
	onSetActive  func(active bool) error
	onReset      func()
	onLoad       func()
}

// NewBaseProcessor creates a new base processor for the given module
func NewBaseProcessor(info Info) *BaseProcessor {
	b := &BaseProcessor{
		Info:   info,
		params: param.NewRegistry(),
		buses:  bus.NewConfiguration(),
	}

	// Initialize state manager with parameter registry
	b.state = state.NewManager(b.params)

	return b
}

// Initialize implements the Processor interface
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("initialize %s: sample rate %v must be positive", b.Info.ID, sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("initialize %s: block size %d must be positive", b.Info.ID, maxBlockSize)
	}
	if err := b.buses.Validate(); err != nil {
		return fmt.Errorf("initialize %s: %w", b.Info.ID, err)
	}
	b.sampleRate = sampleRate
	b.maxBlockSize = maxBlockSize

	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxBlockSize)
	}

	return nil
}

// Parameters returns the parameter registry for adding parameters
func (b *BaseProcessor) Parameters() *param.Registry {
	return b.params
}

// Buses returns the jack layout
func (b *BaseProcessor) Buses() *bus.Configuration {
	return b.buses
}

// SetBuses replaces the jack layout
func (b *BaseProcessor) SetBuses(c *bus.Configuration) {
	if c != nil {
		b.buses = c
	}
}

// SetActive implements the Processor interface
func (b *BaseProcessor) SetActive(active bool) error {
	if !active && b.onReset != nil {
		b.onReset()
	}

	if b.onSetActive != nil {
		return b.onSetActive(active)
	}

	return nil
}

// SampleRate returns the current sample rate
func (b *BaseProcessor) SampleRate() float64 {
	return b.sampleRate
}

// MaxBlockSize returns the block capacity negotiated in Initialize
func (b *BaseProcessor) MaxBlockSize() int {
	return b.maxBlockSize
}

// NewContext allocates a process context sized for this processor
func (b *BaseProcessor) NewContext() *process.Context {
	ctx := process.NewContext(b.maxBlockSize, b.params)
	ctx.SampleRate = b.sampleRate
	return ctx
}

// SaveState writes every parameter value to w
func (b *BaseProcessor) SaveState(w io.Writer) error {
	if err := b.state.Save(w); err != nil {
		return fmt.Errorf("save %s state: %w", b.Info.ID, err)
	}
	return nil
}

// LoadState restores parameter values from r
func (b *BaseProcessor) LoadState(r io.Reader) error {
	if err := b.state.Load(r); err != nil {
		return fmt.Errorf("load %s state: %w", b.Info.ID, err)
	}
	if b.onLoad != nil {
		b.onLoad()
	}
	return nil
}

// OnInitialize sets a callback for initialization
func (b *BaseProcessor) OnInitialize(fn func(sampleRate float64, maxBlockSize int) error) {
	b.onInitialize = fn
}

// OnSetActive sets a callback for activation/deactivation
func (b *BaseProcessor) OnSetActive(fn func(active bool) error) {
	b.onSetActive = fn
}

// OnReset sets a callback for when the processor should reset its state
func (b *BaseProcessor) OnReset(fn func()) {
	b.onReset = fn
}

// OnLoad sets a callback run after parameter state was restored
func (b *BaseProcessor) OnLoad(fn func()) {
	b.onLoad = fn
}
