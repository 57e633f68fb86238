// Package process provides the per-block processing context for CV modules.
package process

import (
	"github.com/justyntemme/cvarp/pkg/dsp"
	"github.com/justyntemme/cvarp/pkg/framework/param"
)

// Context carries one block of port voltages with zero allocations.
// Buffers are sized once in NewContext; the host fills the input ports,
// sets the block length and reads the outputs back.
type Context struct {
	CV    Port // Polyphonic pitch
	CV2   Port // Polyphonic auxiliary CV
	Gate  Port // Mono or polyphonic gate
	Clock Port // Mono
	Reset Port // Mono

	OutCV   []float32
	OutCV2  []float32
	OutGate []float32

	SampleRate float64

	numSamples int
	maxSamples int

	// Parameter access
	params *param.Registry
}

// NewContext creates a new process context with pre-allocated buffers
func NewContext(maxBlockSize int, params *param.Registry) *Context {
	if maxBlockSize < dsp.MinBufferSize {
		maxBlockSize = dsp.MinBufferSize
	}
	c := &Context{
		OutCV:      make([]float32, maxBlockSize),
		OutCV2:     make([]float32, maxBlockSize),
		OutGate:    make([]float32, maxBlockSize),
		numSamples: maxBlockSize,
		maxSamples: maxBlockSize,
		params:     params,
	}
	for _, p := range c.ports() {
		p.allocate(maxBlockSize)
	}
	c.Clock.Channels = dsp.Mono
	c.Reset.Channels = dsp.Mono
	return c
}

// Param returns the current value of a parameter (0-1 normalized)
func (c *Context) Param(id uint32) float64 {
	if c.params == nil {
		return 0
	}
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter
func (c *Context) ParamPlain(id uint32) float64 {
	if c.params == nil {
		return 0
	}
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	return c.numSamples
}

// MaxSamples returns the block capacity
func (c *Context) MaxSamples() int {
	return c.maxSamples
}

// SetNumSamples sets the current block length, clamped to the capacity
func (c *Context) SetNumSamples(n int) {
	if n < 0 {
		n = 0
	} else if n > c.maxSamples {
		n = c.maxSamples
	}
	c.numSamples = n
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	dsp.Clear(c.OutCV)
	dsp.Clear(c.OutCV2)
	dsp.Clear(c.OutGate)
}

func (c *Context) ports() []*Port {
	return []*Port{&c.CV, &c.CV2, &c.Gate, &c.Clock, &c.Reset}
}
