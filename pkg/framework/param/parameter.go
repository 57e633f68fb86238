package param

import (
	"math"
	"strconv"
	"sync/atomic"
)

// Parameter is one automatable control. The current value is kept
// normalized to [0, 1] and may be read from the audio thread without
// locking.
type Parameter struct {
	ID           uint32
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64 // normalized
	StepCount    int32
	Flags        uint32

	bits atomic.Uint64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Parameter flags.
const (
	CanAutomate uint32 = 1 << 0
	IsReadOnly  uint32 = 1 << 1
	IsList      uint32 = 1 << 2
	IsHidden    uint32 = 1 << 3
)

// GetValue returns the normalized value.
func (p *Parameter) GetValue() float64 {
	return math.Float64frombits(p.bits.Load())
}

// SetValue stores a normalized value, clamped to [0, 1]. NaN stores 0.
func (p *Parameter) SetValue(value float64) {
	p.bits.Store(math.Float64bits(clamp01(value)))
}

// GetPlainValue returns the value in plain units.
func (p *Parameter) GetPlainValue() float64 {
	return p.Denormalize(p.GetValue())
}

// SetPlainValue stores a value given in plain units.
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// Reset restores the default.
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// Bool reads a toggle.
func (p *Parameter) Bool() bool {
	return p.GetValue() >= 0.5
}

// Step returns the plain value rounded to a whole number.
func (p *Parameter) Step() int {
	return int(math.Round(p.GetPlainValue()))
}

// SetFormatter replaces the display and parse functions. Both work in
// plain units.
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.formatFunc, p.parseFunc = format, parse
}

// FormatValue renders a normalized value for display.
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(normalized)
	switch {
	case p.formatFunc != nil:
		return p.formatFunc(plain)
	case p.StepCount > 0:
		return strconv.FormatFloat(plain, 'f', 0, 64)
	}
	return strconv.FormatFloat(plain, 'f', 2, 64)
}

// ParseValue reads display text and returns the normalized value.
func (p *Parameter) ParseValue(str string) (float64, error) {
	parse := p.parseFunc
	if parse == nil {
		parse = parseFloat
	}
	plain, err := parse(str)
	if err != nil {
		return 0, err
	}
	return p.Normalize(plain), nil
}

// Normalize maps a plain value into [0, 1]. A degenerate range maps
// everything to 0.
func (p *Parameter) Normalize(plain float64) float64 {
	span := p.Max - p.Min
	if span <= 0 {
		return 0
	}
	return clamp01((plain - p.Min) / span)
}

// Denormalize maps [0, 1] back to plain units, snapping stepped
// parameters to whole steps.
func (p *Parameter) Denormalize(normalized float64) float64 {
	plain := p.Min + normalized*(p.Max-p.Min)
	if p.StepCount > 0 {
		return math.Round(plain)
	}
	return plain
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func parseFloat(str string) (float64, error) {
	return strconv.ParseFloat(str, 64)
}
