// Package bus describes the jacks a module exposes to a host.
package bus

import (
	"fmt"

	"github.com/justyntemme/cvarp/pkg/dsp"
)

// Direction represents the jack direction
type Direction int32

const (
	// DirectionInput represents an input jack
	DirectionInput Direction = 0
	// DirectionOutput represents an output jack
	DirectionOutput Direction = 1
)

// Signal is the kind of voltage a jack carries
type Signal int32

const (
	// SignalCV is a continuous control voltage
	SignalCV Signal = iota
	// SignalGate is held high for as long as something is on
	SignalGate
	// SignalTrigger only matters on its rising edge
	SignalTrigger
)

// String returns the string representation of the signal.
func (s Signal) String() string {
	switch s {
	case SignalCV:
		return "cv"
	case SignalGate:
		return "gate"
	case SignalTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// Info contains jack configuration
type Info struct {
	Name      string
	Direction Direction
	Signal    Signal
	Channels  int32 // most channels the jack accepts
}

// Poly reports whether the jack carries more than one channel.
func (i Info) Poly() bool {
	return i.Channels > 1
}

// Configuration is the ordered set of jacks of a module
type Configuration struct {
	jacks []Info
}

// NewConfiguration creates a configuration from jacks, in panel order
func NewConfiguration(jacks ...Info) *Configuration {
	return &Configuration{jacks: jacks}
}

// GetBusCount returns the number of jacks in a direction
func (c *Configuration) GetBusCount(direction Direction) int32 {
	count := int32(0)
	for _, j := range c.jacks {
		if j.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns the index-th jack in a direction, or nil
func (c *Configuration) GetBusInfo(direction Direction, index int32) *Info {
	n := int32(0)
	for i := range c.jacks {
		if c.jacks[i].Direction == direction {
			if n == index {
				return &c.jacks[i]
			}
			n++
		}
	}
	return nil
}

// Find returns the jack called name
func (c *Configuration) Find(name string) (Info, bool) {
	for _, j := range c.jacks {
		if j.Name == name {
			return j, true
		}
	}
	return Info{}, false
}

// All returns every jack in panel order
func (c *Configuration) All() []Info {
	return append([]Info(nil), c.jacks...)
}

// Validate checks names are unique and channel counts are supported
func (c *Configuration) Validate() error {
	seen := make(map[string]bool, len(c.jacks))
	for _, j := range c.jacks {
		if j.Name == "" {
			return fmt.Errorf("jack without a name")
		}
		if seen[j.Name] {
			return fmt.Errorf("duplicate jack %q", j.Name)
		}
		seen[j.Name] = true
		if j.Channels < 1 || j.Channels > dsp.MaxChannels {
			return fmt.Errorf("jack %q: %d channels, want 1..%d", j.Name, j.Channels, dsp.MaxChannels)
		}
	}
	return nil
}
