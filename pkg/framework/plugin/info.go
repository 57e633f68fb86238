package plugin

import (
	"fmt"
	"strings"
)

// Info contains module metadata
type Info struct {
	ID      string   // Unique module slug (e.g., "cvarp-arpeggiator")
	Name    string   // Display name
	Version string   // Semantic version (e.g., "1.0.0")
	Vendor  string   // Company/developer name
	Tags    []string // Host browser tags (e.g., "Arpeggiator", "Polyphonic")
}

// Validate checks that the metadata can be registered with a host
func (i Info) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("module ID is empty")
	}
	if strings.ContainsAny(i.ID, " \t\n/") {
		return fmt.Errorf("module ID %q contains whitespace or '/'", i.ID)
	}
	if i.Name == "" {
		return fmt.Errorf("module %q has no name", i.ID)
	}
	if strings.Count(i.Version, ".") != 2 {
		return fmt.Errorf("module %q version %q is not MAJOR.MINOR.PATCH", i.ID, i.Version)
	}
	return nil
}

// HasTag reports whether the module carries tag (case-insensitive)
func (i Info) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
