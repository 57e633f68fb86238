package param

import (
	"fmt"
	"strings"
	"sync"
)

// Registry holds a module's parameters in registration order
type Registry struct {
	mu     sync.RWMutex
	byID   map[uint32]*Parameter
	params []*Parameter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byID: make(map[uint32]*Parameter)}
}

// Add registers parameters. Nothing is added when any of them reuses an
// ID or a name already present.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make(map[uint32]bool, len(params))
	for _, p := range params {
		if _, exists := r.byID[p.ID]; exists || ids[p.ID] {
			return fmt.Errorf("parameter ID %d already registered", p.ID)
		}
		if r.lookup(p.Name) != nil {
			return fmt.Errorf("parameter %q already registered", p.Name)
		}
		ids[p.ID] = true
	}
	for _, p := range params {
		r.byID[p.ID] = p
		r.params = append(r.params, p)
	}
	return nil
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

// Lookup finds a parameter by name or short name, ignoring case
func (r *Registry) Lookup(name string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(name)
}

func (r *Registry) lookup(name string) *Parameter {
	name = strings.TrimSpace(name)
	for _, p := range r.params {
		if strings.EqualFold(p.Name, name) || strings.EqualFold(p.ShortName, name) {
			return p
		}
	}
	return nil
}

// GetByIndex retrieves a parameter by registration index
func (r *Registry) GetByIndex(index int32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || int(index) >= len(r.params) {
		return nil
	}
	return r.params[index]
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int32(len(r.params))
}

// All returns all parameters in registration order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Parameter(nil), r.params...)
}

// ResetAll restores every parameter to its default
func (r *Registry) ResetAll() {
	for _, p := range r.All() {
		p.Reset()
	}
}
