// Package state saves and restores module parameter values.
//
// A state blob is a fixed header followed by one (id, normalized value)
// entry per parameter, all little endian:
//
//	magic   [6]byte  "CVARP1"
//	version uint32
//	count   int32
//	entries [count]{id uint32; value float64}
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/justyntemme/cvarp/pkg/framework/param"
)

const magic = "CVARP1"

// maxEntries bounds the entry count read from a blob.
const maxEntries = 1 << 16

// ErrInvalidFormat is returned when a state blob is not one this package
// wrote.
var ErrInvalidFormat = errors.New("invalid state format")

type header struct {
	Version uint32
	Count   int32
}

type entry struct {
	ID    uint32
	Value float64
}

// Manager saves and restores the parameters of one registry
type Manager struct {
	version  uint32
	registry *param.Registry
}

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  1,
		registry: registry,
	}
}

// Version returns the format version written by Save
func (m *Manager) Version() uint32 {
	return m.version
}

// Save writes every parameter's normalized value to w
func (m *Manager) Save(w io.Writer) error {
	params := m.registry.All()

	h := header{Version: m.version, Count: int32(len(params))}
	entries := make([]entry, len(params))
	for i, p := range params {
		entries[i] = entry{ID: p.ID, Value: p.GetValue()}
	}

	if _, err := io.WriteString(w, magic); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, entries); err != nil {
		return fmt.Errorf("write parameters: %w", err)
	}
	return nil
}

// Load restores parameter values from r. Entries for unknown parameters
// and NaN values are skipped; nothing is applied unless the whole blob
// reads cleanly.
func (m *Manager) Load(r io.Reader) error {
	tag := make([]byte, len(magic))
	if _, err := io.ReadFull(r, tag); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if string(tag) != magic {
		return ErrInvalidFormat
	}

	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if h.Version > m.version {
		return fmt.Errorf("state version %d is newer than supported version %d", h.Version, m.version)
	}
	if h.Count < 0 || h.Count > maxEntries {
		return fmt.Errorf("%w: parameter count %d", ErrInvalidFormat, h.Count)
	}

	entries := make([]entry, h.Count)
	if err := binary.Read(r, binary.LittleEndian, entries); err != nil {
		return fmt.Errorf("read parameters: %w", err)
	}

	for _, e := range entries {
		if math.IsNaN(e.Value) {
			continue
		}
		if p := m.registry.Get(e.ID); p != nil {
			p.SetValue(e.Value)
		}
	}
	return nil
}
