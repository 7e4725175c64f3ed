// Package state implements the persisted-state hooks. The engine keeps no
// persistent state: loading accepts and discards a stream, saving writes
// nothing.
package state

import (
	"fmt"
	"io"
)

// Manager accepts and ignores host state streams.
type Manager struct{}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Load drains the stream so hosts see it fully consumed. A nil reader is fine.
func (m *Manager) Load(r io.Reader) error {
	if r == nil {
		return nil
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return fmt.Errorf("state: drain: %w", err)
	}
	return nil
}

// Save writes nothing.
func (m *Manager) Save(w io.Writer) error {
	return nil
}
