// Package plugin carries the identity and shared plumbing of the engine
// as a host component.
package plugin

import (
	"fmt"

	"github.com/google/uuid"
)

// namespace for all derived class IDs.
var namespace = uuid.MustParse("6f3c1e0a-5b2d-4c8e-9a71-2d4f8b6e0c13")

// Info contains component metadata.
type Info struct {
	ID       string // Reverse-DNS identifier, e.g. "com.example.fxroute"
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Category, e.g. "Fx"
}

// UID derives a stable processor class ID from the string ID.
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(namespace, []byte(i.ID))
}

// ControllerUID derives the controller class ID. It never equals UID.
func (i Info) ControllerUID() [16]byte {
	return uuid.NewSHA1(namespace, []byte(i.ID+"/controller"))
}

// ValidateUID checks that the ID is set and yields a version 5 UUID.
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return fmt.Errorf("plugin info: empty ID")
	}
	if v := uuid.UUID(i.UID()).Version(); v != 5 {
		return fmt.Errorf("plugin info: unexpected UUID version %d", v)
	}
	return nil
}

// String formats the processor class ID in canonical form.
func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s)", i.Name, i.Version, uuid.UUID(i.UID()))
}
