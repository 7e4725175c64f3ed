package plugin

import (
	"io"

	"github.com/justyntemme/fxroute/pkg/framework/bus"
	"github.com/justyntemme/fxroute/pkg/framework/param"
	"github.com/justyntemme/fxroute/pkg/framework/state"
)

// Base bundles the identity, parameter surface, port layout and state
// hooks shared by host-facing components.
type Base struct {
	Info   Info
	params *param.Registry
	buses  *bus.Configuration
	state  *state.Manager
}

// NewBase creates a component base.
func NewBase(info Info, buses *bus.Configuration) *Base {
	return &Base{
		Info:   info,
		params: param.NewRegistry(),
		buses:  buses,
		state:  state.NewManager(),
	}
}

// Parameters returns the parameter registry for configuration.
func (b *Base) Parameters() *param.Registry {
	return b.params
}

// Buses returns the port layout.
func (b *Base) Buses() *bus.Configuration {
	return b.buses
}

// SetState hands a host state stream to the state manager.
func (b *Base) SetState(r io.Reader) error {
	return b.state.Load(r)
}

// GetState asks the state manager to write the component state.
func (b *Base) GetState(w io.Writer) error {
	return b.state.Save(w)
}
