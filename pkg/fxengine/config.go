package fxengine

import (
	"fmt"

	"github.com/justyntemme/fxroute/pkg/framework/debug"
	"github.com/justyntemme/fxroute/pkg/monitor"
)

// DispatchMode selects how routing parameter changes are applied.
type DispatchMode int

const (
	// DispatchIndependent applies each changed parameter on its own.
	DispatchIndependent DispatchMode = iota
	// DispatchLegacyCascade re-applies the routing parameters that follow a
	// changed slot or level parameter: delay slot, chorus slot, reverb
	// slot, delay level, reverb level, delay feedback.
	DispatchLegacyCascade
)

// String returns the flag spelling of the mode.
func (m DispatchMode) String() string {
	switch m {
	case DispatchIndependent:
		return "independent"
	case DispatchLegacyCascade:
		return "legacy"
	default:
		return fmt.Sprintf("DispatchMode(%d)", int(m))
	}
}

// Config configures an Engine.
type Config struct {
	Dispatch DispatchMode

	// DuckOnStart silences the first blocks after activation so power-up
	// transients from the collaborators never reach the output.
	DuckOnStart bool

	// Logger receives lifecycle messages and, while the print parameter
	// is on, one line per applied change. Nil discards everything.
	Logger *debug.Logger

	// Monitor receives one interleaved copy of every output block. Nil
	// disables monitoring.
	Monitor monitor.Sender

	// Collaborators. Nil selects the built-in engines.
	Modulation Modulation
	Delay      Delay
	Reverb     Reverb
}

// DefaultConfig returns the factory configuration.
func DefaultConfig() Config {
	return Config{
		Dispatch:    DispatchIndependent,
		DuckOnStart: true,
	}
}

func (c Config) validate() error {
	switch c.Dispatch {
	case DispatchIndependent, DispatchLegacyCascade:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDispatchMode, c.Dispatch)
	}
}
