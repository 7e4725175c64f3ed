package param

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrDuplicateID is returned when a parameter ID is registered twice.
var ErrDuplicateID = errors.New("duplicate parameter id")

// Registry manages parameters in registration order.
type Registry struct {
	params map[uint32]*Parameter
	order  []uint32 // Maintain order for indexed access
	mu     sync.RWMutex
}

// NewRegistry creates a new parameter registry.
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[uint32]*Parameter),
		order:  make([]uint32, 0),
	}
}

// Add registers parameters. Nothing is added if any ID is already taken.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if _, exists := r.params[p.ID]; exists {
			return fmt.Errorf("%w: %d (%s)", ErrDuplicateID, p.ID, p.Name)
		}
	}
	for _, p := range params {
		r.params[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return nil
}

// Get retrieves a parameter by ID.
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// Lookup finds a parameter by name or short name, ignoring case.
func (r *Registry) Lookup(name string) (*Parameter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		p := r.params[id]
		if strings.EqualFold(p.Name, name) || strings.EqualFold(p.ShortName, name) {
			return p, true
		}
	}
	return nil, false
}

// Count returns the number of parameters.
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int32(len(r.order))
}

// All returns all parameters in order.
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}
	return result
}
