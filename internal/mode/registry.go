package mode

import (
	"fmt"
	"sync"

	"kassa/internal/errors"
)

// Registry maps mode names to factories. It is filled once while the
// application is wired and only read afterwards; there is no removal.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under a unique name.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return errors.NewInvalidInputError("mode name and factory are required", nil).
			WithContext("name", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("register %q: %w", name, errors.ErrDuplicateMode)
	}
	r.factories[name] = f
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register for static wiring, where a failure is a bug.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name.
func (r *Registry) Lookup(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	if !ok {
		return nil, errors.NewUnknownModeError(name)
	}
	return f, nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
