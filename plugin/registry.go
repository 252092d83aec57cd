package plugin

import (
	"errors"
	"fmt"
	"slices"
)

// Factory builds one effect instance.
type Factory func() (Effect, error)

var (
	// ErrUnknownEffect is returned when no factory is registered for a name.
	ErrUnknownEffect = errors.New("plugin: unknown effect")

	errDuplicateEffect = errors.New("plugin: duplicate effect")
)

// Registry maps effect names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("plugin: empty effect name")
	}
	if factory == nil {
		return errors.New("plugin: nil factory")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory for name, or nil.
func (r *Registry) Lookup(name string) Factory {
	return r.factories[name]
}

// New builds an effect by name.
func (r *Registry) New(name string) (Effect, error) {
	f := r.factories[name]
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	e, err := f()
	if err != nil {
		return nil, fmt.Errorf("plugin: build %s: %w", name, err)
	}
	return e, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultRegistry returns a registry with the built-in "delay" and
// "reverb" effects.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(DelayName, func() (Effect, error) { return NewDelay() })
	r.MustRegister(ReverbName, func() (Effect, error) { return NewReverb() })
	return r
}
