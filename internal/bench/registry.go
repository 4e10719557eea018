package bench

import (
	"fmt"
	"sort"
)

// Factory builds a ready-to-evaluate facade.
type Factory func() (*Facade, error)

type entry struct {
	desc    Descriptor
	factory Factory
}

// Registry maps benchmark names to facade factories. It is filled before
// use and only read afterwards, so lookups need no locking.
type Registry struct {
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds the benchmark described by desc under desc.Name.
func (r *Registry) Register(desc Descriptor, factory Factory) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	if factory == nil {
		return fmt.Errorf("benchmark %s: nil factory", desc.Name)
	}
	if _, ok := r.entries[desc.Name]; ok {
		return fmt.Errorf("benchmark %s already registered", desc.Name)
	}
	r.entries[desc.Name] = entry{desc: desc.Clone(), factory: factory}
	return nil
}

// Create builds a new facade on every call.
func (r *Registry) Create(name string) (*Facade, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, &UnknownBenchmarkError{Name: name}
	}
	return e.factory()
}

func (r *Registry) Descriptor(name string) (Descriptor, error) {
	e, ok := r.entries[name]
	if !ok {
		return Descriptor{}, &UnknownBenchmarkError{Name: name}
	}
	return e.desc.Clone(), nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
