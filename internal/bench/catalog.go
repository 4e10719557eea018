package bench

import (
	"log/slog"

	"github.com/san-kum/dynbench/internal/locomotion"
)

// Catalog lists the built-in benchmarks. Dimensionality is the size of the
// task's flattened linear policy.
func Catalog() []Descriptor {
	return []Descriptor{
		Box("swimmer", 16, -1, 1, Continuous),
		Box("humanoid", 6392, -1, 1, Continuous),
		Box("ant", 888, -1, 1, Continuous),
		Box("hopper", 33, -1.4, 1.4, Continuous),
		Box("walker", 102, -1.8, 0.9, Continuous),
		Box("cheetah", 102, -1, 1, Continuous),
	}
}

// CatalogEntry returns the built-in descriptor called name.
func CatalogEntry(name string) (Descriptor, error) {
	for _, d := range Catalog() {
		if d.Name == name {
			return d, nil
		}
	}
	return Descriptor{}, &UnknownBenchmarkError{Name: name}
}

// SimOptionsFunc returns the rollout settings for one benchmark.
type SimOptionsFunc func(name string) locomotion.Options

// Default returns a registry holding every catalog benchmark backed by the
// locomotion simulator. A nil simOpts uses locomotion.DefaultOptions.
func Default(opts Options, simOpts SimOptionsFunc) *Registry {
	if simOpts == nil {
		simOpts = func(string) locomotion.Options { return locomotion.DefaultOptions() }
	}

	r := NewRegistry()
	for _, desc := range Catalog() {
		desc := desc
		factory := LocomotionFactory(desc.Name, simOpts(desc.Name))
		err := r.Register(desc, func() (*Facade, error) {
			return NewFacade(desc, factory, opts)
		})
		if err != nil {
			panic(err)
		}
	}
	return r
}

// LocomotionFactory builds locomotion environments for the named task.
func LocomotionFactory(name string, simOpts locomotion.Options) SimulatorFactory {
	return func(log *slog.Logger) (Simulator, error) {
		task, err := locomotion.Lookup(name)
		if err != nil {
			return nil, err
		}
		o := simOpts
		o.Logger = log
		env, err := locomotion.NewEnv(task, o)
		if err != nil {
			return nil, err
		}
		return env, nil
	}
}
