package bench

import "sync"

// Pool hands out one shared facade per benchmark and serializes
// evaluation on it.
type Pool struct {
	reg *Registry

	mu      sync.Mutex
	facades map[string]*pooled
}

type pooled struct {
	mu     sync.Mutex
	facade *Facade
}

func NewPool(reg *Registry) *Pool {
	return &Pool{reg: reg, facades: make(map[string]*pooled)}
}

func (p *Pool) get(name string) (*pooled, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pf, ok := p.facades[name]; ok {
		return pf, nil
	}
	f, err := p.reg.Create(name)
	if err != nil {
		return nil, err
	}
	pf := &pooled{facade: f}
	p.facades[name] = pf
	return pf, nil
}

func (p *Pool) Evaluate(name string, x [][]float64) ([]float64, error) {
	pf, err := p.get(name)
	if err != nil {
		return nil, err
	}
	pf.mu.Lock()
	defer pf.mu.Unlock()
	return pf.facade.Evaluate(x)
}

// Len reports how many facades have been built.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.facades)
}

// Evaluator runs a batch against a named benchmark. *Pool and Fresh both
// satisfy it.
type Evaluator interface {
	Evaluate(name string, x [][]float64) ([]float64, error)
}

// Fresh builds a new facade for every call.
type Fresh struct {
	Registry *Registry
}

func (f Fresh) Evaluate(name string, x [][]float64) ([]float64, error) {
	facade, err := f.Registry.Create(name)
	if err != nil {
		return nil, err
	}
	return facade.Evaluate(x)
}
