package behaviour

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownStrategy is returned by Registry.New for an unregistered name.
var ErrUnknownStrategy = errors.New("unknown behaviour strategy")

// Factory builds a fresh Strategy instance.
type Factory func(Params) Strategy

// Registry maps strategy names to factories. It is safe for concurrent
// use; the strategies it returns are not.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry with the built-in strategies registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.factories[NameLaneKeep] = func(p Params) Strategy { return NewLaneKeep(p) }
	r.factories[NameCostBased] = func(p Params) Strategy { return NewCostBased(p) }
	return r
}

// Register adds a factory under name. Names must be unique.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("register strategy %q: name and factory required", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("register strategy %q: already registered", name)
	}
	r.factories[name] = f
	return nil
}

// New builds the strategy registered under name.
func (r *Registry) New(name string, p Params) (Strategy, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownStrategy, name, r.Names())
	}
	return f(p), nil
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
