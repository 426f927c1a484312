package method

import (
	"fmt"
	"sync"
)

// Registry maps mode names to their methods in registration order.
// Registration order is significant: it is the deterministic tie-breaker
// when ordering activation candidates.
//
// The default registry is populated once at program start (see
// methods.RegisterDefaults) and is read-only afterwards.
type Registry struct {
	mu     sync.RWMutex
	byMode map[string][]*Method
	byName map[string]*Method
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byMode: make(map[string][]*Method),
		byName: make(map[string]*Method),
	}
}

// Default is the process-wide registry.
var Default = NewRegistry()

// Register validates and adds a method to the registry. The method name must
// be unique across all modes. A method whose callbacks define neither Enter
// nor Heartbeat is a configuration error.
func (r *Registry) Register(m *Method) error {
	if m.Name == "" || m.Mode == "" || m.New == nil {
		return fmt.Errorf("%w: %q needs a name, a mode and a constructor", ErrInvalidMethod, m.Name)
	}

	// Constructors are side-effect free, so building a probe instance is
	// safe here.
	cb := m.New(Options{})
	if cb.Enter == nil && cb.Heartbeat == nil {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, m.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[m.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, m.Name)
	}
	r.byName[m.Name] = m
	r.byMode[m.Mode] = append(r.byMode[m.Mode], m)
	return nil
}

// MethodsFor returns the methods registered for a mode, in registration
// order. Unknown modes yield an empty slice.
func (r *Registry) MethodsFor(mode string) []*Method {
	r.mu.RLock()
	defer r.mu.RUnlock()
	methods := r.byMode[mode]
	out := make([]*Method, len(methods))
	copy(out, methods)
	return out
}

// Find returns the method with the given name within a mode, or nil.
func (r *Registry) Find(mode, name string) *Method {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.byMode[mode] {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Lookup returns a method by its globally unique name, or nil.
func (r *Registry) Lookup(name string) *Method {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// Register adds a method to the default registry.
func Register(m *Method) error { return Default.Register(m) }
