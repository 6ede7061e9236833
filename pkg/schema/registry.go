package schema

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages named schemas.
// Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]*Schema),
	}
}

// Register adds a schema under its name.
// If a schema with the same name exists, it is overwritten.
func (r *Registry) Register(s *Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[s.Name()] = s
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (*Schema, error) {
	r.mu.RLock()
	s, ok := r.schemas[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("schema not found: %s", name)
	}
	return s, nil
}

// Names returns the registered schema names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry pre-loaded with the built-in
// enrollment schemas.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Person())
	r.Register(CustomerInfo())
	r.Register(PaymentMethod())
	r.Register(NoticeDeclaration())
	r.Register(IdentityDocument())
	return r
}
