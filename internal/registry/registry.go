package registry

import (
	"reflect"
	"sort"
	"sync"

	"github.com/junioryono/locator/internal/reflection"
)

// Definition describes a type the container knows how to build.
type Definition struct {
	// Name is the fully qualified type name used as the resolution key.
	Name string

	// Type is the type produced by the definition.
	Type reflect.Type

	// Constructor is nil when the type is instantiated from its zero value.
	Constructor *reflection.ConstructorInfo

	// Defaults maps parameter index to the value used when that parameter
	// cannot be resolved.
	Defaults map[int]reflect.Value
}

// HasConstructor reports whether the definition carries a constructor.
func (d *Definition) HasConstructor() bool {
	return d.Constructor != nil
}

// Default returns the default for parameter i, if one was declared.
func (d *Definition) Default(i int) (reflect.Value, bool) {
	v, ok := d.Defaults[i]
	return v, ok
}

// Abstract reports whether the definition cannot be instantiated.
func (d *Definition) Abstract() bool {
	return d.Constructor == nil && reflection.IsAbstract(d.Type)
}

// Dependencies returns the class-like parameter type names in declaration order.
func (d *Definition) Dependencies() []string {
	if d.Constructor == nil {
		return nil
	}

	deps := make([]string, 0, len(d.Constructor.Parameters))
	for _, p := range d.Constructor.Parameters {
		if p.ClassLike {
			deps = append(deps, p.TypeName)
		}
	}

	return deps
}

// Registry stores type definitions by name.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		defs: make(map[string]*Definition),
	}
}

// Add stores d, replacing any definition with the same name.
func (r *Registry) Add(d *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[d.Name] = d
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[name]
	return d, ok
}

// Remove deletes the definition registered under name.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.defs, name)
}

// All returns every definition sorted by name.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
