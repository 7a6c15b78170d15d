package role

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sveinns/rolebot/core"
)

// Registry maps plugin names to behavior units so a running bot can look up
// and attach them by name. Safe for concurrent use. Population is a
// configuration concern; the core only consults it.
type Registry struct {
	mu    sync.RWMutex
	units map[string]*core.Unit
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{units: make(map[string]*core.Unit)}
}

// Register adds a unit under its own name. Registering a name twice is an
// error; use Replace to swap a plugin out deliberately.
func (r *Registry) Register(u *core.Unit) error {
	if u == nil || u.Name() == "" {
		return fmt.Errorf("role: cannot register unnamed unit")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.units[u.Name()]; ok {
		return fmt.Errorf("role: unit %q already registered", u.Name())
	}
	r.units[u.Name()] = u
	return nil
}

// Replace registers a unit under its name, overwriting any previous entry.
func (r *Registry) Replace(u *core.Unit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[u.Name()] = u
}

// Lookup returns the unit registered under name, if any.
func (r *Registry) Lookup(name string) (*core.Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[name]
	return u, ok
}

// Names returns the registered plugin names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.units))
	for n := range r.units {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
