package tool

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mwhitford/ollamakit/api"
)

// Registry holds tools keyed by unique name. Lookups during dispatch may
// run concurrently with each other; registration is a setup-time operation
// isolated from readers by the lock.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. It fails with ErrConflict when the name is taken,
// leaving the prior registration untouched.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %q", ErrConflict, name)
	}
	r.tools[name] = t
	return nil
}

// Unregister removes the named tool. It fails with ErrNotFound when the
// name is absent.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; !exists {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(r.tools, name)
	return nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names, sorted for deterministic order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Specs collects tool specifications for every registered tool that can
// describe itself, sorted by name. Tools without schema metadata are
// omitted; advertise those to the model by hand.
func (r *Registry) Specs() []api.ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	specs := make([]api.ToolSpec, 0, len(names))
	for _, name := range names {
		if sp, ok := r.tools[name].(SpecProvider); ok {
			specs = append(specs, api.NewToolSpec(sp.Spec()))
		}
	}
	return specs
}
