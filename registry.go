package goshape

import (
	"sort"
	"sync"

	js "github.com/goshape/goshape/jsonschema"
)

// Registry is the process-wide table of named schema bodies. It is constructed
// once at process start and passed to every Register call. Entries are created
// at most once per name; re-registration is a no-op.
type Registry struct {
	mu       sync.Mutex
	schemas  map[string]*js.Schema
	creating map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:  map[string]*js.Schema{},
		creating: map[string]struct{}{},
	}
}

// CreateSchema inserts the schema produced by build under name unless the name
// is already present. The build callback runs outside the lock so it can
// recursively register dependency schemas; recursion into the same name is cut
// short by the in-progress marker, which also makes self-referential types
// terminate. Concurrent registrations of the same name collapse onto the first
// builder; the others return without storing anything.
func (r *Registry) CreateSchema(name string, build func(*Registry) *js.Schema) {
	r.mu.Lock()
	if _, ok := r.schemas[name]; ok {
		r.mu.Unlock()
		return
	}
	if _, ok := r.creating[name]; ok {
		r.mu.Unlock()
		return
	}
	r.creating[name] = struct{}{}
	r.mu.Unlock()

	body := build(r)

	r.mu.Lock()
	delete(r.creating, name)
	r.schemas[name] = body
	r.mu.Unlock()
}

// Schema looks up a registered schema body by name.
func (r *Registry) Schema(name string) (*js.Schema, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schemas[name]
	return s, ok
}

// Names returns all registered schema names in ascending order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.schemas)
}
