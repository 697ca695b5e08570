package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry resolves configured backend names to lazily constructed
// instances. Each backend kind (extraction, captioning, transcription,
// generation) gets its own registry; the configuration picks one name per
// kind and consumers hold the resolved Lazy handle.
type Registry[T Provider] struct {
	mu      sync.RWMutex
	entries map[string]*Lazy[T]
}

// NewRegistry creates an empty registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]*Lazy[T])}
}

// Register binds a name to a factory. The factory does not run here; it
// runs once, on the first Get of the handle Resolve returns. Registering a
// name twice replaces the earlier binding.
func (r *Registry[T]) Register(name string, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = NewLazy(factory)
}

// Resolve returns the lazy handle for a named backend. An unknown name is
// a wiring error surfaced at startup, before any request can hit it.
func (r *Registry[T]) Resolve(name string) (*Lazy[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not registered (have %v)", name, r.namesLocked())
	}
	return l, nil
}

// Names returns the sorted registered names.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry[T]) namesLocked() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
