// Package registry indexes live forms by name. A Registry is an ordinary
// value owned by whoever needs lookups; nothing in this module keeps a
// process-wide instance.
package registry

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidName is returned when an entry reports a blank name.
var ErrInvalidName = errors.New("registry: name is required")

// Named is implemented by anything the registry can index.
type Named interface {
	Name() string
}

// Registry maps names to entries. Adding an entry under an existing name
// replaces it. All methods are safe for concurrent use.
type Registry[T Named] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// New constructs an empty registry.
func New[T Named]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]T)}
}

// Add indexes entry under its trimmed name.
func (r *Registry[T]) Add(entry T) error {
	name := strings.TrimSpace(entry.Name())
	if name == "" {
		return ErrInvalidName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]T)
	}
	r.entries[name] = entry
	return nil
}

// Remove drops the entry stored under name, if any.
func (r *Registry[T]) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, strings.TrimSpace(name))
}

// Get returns the entry stored under name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[strings.TrimSpace(name)]
	return entry, ok
}

// Reset drops every entry.
func (r *Registry[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]T)
}

// Len reports the number of entries.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Names lists entry names in lexical order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
