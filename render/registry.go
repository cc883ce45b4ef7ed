// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"sort"
	"sync"
)

// FactoryFunc builds the graphics factory of one backend.
type FactoryFunc func() (Factory, error)

// RegistryEntry describes one backend: "raster" (gg CPU), "gpu" (gg with
// the wgpu accelerator) or "recording" (command capture for tests).
type RegistryEntry struct {
	Name string

	// Priority orders selection when no backend is named; highest wins.
	Priority int

	New FactoryFunc

	// Available is probed on every selection. The gpu backend reports
	// false when no adapter could be opened.
	Available func() bool
}

var globalRegistry = NewRegistry()

// Registry maps backend names to factory constructors. A Renderer resolves
// its factory here in CreateDeviceIndependentResources, either by the name
// given to WithBackend or by priority.
//
// Backend packages add themselves from init, so a blank import is enough:
//
//	import _ "github.com/gogpu/gghello/backend/raster"
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry returns an empty registry, for tests and for callers that
// want to restrict the backend set.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// DefaultRegistry returns the process-wide registry used by Register.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a backend to the default registry. A nil available means
// always available; a repeated name replaces the earlier entry.
func Register(name string, priority int, newFactory FactoryFunc, available func() bool) {
	globalRegistry.Register(name, priority, newFactory, available)
}

// Unregister drops a backend from the default registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns the default registry's backends, preferred first.
func List() []string {
	return globalRegistry.List()
}

// Available is List restricted to backends that can run here.
func Available() []string {
	return globalRegistry.Available()
}

// NewFactory builds the preferred available factory.
func NewFactory() (Factory, error) {
	return globalRegistry.NewFactory()
}

// NewFactoryByName builds the named backend's factory.
func NewFactoryByName(name string) (Factory, error) {
	return globalRegistry.NewFactoryByName(name)
}

// Register adds or replaces a backend. It panics on a nil constructor.
func (r *Registry) Register(name string, priority int, newFactory FactoryFunc, available func() bool) {
	if newFactory == nil {
		panic("render: Register factory is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		New:       newFactory,
		Available: available,
	}
}

// Unregister drops a backend.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns backend names, preferred first.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns the names of backends whose probe passes, preferred first.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	entryCopy := *entry
	return &entryCopy, true
}

// NewFactory walks the available backends in priority order and returns
// the first factory that builds. With none registered it returns
// ErrNoBackend; otherwise the last construction error.
func (r *Registry) NewFactory() (Factory, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	var lastErr error
	for _, name := range available {
		f, err := r.NewFactoryByName(name)
		if err == nil {
			return f, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrNoBackend
}

// NewFactoryByName builds one backend's factory, reporting
// *BackendNotFoundError or *BackendUnavailableError.
func (r *Registry) NewFactoryByName(name string) (Factory, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	return entry.New()
}

// sortedNames orders by priority, then name. r.mu must be held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
