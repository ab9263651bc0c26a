package schema

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// A Registry resolves model definitions into cached Model descriptors.
// It is the one piece of shared mutable state in Loom: read-mostly,
// written once per model name. Concurrent registration of the same name
// is collapsed into a single build; the cached value is immutable after
// the first successful build.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*Model
	group  singleflight.Group
}

// NewRegistry returns an empty model registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]*Model)}
}

// Register builds the definition into a Model and caches it under the
// definition's name. Registering an already-registered name returns the
// cached Model without re-inspection.
func (r *Registry) Register(def *Definition) (*Model, error) {
	r.mu.RLock()
	m, ok := r.models[def.name]
	r.mu.RUnlock()
	if ok {
		return m, nil
	}
	v, err, _ := r.group.Do(def.name, func() (any, error) {
		r.mu.RLock()
		m, ok := r.models[def.name]
		r.mu.RUnlock()
		if ok {
			return m, nil
		}
		m, err := def.build()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.models[def.name] = m
		r.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Model), nil
}

// Resolve returns the cached Model registered under the given name.
func (r *Registry) Resolve(name string) (*Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[name]
	return m, ok
}
