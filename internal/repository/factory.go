// Package repository provides the typed persistence façade of the back
// office: a factory registry that owns the mapping between stored records and
// live entities, a generic repository over the object store, and per-entity
// repositories that add the domain lookups. Raw records never leave this
// package; every read path passes through a factory.
package repository

import (
	"sync"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

// Factory converts between stored records and live entities for one type.
// Restore and Record must be pure, free of I/O, and mutually inverse:
// Restore(Record(e)) yields an entity behaviorally equivalent to e.
type Factory[E any] struct {
	// Restore rehydrates an entity from its stored record.
	Restore func(store.Record) (*E, error)
	// Record serializes an entity back to its stored shape.
	Record func(*E) (store.Record, error)
	// Defaults returns the record merged under caller-supplied fields when
	// a repository creates a new entity.
	Defaults func() store.Record
}

// Registry owns the factory binding for every entity type. It is constructed
// at startup and handed to each repository; there is no process-wide
// instance.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]any)}
}

// RegisterFactory binds a factory to a type name. Exactly one factory may be
// registered per type; a second registration is a configuration error.
func RegisterFactory[E any](r *Registry, typeName string, f Factory[E]) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[typeName]; exists {
		return entity.Configurationf("factory for %q is already registered", typeName)
	}
	r.factories[typeName] = f
	return nil
}

// factoryFor resolves the factory registered for the type name, failing with
// a configuration error when it is missing or bound to a different entity
// type.
func factoryFor[E any](r *Registry, typeName string) (Factory[E], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	raw, ok := r.factories[typeName]
	if !ok {
		return Factory[E]{}, entity.Configurationf("no factory registered for %q", typeName)
	}
	f, ok := raw.(Factory[E])
	if !ok {
		return Factory[E]{}, entity.Configurationf("factory for %q is bound to a different entity type", typeName)
	}
	return f, nil
}
