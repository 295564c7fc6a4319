package repository

import (
	"context"
	"fmt"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

// Repository is the typed CRUD façade over the object store for one entity
// type. Entities returned by a repository are owned copies: persisting a
// mutation always requires an explicit Save, and two callers never alias the
// same stored state.
type Repository[E any] struct {
	store   store.Store
	typ     string
	factory Factory[E]
}

// New builds a repository for the type name, resolving its factory from the
// registry. Construction fails with a configuration error when the factory
// is not registered.
func New[E any](reg *Registry, st store.Store, typeName string) (*Repository[E], error) {
	f, err := factoryFor[E](reg, typeName)
	if err != nil {
		return nil, err
	}
	return &Repository[E]{store: st, typ: typeName, factory: f}, nil
}

// TypeName returns the store type the repository is bound to.
func (r *Repository[E]) TypeName() string { return r.typ }

// Create merges the caller-supplied fields over the type defaults, persists
// the record and returns the hydrated entity.
func (r *Repository[E]) Create(ctx context.Context, partial store.Record) (*E, error) {
	rec := r.factory.Defaults()
	for k, v := range partial {
		rec[k] = v
	}
	id, err := r.store.Put(ctx, r.typ, rec)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r.typ, err)
	}
	rec.SetID(id)
	return r.factory.Restore(rec)
}

// GetOne loads the entity with the given id.
func (r *Repository[E]) GetOne(ctx context.Context, id int64) (*E, error) {
	if id <= 0 {
		return nil, entity.Validationf("%s id must be positive, got %d", r.typ, id)
	}
	rec, err := r.store.Get(ctx, r.typ, id)
	if err != nil {
		return nil, err
	}
	return r.factory.Restore(rec)
}

// GetAll loads every entity of the type in insertion order.
func (r *Repository[E]) GetAll(ctx context.Context) ([]*E, error) {
	return r.query(ctx, nil)
}

// Save serializes the entity through the factory and writes it back to the
// store. The entity must already have an id; Create assigns ids.
func (r *Repository[E]) Save(ctx context.Context, e *E) error {
	rec, err := r.factory.Record(e)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", r.typ, err)
	}
	if rec.ID() <= 0 {
		return entity.Validationf("cannot save %s without an id", r.typ)
	}
	if _, err := r.store.Put(ctx, r.typ, rec); err != nil {
		return fmt.Errorf("save %s: %w", r.typ, err)
	}
	return nil
}

// Delete hard-deletes the record and reports whether it existed.
func (r *Repository[E]) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, entity.Validationf("%s id must be positive, got %d", r.typ, id)
	}
	ok, err := r.store.Delete(ctx, r.typ, id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", r.typ, err)
	}
	return ok, nil
}

// query loads the entities whose records match pred, preserving insertion
// order. Lookups are linear scans; fine at back-office volume.
func (r *Repository[E]) query(ctx context.Context, pred store.Predicate) ([]*E, error) {
	recs, err := r.store.Query(ctx, r.typ, pred)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", r.typ, err)
	}
	out := make([]*E, 0, len(recs))
	for _, rec := range recs {
		e, err := r.factory.Restore(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
