package repository

import (
	"context"
	"fmt"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

// ContactRepository adds the per-user lookup used by notifications and the
// account deletion cascade.
type ContactRepository struct {
	*Repository[entity.Contact]
}

// NewContactRepository builds the contact repository.
func NewContactRepository(reg *Registry, st store.Store) (*ContactRepository, error) {
	base, err := New[entity.Contact](reg, st, contactType)
	if err != nil {
		return nil, err
	}
	return &ContactRepository{Repository: base}, nil
}

// CreateForUser adds a contact address for the user.
func (r *ContactRepository) CreateForUser(ctx context.Context, userID int64, kind entity.ContactKind, value string) (*entity.Contact, error) {
	return r.Create(ctx, store.Record{"user": userID, "kind": string(kind), "value": value})
}

// GetByUser returns the user's contacts in insertion order.
func (r *ContactRepository) GetByUser(ctx context.Context, userID int64) ([]*entity.Contact, error) {
	return r.query(ctx, func(rec store.Record) bool {
		return rec.Int64("user") == userID
	})
}

// DeleteByUser removes every contact of the user and returns how many were
// removed.
func (r *ContactRepository) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	contacts, err := r.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	for i, c := range contacts {
		if _, err := r.Delete(ctx, c.ID()); err != nil {
			return i, fmt.Errorf("delete contact %d: %w", c.ID(), err)
		}
	}
	return len(contacts), nil
}
