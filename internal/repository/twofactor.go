package repository

import (
	"context"
	"fmt"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

// TwoFactorRepository stores second-factor secrets.
type TwoFactorRepository struct {
	*Repository[entity.TwoFactorSecret]
}

// NewTwoFactorRepository builds the two-factor secret repository.
func NewTwoFactorRepository(reg *Registry, st store.Store) (*TwoFactorRepository, error) {
	base, err := New[entity.TwoFactorSecret](reg, st, twoFactorType)
	if err != nil {
		return nil, err
	}
	return &TwoFactorRepository{Repository: base}, nil
}

// CreateForUser stores a secret for the user.
func (r *TwoFactorRepository) CreateForUser(ctx context.Context, userID int64, secret string) (*entity.TwoFactorSecret, error) {
	return r.Create(ctx, store.Record{"user": userID, "secret": secret})
}

// GetByUser returns the user's secrets in insertion order.
func (r *TwoFactorRepository) GetByUser(ctx context.Context, userID int64) ([]*entity.TwoFactorSecret, error) {
	return r.query(ctx, func(rec store.Record) bool {
		return rec.Int64("user") == userID
	})
}

// DeleteByUser removes every secret of the user and returns how many were
// removed.
func (r *TwoFactorRepository) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	secrets, err := r.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	for i, s := range secrets {
		if _, err := r.Delete(ctx, s.ID()); err != nil {
			return i, fmt.Errorf("delete two-factor secret %d: %w", s.ID(), err)
		}
	}
	return len(secrets), nil
}
