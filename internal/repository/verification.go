package repository

import (
	"context"
	"fmt"
	"time"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

// VerificationRepository stores pending verification codes.
type VerificationRepository struct {
	*Repository[entity.VerificationRecord]
}

// NewVerificationRepository builds the verification-record repository.
func NewVerificationRepository(reg *Registry, st store.Store) (*VerificationRepository, error) {
	base, err := New[entity.VerificationRecord](reg, st, verificationType)
	if err != nil {
		return nil, err
	}
	return &VerificationRepository{Repository: base}, nil
}

// CreateCode persists a fresh code for the (user, purpose) pair.
func (r *VerificationRepository) CreateCode(ctx context.Context, userID int64, code string, purpose entity.VerifyPurpose, at time.Time) (*entity.VerificationRecord, error) {
	rec := store.Record{
		"user":    userID,
		"code":    code,
		"purpose": string(purpose),
	}
	rec.SetTime("createdAt", at)
	return r.Create(ctx, rec)
}

// GetByUser returns the user's pending codes in insertion order.
func (r *VerificationRepository) GetByUser(ctx context.Context, userID int64) ([]*entity.VerificationRecord, error) {
	return r.query(ctx, func(rec store.Record) bool {
		return rec.Int64("user") == userID
	})
}

// DeleteByUser removes every pending code of the user and returns how many
// were removed.
func (r *VerificationRepository) DeleteByUser(ctx context.Context, userID int64) (int, error) {
	records, err := r.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	for i, rec := range records {
		if _, err := r.Delete(ctx, rec.ID()); err != nil {
			return i, fmt.Errorf("delete verification record %d: %w", rec.ID(), err)
		}
	}
	return len(records), nil
}
