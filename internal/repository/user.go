package repository

import (
	"context"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

// UserRepository adds the login lookup used by authentication and password
// recovery.
type UserRepository struct {
	*Repository[entity.User]
}

// NewUserRepository builds the user repository.
func NewUserRepository(reg *Registry, st store.Store) (*UserRepository, error) {
	base, err := New[entity.User](reg, st, userType)
	if err != nil {
		return nil, err
	}
	return &UserRepository{Repository: base}, nil
}

// CreateWithLogin creates an account for the login with an empty credential
// pair; the caller sets the password on the returned entity and saves.
func (r *UserRepository) CreateWithLogin(ctx context.Context, login string) (*entity.User, error) {
	return r.Create(ctx, store.Record{"login": login})
}

// GetByLogin returns the user with the given login, or a NotFound error.
// Logins are unique; the first match in insertion order wins.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	users, err := r.query(ctx, func(rec store.Record) bool {
		return rec.String("login") == login
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, entity.NotFoundf("user with login %q not found", login)
	}
	return users[0], nil
}
