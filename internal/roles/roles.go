// Package roles answers whether a user may perform a named access-controlled
// action. Policy lives here; the entities only know their role id.
package roles

import (
	"context"
	"fmt"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/repository"
)

// AccessItem names an access-controlled action.
type AccessItem string

const (
	ChangeRole     AccessItem = "CHANGE_ROLE"
	PublishArticle AccessItem = "PUBLISH_ARTICLE"
	EditArticle    AccessItem = "EDIT_ARTICLE"
)

// rolePermissions maps a role id to the access items it grants. Trainees can
// edit drafts but neither publish nor manage roles.
var rolePermissions = map[int64]map[AccessItem]bool{
	entity.RoleAdmin: {
		ChangeRole:     true,
		PublishArticle: true,
		EditArticle:    true,
	},
	entity.RoleTrainee: {
		EditArticle: true,
	},
	entity.RoleJournalist: {
		EditArticle: true,
	},
	entity.RoleChiefEditor: {
		ChangeRole:     true,
		PublishArticle: true,
		EditArticle:    true,
	},
}

// Checker resolves a user's role through the user repository and checks it
// against the permission table.
type Checker struct {
	Users *repository.UserRepository
}

// NewChecker builds a checker over the user repository.
func NewChecker(users *repository.UserRepository) *Checker {
	return &Checker{Users: users}
}

// Check returns nil when the user holds the access item. It fails with
// Forbidden when the capability is missing or the account is removed, and
// propagates NotFound for unknown users.
func (c *Checker) Check(ctx context.Context, userID int64, item AccessItem) error {
	user, err := c.Users.GetOne(ctx, userID)
	if err != nil {
		return fmt.Errorf("check access for user %d: %w", userID, err)
	}
	if user.Removed() {
		return entity.Forbiddenf("user %d is removed", userID)
	}
	if !rolePermissions[user.Role()][item] {
		return entity.Forbiddenf("user %d lacks %s", userID, item)
	}
	return nil
}
