package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magazine-backoffice/internal/domain/entity"
)

func TestUser_PasswordHashing(t *testing.T) {
	u := entity.RestoreUser(entity.UserState{ID: 1, Login: "anton"})

	require.NoError(t, u.SetPassword("secret"))

	state := u.State()
	assert.NotEmpty(t, state.Salt)
	assert.NotEmpty(t, state.Hash)
	assert.NotContains(t, state.Hash, "secret")

	assert.True(t, u.CheckPassword("secret"))
	assert.False(t, u.CheckPassword("wrong"))

	// round-trip through the snapshot keeps the credentials checkable
	restored := entity.RestoreUser(state)
	assert.True(t, restored.CheckPassword("secret"))
}

func TestUser_SetPassword_Empty(t *testing.T) {
	u := entity.RestoreUser(entity.UserState{ID: 1})
	err := u.SetPassword("")
	assert.Equal(t, entity.KindValidation, entity.KindOf(err))
}

func TestUser_PasswordSaltIsPerUser(t *testing.T) {
	a := entity.RestoreUser(entity.UserState{ID: 1})
	b := entity.RestoreUser(entity.UserState{ID: 2})
	require.NoError(t, a.SetPassword("secret"))
	require.NoError(t, b.SetPassword("secret"))

	assert.NotEqual(t, a.State().Salt, b.State().Salt)
	assert.NotEqual(t, a.State().Hash, b.State().Hash)
}

func TestUser_CheckPassword_WithoutCredentials(t *testing.T) {
	u := entity.RestoreUser(entity.UserState{ID: 1, Login: "anton"})
	assert.False(t, u.CheckPassword("anything"))
}

func TestUser_SetLogin(t *testing.T) {
	u := entity.RestoreUser(entity.UserState{ID: 1, Login: "anton", Verified: true})

	assert.Equal(t, entity.KindValidation, entity.KindOf(u.SetLogin("")))

	// same login keeps the verified flag
	require.NoError(t, u.SetLogin("anton"))
	assert.True(t, u.Verified())

	// a new login must be confirmed again
	require.NoError(t, u.SetLogin("anton2"))
	assert.Equal(t, "anton2", u.Login())
	assert.False(t, u.Verified())

	u.ConfirmLogin()
	assert.True(t, u.Verified())
}

func TestUser_RemoveRecover(t *testing.T) {
	u := entity.RestoreUser(entity.UserState{ID: 1, Login: "anton", Verified: true})

	assert.Equal(t, entity.KindConflict, entity.KindOf(u.Recover()))

	require.NoError(t, u.Remove())
	assert.True(t, u.Removed())
	assert.Equal(t, entity.KindConflict, entity.KindOf(u.Remove()))

	require.NoError(t, u.Recover())
	assert.False(t, u.Removed())
	assert.False(t, u.Verified(), "recovered accounts confirm their login again")
}

func TestUser_IsTrainee(t *testing.T) {
	u := entity.RestoreUser(entity.UserState{ID: 1, Role: entity.RoleTrainee})
	assert.True(t, u.IsTrainee())
	u.SetRole(entity.RoleJournalist)
	assert.False(t, u.IsTrainee())
}
