package entity

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// Role ids of the editorial staff.
const (
	RoleAdmin       int64 = 1
	RoleTrainee     int64 = 2
	RoleJournalist  int64 = 3
	RoleChiefEditor int64 = 4
)

// Password hashing parameters. The salt is random per user; the clear-text
// password exists only for the duration of SetPassword and CheckPassword.
const (
	saltLength       = 16
	hashLength       = 32
	pbkdf2Iterations = 210_000
)

// User is an editorial staff account. The login must be confirmed through a
// verification code before the account can authenticate; Remove and Recover
// form a reversible soft-delete pair.
type User struct {
	id       int64
	login    string
	salt     []byte
	hash     []byte
	role     int64
	verified bool
	removed  bool
}

// UserState is the field snapshot used by the user factory. Salt and hash are
// hex-encoded for storage.
type UserState struct {
	ID       int64
	Login    string
	Salt     string
	Hash     string
	Role     int64
	Verified bool
	Removed  bool
}

// RestoreUser rehydrates a user from a snapshot without invariant checks.
// Only factories should call it. Undecodable salt or hash fields are treated
// as absent, which leaves the account unable to authenticate rather than
// failing rehydration.
func RestoreUser(s UserState) *User {
	salt, _ := hex.DecodeString(s.Salt)
	hash, _ := hex.DecodeString(s.Hash)
	return &User{
		id:       s.ID,
		login:    s.Login,
		salt:     salt,
		hash:     hash,
		role:     s.Role,
		verified: s.Verified,
		removed:  s.Removed,
	}
}

// State returns a snapshot of the user for serialization.
func (u *User) State() UserState {
	return UserState{
		ID:       u.id,
		Login:    u.login,
		Salt:     hex.EncodeToString(u.salt),
		Hash:     hex.EncodeToString(u.hash),
		Role:     u.role,
		Verified: u.verified,
		Removed:  u.removed,
	}
}

func (u *User) ID() int64      { return u.id }
func (u *User) Login() string  { return u.login }
func (u *User) Role() int64    { return u.role }
func (u *User) Verified() bool { return u.verified }
func (u *User) Removed() bool  { return u.removed }

// IsTrainee reports whether the user still holds the trainee role.
func (u *User) IsTrainee() bool { return u.role == RoleTrainee }

// SetPassword derives and stores a fresh salt and hash from the password.
// The clear-text password is never retained.
func (u *User) SetPassword(password string) error {
	if password == "" {
		return Validationf("password must not be empty")
	}
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	u.salt = salt
	u.hash = pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, hashLength, sha256.New)
	return nil
}

// CheckPassword reports whether the password matches the stored hash using a
// constant-time comparison. An account without a password never matches.
func (u *User) CheckPassword(password string) bool {
	if len(u.salt) == 0 || len(u.hash) == 0 {
		return false
	}
	hash := pbkdf2.Key([]byte(password), u.salt, pbkdf2Iterations, hashLength, sha256.New)
	return subtle.ConstantTimeCompare(hash, u.hash) == 1
}

// SetLogin changes the login. A changed login must be confirmed again, so the
// verified flag resets.
func (u *User) SetLogin(login string) error {
	if login == "" {
		return Validationf("login must not be empty")
	}
	if u.login == login {
		return nil
	}
	u.login = login
	u.verified = false
	return nil
}

// SetRole assigns a role id. Policy checks (who may change whose role) live
// in the authorization service, not here.
func (u *User) SetRole(role int64) { u.role = role }

// ConfirmLogin marks the login as verified.
func (u *User) ConfirmLogin() { u.verified = true }

// Remove soft-deletes the account.
func (u *User) Remove() error {
	if u.removed {
		return Conflictf("user %d is already removed", u.id)
	}
	u.removed = true
	return nil
}

// Recover restores a soft-deleted account. The login must be confirmed again
// before the account can authenticate.
func (u *User) Recover() error {
	if !u.removed {
		return Conflictf("user %d is not removed", u.id)
	}
	u.removed = false
	u.verified = false
	return nil
}
