package entity

// TwoFactorSecret holds the shared secret of a user's second authentication
// factor. Secrets are removed together with their owner on hard delete.
type TwoFactorSecret struct {
	id     int64
	userID int64
	secret string
}

// TwoFactorState is the field snapshot used by the two-factor factory.
type TwoFactorState struct {
	ID     int64
	UserID int64
	Secret string
}

// RestoreTwoFactorSecret rehydrates a secret from a snapshot.
func RestoreTwoFactorSecret(s TwoFactorState) *TwoFactorSecret {
	return &TwoFactorSecret{id: s.ID, userID: s.UserID, secret: s.Secret}
}

// State returns a snapshot of the secret for serialization.
func (t *TwoFactorSecret) State() TwoFactorState {
	return TwoFactorState{ID: t.id, UserID: t.userID, Secret: t.secret}
}

func (t *TwoFactorSecret) ID() int64      { return t.id }
func (t *TwoFactorSecret) UserID() int64  { return t.userID }
func (t *TwoFactorSecret) Secret() string { return t.secret }
