package entity

import "time"

// VerifyPurpose ties a verification code to the sensitive operation it
// authorizes. A code sent for one purpose never matches another.
type VerifyPurpose string

const (
	PurposeLogin     VerifyPurpose = "LOGIN"
	PurposeRemind    VerifyPurpose = "REMIND"
	PurposeTwoFactor VerifyPurpose = "TWO_FACTOR"
)

// VerificationRecord is a pending one-time code for a (user, purpose) pair.
// Records are consumed on a successful check and swept once expired.
type VerificationRecord struct {
	id        int64
	userID    int64
	code      string
	purpose   VerifyPurpose
	createdAt time.Time
}

// VerificationState is the field snapshot used by the verification factory.
type VerificationState struct {
	ID        int64
	UserID    int64
	Code      string
	Purpose   VerifyPurpose
	CreatedAt time.Time
}

// RestoreVerification rehydrates a verification record from a snapshot.
func RestoreVerification(s VerificationState) *VerificationRecord {
	return &VerificationRecord{
		id:        s.ID,
		userID:    s.UserID,
		code:      s.Code,
		purpose:   s.Purpose,
		createdAt: s.CreatedAt,
	}
}

// State returns a snapshot of the record for serialization.
func (v *VerificationRecord) State() VerificationState {
	return VerificationState{
		ID:        v.id,
		UserID:    v.userID,
		Code:      v.code,
		Purpose:   v.purpose,
		CreatedAt: v.createdAt,
	}
}

func (v *VerificationRecord) ID() int64              { return v.id }
func (v *VerificationRecord) UserID() int64          { return v.userID }
func (v *VerificationRecord) Purpose() VerifyPurpose { return v.purpose }
func (v *VerificationRecord) CreatedAt() time.Time   { return v.createdAt }

// Matches reports whether the record authorizes the given (code, user,
// purpose) triple.
func (v *VerificationRecord) Matches(code string, userID int64, purpose VerifyPurpose) bool {
	return v.code == code && v.userID == userID && v.purpose == purpose
}

// Expired reports whether the record is older than ttl at the given time.
func (v *VerificationRecord) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(v.createdAt) > ttl
}
