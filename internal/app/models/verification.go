package models

import (
	"time"
)

// VerificationToken is a single-use, time-boxed email verification token,
// keyed by the email address it was issued for.
type VerificationToken struct {
	Identifier string    `json:"identifier" db:"identifier"`
	Token      string    `json:"token" db:"token"`
	Expires    time.Time `json:"expires" db:"expires"`
}

// IsExpired reports whether the token is past its expiry.
func (t *VerificationToken) IsExpired() bool {
	return time.Now().After(t.Expires)
}

// VerificationRequest is a user's application for manual identity
// verification, reviewed by an admin.
type VerificationRequest struct {
	ID        int64              `json:"id" db:"id"`
	UserID    int64              `json:"userId" db:"user_id"`
	Status    VerificationStatus `json:"status" db:"status"`
	CreatedAt time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" db:"updated_at"`
	Applicant *Profile           `json:"applicant,omitempty"` // Relation, no db tag
}
