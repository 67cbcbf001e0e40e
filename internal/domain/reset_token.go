package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResetToken is a single-use password reset credential. A token is valid only
// while the row exists and expires_at is in the future; redemption removes it.
type ResetToken struct {
	Token     string    `db:"token" json:"-"`
	AccountID uuid.UUID `db:"account_id" json:"account_id"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
