package util

import "github.com/google/uuid"

// NewResetToken returns an opaque, unguessable token for the password reset
// flow. Uniqueness is backed by the primary key on the token column.
func NewResetToken() string {
	return uuid.NewString()
}
