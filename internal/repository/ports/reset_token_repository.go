package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quanghtran/myapp-backend/internal/domain"
)

type ResetTokenRepository interface {
	Create(ctx context.Context, token string, accountID uuid.UUID, expiresAt time.Time) (*domain.ResetToken, error)
	// Redeem atomically deletes the token and returns its owner, provided the
	// token exists and has not expired. Concurrent redemptions of the same
	// token succeed at most once.
	Redeem(ctx context.Context, token string, now time.Time) (uuid.UUID, error)
	// DeleteByAccount removes all live tokens for the account.
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}
