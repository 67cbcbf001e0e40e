package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/quanghtran/myapp-backend/internal/domain"
)

type ResetTokenRepository struct {
	db *sqlx.DB
}

func NewResetTokenRepo(db *sqlx.DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

func (r *ResetTokenRepository) Create(ctx context.Context, token string, accountID uuid.UUID, expiresAt time.Time) (*domain.ResetToken, error) {
	const query = `
        INSERT INTO password_reset_token (token, account_id, expires_at)
        VALUES ($1, $2, $3)
        RETURNING token, account_id, expires_at, created_at
    `
	row := r.db.QueryRowxContext(ctx, query, token, accountID, expiresAt)
	var reset domain.ResetToken
	if err := row.StructScan(&reset); err != nil {
		return nil, err
	}
	return &reset, nil
}

// Redeem deletes the token and returns its owner in a single statement, so two
// concurrent redemptions of the same token cannot both succeed. Expired rows
// are not matched and stay in place until the owning account issues a new
// token or is deleted.
func (r *ResetTokenRepository) Redeem(ctx context.Context, token string, now time.Time) (uuid.UUID, error) {
	const query = `
        DELETE FROM password_reset_token
        WHERE token = $1 AND expires_at > $2
        RETURNING account_id
    `
	var accountID uuid.UUID
	if err := r.db.GetContext(ctx, &accountID, query, token, now); err != nil {
		return uuid.Nil, err
	}
	return accountID, nil
}

func (r *ResetTokenRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	const query = `
        DELETE FROM password_reset_token
        WHERE account_id = $1
    `
	_, err := r.db.ExecContext(ctx, query, accountID)
	return err
}
