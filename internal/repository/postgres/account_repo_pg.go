package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/quanghtran/myapp-backend/internal/domain"
	"github.com/quanghtran/myapp-backend/internal/repository/ports"
)

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepo(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `
        a.id, a.email, a.password_hash, a.role_id, r.role_name, a.is_active, a.created_at, a.updated_at
`

func (r *AccountRepository) CreateWithCustomer(ctx context.Context, input ports.NewAccount) (*domain.Account, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const insertAccount = `
        INSERT INTO account (email, password_hash, role_id)
        VALUES ($1, $2, $3)
        RETURNING id, email, password_hash, role_id, is_active, created_at, updated_at
    `
	var account domain.Account
	row := tx.QueryRowxContext(ctx, insertAccount, input.Email, input.PasswordHash, input.RoleID)
	if err := row.StructScan(&account); err != nil {
		return nil, err
	}

	const insertCustomer = `
        INSERT INTO customer (first_name, last_name, date_of_birth, account_id)
        VALUES ($1, $2, $3, $4)
    `
	profile := input.Profile
	if _, err := tx.ExecContext(ctx, insertCustomer, profile.FirstName, profile.LastName, profile.DateOfBirth, account.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
        SELECT` + accountColumns + `
        FROM account a
        JOIN role r ON r.id = a.role_id
        WHERE a.email = $1
    `
	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	const query = `
        SELECT` + accountColumns + `
        FROM account a
        JOIN role r ON r.id = a.role_id
        WHERE a.id = $1
    `
	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `
        UPDATE account
        SET password_hash = $2,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordHash)
	return err
}
