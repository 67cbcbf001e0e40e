package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/quanghtran/myapp-backend/internal/domain"
)

type CustomerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepo(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `
        c.id, c.first_name, c.last_name, c.date_of_birth, c.account_id, a.email, c.created_at, c.updated_at
`

func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	const query = `
        SELECT` + customerColumns + `
        FROM customer c
        JOIN account a ON a.id = c.account_id
        ORDER BY c.created_at
        LIMIT $1 OFFSET $2
    `
	customers := []domain.Customer{}
	if err := r.db.SelectContext(ctx, &customers, query, limit, offset); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	const query = `
        SELECT` + customerColumns + `
        FROM customer c
        JOIN account a ON a.id = c.account_id
        WHERE c.id = $1
    `
	var customer domain.Customer
	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Update(ctx context.Context, id uuid.UUID, firstName, lastName string, dateOfBirth time.Time) (*domain.Customer, error) {
	const query = `
        UPDATE customer
        SET first_name = $2,
            last_name = $3,
            date_of_birth = $4,
            updated_at = NOW()
        WHERE id = $1
        RETURNING id, first_name, last_name, date_of_birth, account_id, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, id, firstName, lastName, dateOfBirth)
	var customer domain.Customer
	if err := row.StructScan(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `
        DELETE FROM customer
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
