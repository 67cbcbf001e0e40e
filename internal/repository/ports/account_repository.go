package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/quanghtran/myapp-backend/internal/domain"
)

// NewAccount carries everything needed to create an account together with its
// customer profile in a single atomic write.
type NewAccount struct {
	Email        string
	PasswordHash string
	RoleID       uuid.UUID
	Profile      domain.Customer
}

type AccountRepository interface {
	// CreateWithCustomer inserts the account and its customer profile in one
	// transaction. A duplicate email surfaces as a unique-violation error.
	CreateWithCustomer(ctx context.Context, input NewAccount) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
