package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quanghtran/myapp-backend/internal/domain"
)

type CustomerRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	Update(ctx context.Context, id uuid.UUID, firstName, lastName string, dateOfBirth time.Time) (*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
