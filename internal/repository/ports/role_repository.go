package ports

import (
	"context"

	"github.com/quanghtran/myapp-backend/internal/domain"
)

type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// EnsureRole creates the role if it does not exist yet and returns it
	// either way. Used by the bootstrap seed.
	EnsureRole(ctx context.Context, name string) (*domain.Role, error)
}
