package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/quanghtran/myapp-backend/internal/domain"
)

type RoleRepository struct {
	db *sqlx.DB
}

func NewRoleRepo(db *sqlx.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	const query = `
        SELECT id, role_name, created_at, updated_at
        FROM role
        WHERE role_name = $1
    `
	var role domain.Role
	if err := r.db.GetContext(ctx, &role, query, name); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) EnsureRole(ctx context.Context, name string) (*domain.Role, error) {
	const query = `
        INSERT INTO role (role_name)
        VALUES ($1)
        ON CONFLICT (role_name) DO UPDATE
        SET updated_at = NOW()
        RETURNING id, role_name, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, name)
	var role domain.Role
	if err := row.StructScan(&role); err != nil {
		return nil, err
	}
	return &role, nil
}
