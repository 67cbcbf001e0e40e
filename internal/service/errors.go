package service

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrRoleMissing        = errors.New("default role missing")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
	ErrMailDelivery       = errors.New("mail delivery failed")
	ErrCustomerNotFound   = errors.New("customer not found")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
