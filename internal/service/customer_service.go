package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quanghtran/myapp-backend/internal/domain"
	"github.com/quanghtran/myapp-backend/internal/repository/ports"
)

const (
	defaultCustomerPageSize = 20
	maxCustomerPageSize     = 100
)

// CustomerService is plain data-access glue over the customer repository. The
// only logic it adds is paging bounds and not-found mapping.
type CustomerService struct {
	customers ports.CustomerRepository
}

func NewCustomerService(customers ports.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = defaultCustomerPageSize
	}
	if limit > maxCustomerPageSize {
		limit = maxCustomerPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.customers.List(ctx, limit, offset)
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, firstName, lastName string, dateOfBirth time.Time) (*domain.Customer, error) {
	customer, err := s.customers.Update(ctx, id, strings.TrimSpace(firstName), strings.TrimSpace(lastName), dateOfBirth)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCustomerNotFound
		}
		return err
	}
	return s.customers.Delete(ctx, id)
}
