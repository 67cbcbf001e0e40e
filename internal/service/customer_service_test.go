package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quanghtran/myapp-backend/internal/domain"
)

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*domain.Customer

	listInputs []struct {
		limit  int
		offset int
	}
	listErr error

	deleted []uuid.UUID
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[uuid.UUID]*domain.Customer{}}
}

func (f *fakeCustomerRepo) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	f.listInputs = append(f.listInputs, struct {
		limit  int
		offset int
	}{limit: limit, offset: offset})
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Customer, 0, len(f.customers))
	for _, customer := range f.customers {
		out = append(out, *customer)
	}
	return out, nil
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return customer, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, id uuid.UUID, firstName, lastName string, dateOfBirth time.Time) (*domain.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	customer.FirstName = firstName
	customer.LastName = lastName
	customer.DateOfBirth = dateOfBirth
	return customer, nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.customers, id)
	return nil
}

func TestCustomerListClampsPaging(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	if _, err := svc.List(ctx, 0, -5); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if _, err := svc.List(ctx, 500, 10); err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(repo.listInputs) != 2 {
		t.Fatalf("expected two list calls, got %d", len(repo.listInputs))
	}
	if repo.listInputs[0].limit != defaultCustomerPageSize || repo.listInputs[0].offset != 0 {
		t.Fatalf("expected defaults for out-of-range paging, got %+v", repo.listInputs[0])
	}
	if repo.listInputs[1].limit != maxCustomerPageSize {
		t.Fatalf("expected limit capped at %d, got %d", maxCustomerPageSize, repo.listInputs[1].limit)
	}
}

func TestCustomerGetNotFound(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerUpdate(t *testing.T) {
	repo := newFakeCustomerRepo()
	id := uuid.New()
	repo.customers[id] = &domain.Customer{ID: id, FirstName: "Old", LastName: "Name"}
	svc := NewCustomerService(repo)

	dob := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)
	customer, err := svc.Update(context.Background(), id, "  An ", " Nguyen ", dob)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if customer.FirstName != "An" || customer.LastName != "Nguyen" {
		t.Fatalf("expected trimmed names, got %q %q", customer.FirstName, customer.LastName)
	}
	if !customer.DateOfBirth.Equal(dob) {
		t.Fatalf("expected date of birth %v, got %v", dob, customer.DateOfBirth)
	}

	t.Run("missing customer", func(t *testing.T) {
		_, err := svc.Update(context.Background(), uuid.New(), "A", "B", dob)
		if !errors.Is(err, ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
	})
}

func TestCustomerDelete(t *testing.T) {
	repo := newFakeCustomerRepo()
	id := uuid.New()
	repo.customers[id] = &domain.Customer{ID: id}
	svc := NewCustomerService(repo)

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != id {
		t.Fatalf("expected delete to reach the repository")
	}

	t.Run("missing customer", func(t *testing.T) {
		err := svc.Delete(context.Background(), uuid.New())
		if !errors.Is(err, ErrCustomerNotFound) {
			t.Fatalf("expected ErrCustomerNotFound, got %v", err)
		}
	})
}
