// Package port defines the interfaces the controllers depend on.
// The concrete implementations live in internal/infra/api; tests
// substitute hand-written fakes.
package port

import (
	"context"

	"homebook/internal/domain"
)

// HouseholdFetcher loads the household aggregate and toggles which
// categories are enabled for it.
type HouseholdFetcher interface {
	Get(ctx context.Context) (*domain.Household, error)
	EnableCategory(ctx context.Context, id int64) error
	DisableCategory(ctx context.Context, id int64) error
}

// ExpenseService maps the /expenses resource. Listing is by canonical
// month key (YYYY-MM); the server filters first-of-month to end-of-month.
type ExpenseService interface {
	ListByMonth(ctx context.Context, monthKey string) ([]domain.Expense, error)
	Add(ctx context.Context, payload domain.ExpensePayload) error
	Update(ctx context.Context, id int64, payload domain.ExpensePayload) error
	Delete(ctx context.Context, id int64) error
}

// CategoryService maps the /categories resource.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Add(ctx context.Context, form domain.CategoryForm) error
	Update(ctx context.Context, form domain.CategoryForm) error
	Delete(ctx context.Context, id int64) error
}

// PersonService maps the /person resource. Members are never deleted.
type PersonService interface {
	List(ctx context.Context) ([]domain.Person, error)
	Add(ctx context.Context, form domain.PersonForm) error
	Update(ctx context.Context, form domain.PersonForm) error
}
