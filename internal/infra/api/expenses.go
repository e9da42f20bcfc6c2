package api

import (
	"context"
	"fmt"

	"homebook/internal/domain"
)

// ExpenseClient maps the /expenses resource.
type ExpenseClient struct {
	api *Client
}

// NewExpenseClient creates an ExpenseClient.
func NewExpenseClient(api *Client) *ExpenseClient {
	return &ExpenseClient{api: api}
}

// ListByMonth fetches the expenses of one calendar month. The month key
// is the canonical zero-padded YYYY-MM; the server filters from the
// first of that month to its end. Response order is display order.
func (c *ExpenseClient) ListByMonth(ctx context.Context, monthKey string) ([]domain.Expense, error) {
	var expenses []domain.Expense
	if err := c.api.Get(ctx, fmt.Sprintf("expenses?date=%s-01", monthKey), &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// Add creates an expense.
func (c *ExpenseClient) Add(ctx context.Context, payload domain.ExpensePayload) error {
	return c.api.Post(ctx, "expenses", payload)
}

// Update replaces an expense.
func (c *ExpenseClient) Update(ctx context.Context, id int64, payload domain.ExpensePayload) error {
	return c.api.Put(ctx, fmt.Sprintf("expenses/%d", id), payload)
}

// Delete removes an expense.
func (c *ExpenseClient) Delete(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("expenses/%d", id))
}
