package api

import (
	"context"
	"fmt"

	"homebook/internal/domain"
)

// HouseholdClient maps the /household resource.
type HouseholdClient struct {
	api *Client
}

// NewHouseholdClient creates a HouseholdClient.
func NewHouseholdClient(api *Client) *HouseholdClient {
	return &HouseholdClient{api: api}
}

// Get fetches the household aggregate (members + categories).
func (c *HouseholdClient) Get(ctx context.Context) (*domain.Household, error) {
	var hh domain.Household
	if err := c.api.Get(ctx, "household", &hh); err != nil {
		return nil, err
	}
	return &hh, nil
}

// EnableCategory enables a category for the household. Empty body.
func (c *HouseholdClient) EnableCategory(ctx context.Context, id int64) error {
	return c.api.Put(ctx, fmt.Sprintf("household/categories/%d", id), nil)
}

// DisableCategory disables a category for the household.
func (c *HouseholdClient) DisableCategory(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("household/categories/%d", id))
}
