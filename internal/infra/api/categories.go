package api

import (
	"context"
	"fmt"

	"homebook/internal/domain"
)

// CategoryClient maps the /categories resource.
type CategoryClient struct {
	api *Client
}

// NewCategoryClient creates a CategoryClient.
func NewCategoryClient(api *Client) *CategoryClient {
	return &CategoryClient{api: api}
}

// List fetches all categories known to the server, enabled or not.
func (c *CategoryClient) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.api.Get(ctx, "categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Add creates a category.
func (c *CategoryClient) Add(ctx context.Context, form domain.CategoryForm) error {
	return c.api.Post(ctx, "categories", form)
}

// Update renames a category.
func (c *CategoryClient) Update(ctx context.Context, form domain.CategoryForm) error {
	if form.ID == nil {
		return &domain.ErrValidation{Message: "Category id is required"}
	}
	return c.api.Put(ctx, fmt.Sprintf("categories/%d", *form.ID), form)
}

// Delete removes a category.
func (c *CategoryClient) Delete(ctx context.Context, id int64) error {
	return c.api.Delete(ctx, fmt.Sprintf("categories/%d", id))
}
