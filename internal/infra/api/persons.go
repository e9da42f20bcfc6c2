package api

import (
	"context"
	"fmt"

	"homebook/internal/domain"
)

// PersonClient maps the /person resource.
type PersonClient struct {
	api *Client
}

// NewPersonClient creates a PersonClient.
func NewPersonClient(api *Client) *PersonClient {
	return &PersonClient{api: api}
}

// List fetches all household members.
func (c *PersonClient) List(ctx context.Context) ([]domain.Person, error) {
	var persons []domain.Person
	if err := c.api.Get(ctx, "person", &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

// Add creates a member.
func (c *PersonClient) Add(ctx context.Context, form domain.PersonForm) error {
	return c.api.Post(ctx, "person", form)
}

// Update replaces a member, including a new password.
func (c *PersonClient) Update(ctx context.Context, form domain.PersonForm) error {
	if form.ID == nil {
		return &domain.ErrValidation{Message: "Member id is required"}
	}
	return c.api.Put(ctx, fmt.Sprintf("person/%d", *form.ID), form)
}
