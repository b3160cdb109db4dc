package client

import (
	"context"
	"fmt"

	"github.com/evcraddock/realty-site/internal/admin"
)

// ListUsers returns every back-office account.
func (c *Client) ListUsers(ctx context.Context) ([]admin.User, error) {
	var users []admin.User
	if err := c.get(ctx, "/api/users/", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns a single account.
func (c *Client) GetUser(ctx context.Context, id int64) (*admin.User, error) {
	var u admin.User
	if err := c.get(ctx, fmt.Sprintf("/api/users/%d", id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser adds an account.
func (c *Client) CreateUser(ctx context.Context, nu admin.NewUser) (*admin.User, error) {
	out := admin.User{Email: nu.Email, Name: nu.Name, Role: nu.Role}
	if err := c.post(ctx, "/api/users/", nu, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update to an account.
func (c *Client) UpdateUser(ctx context.Context, id int64, upd admin.Update) (*admin.User, error) {
	var out admin.User
	if err := c.put(ctx, fmt.Sprintf("/api/users/%d", id), upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.doDelete(ctx, fmt.Sprintf("/api/users/%d", id))
}
