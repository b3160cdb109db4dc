package client

import (
	"context"
	"fmt"

	"github.com/evcraddock/realty-site/internal/property"
)

// ListProperties returns the full remote catalog.
func (c *Client) ListProperties(ctx context.Context) ([]property.Record, error) {
	var records []property.Record
	if err := c.get(ctx, "/property/all", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateProperty adds a listing and returns it as stored by the API.
func (c *Client) CreateProperty(ctx context.Context, rec property.Record) (*property.Record, error) {
	out := rec
	if err := c.post(ctx, "/property/add", rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProperty applies a partial update to a listing.
func (c *Client) UpdateProperty(ctx context.Context, id int64, upd property.Update) (*property.Record, error) {
	var out property.Record
	if err := c.put(ctx, fmt.Sprintf("/property/update/%d", id), upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProperty removes a listing.
func (c *Client) DeleteProperty(ctx context.Context, id int64) error {
	return c.doDelete(ctx, fmt.Sprintf("/property/delete/%d", id))
}
