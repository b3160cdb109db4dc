package client

import (
	"context"
	"fmt"

	"github.com/evcraddock/realty-site/internal/blog"
)

// ListPosts returns every blog post, drafts included.
func (c *Client) ListPosts(ctx context.Context) ([]blog.Post, error) {
	var posts []blog.Post
	if err := c.get(ctx, "/api/blog/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublishedPosts returns the posts visible on the public site.
func (c *Client) ListPublishedPosts(ctx context.Context) ([]blog.Post, error) {
	var posts []blog.Post
	if err := c.get(ctx, "/api/blog/posts/published", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns a single post.
func (c *Client) GetPost(ctx context.Context, id int64) (*blog.Post, error) {
	var p blog.Post
	if err := c.get(ctx, fmt.Sprintf("/api/blog/posts/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePost adds a post.
func (c *Client) CreatePost(ctx context.Context, p blog.Post) (*blog.Post, error) {
	out := p
	if err := c.post(ctx, "/api/blog/posts", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost applies a partial update to a post.
func (c *Client) UpdatePost(ctx context.Context, id int64, upd blog.Update) (*blog.Post, error) {
	var out blog.Post
	if err := c.put(ctx, fmt.Sprintf("/api/blog/posts/%d", id), upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.doDelete(ctx, fmt.Sprintf("/api/blog/posts/%d", id))
}
