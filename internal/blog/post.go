// Package blog defines the blog post records managed through the admin API.
package blog

import "time"

// Post is a blog article.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Slug      string    `json:"slug,omitempty"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Content   string    `json:"content" validate:"required"`
	Author    string    `json:"author,omitempty"`
	Image     string    `json:"image,omitempty" validate:"omitempty,url"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Update is a partial post for PUT requests.
type Update struct {
	Title     *string `json:"title,omitempty"`
	Slug      *string `json:"slug,omitempty"`
	Excerpt   *string `json:"excerpt,omitempty"`
	Content   *string `json:"content,omitempty"`
	Author    *string `json:"author,omitempty"`
	Image     *string `json:"image,omitempty" validate:"omitempty,url"`
	Published *bool   `json:"published,omitempty"`
}
