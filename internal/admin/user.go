// Package admin defines the back-office user records.
package admin

import "time"

// Roles an admin user can hold.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User is a back-office account.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role,omitempty" validate:"omitempty,oneof=admin editor"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// NewUser is the payload for creating an account.
type NewUser struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin editor"`
}

// Update is a partial user for PUT requests.
type Update struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin editor"`
	IsActive *bool   `json:"is_active,omitempty"`
}
