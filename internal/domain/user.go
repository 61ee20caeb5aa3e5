package domain

import "time"

// User is an account in the league. Users are never hard-deleted; Active is
// the soft-delete marker so historical awards keep resolving.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	Active       bool      `json:"active"`
}

// UserForm carries the fields an administrator submits when creating a user.
type UserForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}
