package model

import "time"

// User represents a platform account. Access rights come entirely from
// the groups the user belongs to.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Groups       []string  `json:"groups"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=2,max=150"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// RegisterRequest is the payload for public self-registration.
// PasswordRepeat must match Password; the mismatch is reported as a
// validation error keyed on "password".
type RegisterRequest struct {
	Username       string `json:"username" binding:"required,min=2,max=150"`
	Email          string `json:"email" binding:"required,email,max=255"`
	FirstName      string `json:"first_name" binding:"required,min=1,max=100"`
	LastName       string `json:"last_name" binding:"required,min=1,max=100"`
	Password       string `json:"password" binding:"required,min=6,max=128"`
	PasswordRepeat string `json:"password_repeat" binding:"required,min=6,max=128"`
}

// CreateUserRequest is the payload for Officer-side user creation.
type CreateUserRequest struct {
	Username  string   `json:"username" binding:"required,min=2,max=150"`
	Email     string   `json:"email" binding:"required,email,max=255"`
	FirstName string   `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string   `json:"last_name" binding:"required,min=1,max=100"`
	Password  string   `json:"password" binding:"required,min=6,max=128"`
	Groups    []string `json:"groups" binding:"omitempty,dive,min=1,max=150"`
}

// UpdateUserRequest is the payload for updating an existing user.
type UpdateUserRequest struct {
	Username  string `json:"username" binding:"required,min=2,max=150"`
	Email     string `json:"email" binding:"required,email,max=255"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	Password  string `json:"password" binding:"omitempty,min=6,max=128"`
}

// UpdateUserGroupsRequest is the groups-only partial update used for role
// changes. It replaces the user's full group set.
type UpdateUserGroupsRequest struct {
	Groups []string `json:"groups" binding:"required,dive,min=1,max=150"`
}
