package models

import "time"

// User represents a person using Splitly.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `db:"id"`

	// Name is the display name of the user.
	Name string `db:"name"`

	// Email is the user's email address (unique).
	// Used to join groups from an invitation link.
	Email string `db:"email"`

	// Phone is an optional contact number.
	Phone string `db:"phone"`

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64 `db:"created_at"`

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64 `db:"updated_at"`
}

// NewUser creates a user with a fresh timestamp. The ID is assigned by the store.
func NewUser(name, email, phone string) *User {
	now := time.Now().Unix()
	return &User{
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
