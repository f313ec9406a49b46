package dto

import "time"

// CreateUserRequest payload for profile creation (internal callers).
type CreateUserRequest struct {
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// UpdateUserRequest payload for profile updates.
type UpdateUserRequest struct {
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// UserResponse is the profile representation on the wire.
type UserResponse struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}
