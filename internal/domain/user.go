package domain

import "time"

// User is the profile record owned by user-service.
type User struct {
	ID        int64
	Email     string
	Name      string
	Surname   string
	BirthDate *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
