package domain

import "time"

// Card is a payment card attached to a user profile, owned by
// user-service alongside the profile itself.
type Card struct {
	ID             int64
	UserID         int64
	Number         string
	Holder         string
	ExpirationDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
