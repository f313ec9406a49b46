package dto

import "time"

// CreateCardRequest payload for attaching a card to a profile.
type CreateCardRequest struct {
	UserID         int64      `json:"user_id"`
	Number         string     `json:"number"`
	Holder         string     `json:"holder"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// UpdateCardRequest payload for card updates.
type UpdateCardRequest struct {
	Number         string     `json:"number"`
	Holder         string     `json:"holder"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// CardResponse is the card representation on the wire.
type CardResponse struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	Number         string     `json:"number"`
	Holder         string     `json:"holder"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}
