package dto

import "time"

// PaymentResponse is the payment representation on the wire.
type PaymentResponse struct {
	ID        string    `json:"id"`
	OrderID   int64     `json:"order_id"`
	UserID    int64     `json:"user_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
