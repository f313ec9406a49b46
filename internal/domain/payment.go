package domain

import "time"

// PaymentStatus represents the outcome of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment is the domain model owned by payment-service. One payment is
// attempted per order.created event.
type Payment struct {
	ID        string
	OrderID   int64
	UserID    int64
	Amount    float64
	Status    PaymentStatus
	CreatedAt time.Time
}
