package events

import (
	"time"

	"github.com/spec-kit/commerce-mesh/internal/domain"
)

// OrderCreatedEvent is published by order-service when an order is
// accepted; payment-service consumes it to attempt a payment.
type OrderCreatedEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   int64     `json:"order_id"`
	UserID    int64     `json:"user_id"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// PaymentCreatedEvent is published by payment-service with the payment
// outcome; order-service consumes it to settle the order status.
type PaymentCreatedEvent struct {
	EventID   string               `json:"event_id"`
	PaymentID string               `json:"payment_id"`
	OrderID   int64                `json:"order_id"`
	UserID    int64                `json:"user_id"`
	Amount    float64              `json:"amount"`
	Status    domain.PaymentStatus `json:"status"`
	Timestamp time.Time            `json:"timestamp"`
}
