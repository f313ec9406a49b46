package domain

import "time"

// OrderStatus represents lifecycle states for an order.
type OrderStatus string

const (
	OrderStatusCreated  OrderStatus = "CREATED"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusDeclined OrderStatus = "DECLINED"
)

// Order is the domain model owned by order-service.
type Order struct {
	ID        int64
	UserID    int64
	Item      string
	Quantity  int
	Price     float64
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EnrichedOrder is an order joined with the owning user's profile,
// fetched from user-service at read time.
type EnrichedOrder struct {
	Order
	User *User
}
