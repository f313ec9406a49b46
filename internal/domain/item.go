package domain

import "time"

// Item is a catalog entry offered by order-service. Orders reference
// items by name.
type Item struct {
	ID        int64
	Name      string
	Price     float64
	CreatedAt time.Time
}
