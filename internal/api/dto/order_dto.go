package dto

// CreateOrderRequest payload for placing an order.
type CreateOrderRequest struct {
	UserID   int64   `json:"user_id"`
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderResponse is the order representation, optionally enriched with
// the owning user's profile.
type OrderResponse struct {
	ID       int64         `json:"id"`
	UserID   int64         `json:"user_id"`
	Item     string        `json:"item"`
	Quantity int           `json:"quantity"`
	Price    float64       `json:"price"`
	Status   string        `json:"status"`
	User     *UserResponse `json:"user,omitempty"`
}
