package dto

// ItemResponse is a catalog entry on the wire.
type ItemResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
