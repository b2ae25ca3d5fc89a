package models

import "time"

// OrderItem is a purchased line within a historical order. Unlike a cart
// line it carries a denormalized name and price, not a product snapshot.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is a read-only historical purchase record.
type Order struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      string      `json:"status"`
	Items       []OrderItem `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	Tax         float64     `json:"tax"`
	Shipping    float64     `json:"shipping"`
	Total       float64     `json:"total"`
}

// LineTotal returns price times quantity for a single order item.
func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
