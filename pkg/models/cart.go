package models

// CartItem is one line of the server-side cart: a full product snapshot
// plus a quantity. Quantity is always >= 1 in a valid cart; the backend
// never stores zero or negative quantities and the client filters out
// lines whose product no longer resolves.
type CartItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// Subtotal returns price times quantity for a single cart line.
func (i CartItem) Subtotal() float64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price * float64(i.Quantity)
}
