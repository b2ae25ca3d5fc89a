package models

// Product is the catalog entry as returned by the backend. Products are
// read-only on the client; the cart embeds a full snapshot rather than
// just the id.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Price          float64           `json:"price"`
	CompareAtPrice float64           `json:"compareAtPrice,omitempty"`
	Images         []string          `json:"images,omitempty"`
	Description    string            `json:"description,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Rating         float64           `json:"rating,omitempty"`
	ReviewCount    int               `json:"reviewCount,omitempty"`
	Stock          int               `json:"stock"`
	SKU            string            `json:"sku,omitempty"`
	Status         string            `json:"status,omitempty"`
	Featured       bool              `json:"featured,omitempty"`
	Reviews        []Review          `json:"reviews,omitempty"`
}

// Review is a single customer review attached to a product.
type Review struct {
	ID               string  `json:"id"`
	Rating           float64 `json:"rating"`
	Title            string  `json:"title"`
	Comment          string  `json:"comment"`
	UserID           string  `json:"userId"`
	VerifiedPurchase bool    `json:"verifiedPurchase"`
}

// MainImage returns the first product image, or empty when none exist.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
