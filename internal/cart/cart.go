package cart

import "github.com/JananiSriSK/varu-knit-store/internal/product"

// Item is a stored cart line, keyed by product and size.
type Item struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

// Line is a cart item joined with its current catalog entry. Prices are
// always the live ones, not a snapshot.
type Line struct {
	product.Summary
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Subtotal float64 `json:"subtotal"`
}

// Cart is the enriched view returned to the client.
type Cart struct {
	Lines []Line  `json:"items"`
	Total float64 `json:"total"`
}
